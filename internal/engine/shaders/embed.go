// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader transforms flat-shaded mesh vertices.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader lights each face with one directional light.
//
//go:embed mesh.frag
var MeshFragmentShader string

// LineVertexShader transforms debug line vertices.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader draws lines in a flat color.
//
//go:embed line.frag
var LineFragmentShader string
