package meshserver

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/Faultbox/voxelmesh/pkg/math"
	"github.com/Faultbox/voxelmesh/pkg/voxel"
)

// Message types sent over the websocket.
const (
	TypeMesh  = "mesh"
	TypeError = "error"
)

// BuildRequest asks for one mesh. Zero fields fall back to the server defaults.
type BuildRequest struct {
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	Depth   int        `json:"depth"`
	Origin  [3]float32 `json:"origin"`
	Seed    *int64     `json:"seed,omitempty"`
	Scale   float64    `json:"scale"`
	Octaves int        `json:"octaves"`
}

// StatsMessage is the JSON form of voxel.Stats.
type StatsMessage struct {
	Cells     int     `json:"cells"`
	Occupied  int     `json:"occupied"`
	Quads     int     `json:"quads"`
	Triangles int     `json:"triangles"`
	Vertices  int     `json:"vertices"`
	Millis    float64 `json:"millis"`
}

// MeshMessage carries flat vertex buffers ready for a GPU upload.
type MeshMessage struct {
	Type      string        `json:"type"`
	Positions []float32     `json:"positions,omitempty"`
	Normals   []float32     `json:"normals,omitempty"`
	Indices   []uint32      `json:"indices,omitempty"`
	Stats     *StatsMessage `json:"stats,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// params merges the request over defaults.
func (r BuildRequest) params(defaults voxel.Params) voxel.Params {
	p := defaults
	if r.Width != 0 {
		p.Dims.Width = r.Width
	}
	if r.Height != 0 {
		p.Dims.Height = r.Height
	}
	if r.Depth != 0 {
		p.Dims.Depth = r.Depth
	}
	p.Origin = math.Vec3{X: r.Origin[0], Y: r.Origin[1], Z: r.Origin[2]}
	if r.Seed != nil {
		p.Seed = *r.Seed
	}
	if r.Scale != 0 {
		p.Scale = r.Scale
	}
	if r.Octaves != 0 {
		p.Octaves = r.Octaves
	}
	return p
}

// parseQuery reads a BuildRequest from /mesh query parameters.
func parseQuery(q url.Values) (BuildRequest, error) {
	var req BuildRequest
	ints := []struct {
		key string
		dst *int
	}{
		{"width", &req.Width},
		{"height", &req.Height},
		{"depth", &req.Depth},
		{"octaves", &req.Octaves},
	}
	for _, f := range ints {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("invalid %s %q", f.key, v)
		}
		*f.dst = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("invalid size %q", v)
		}
		req.Width, req.Height, req.Depth = n, n, n
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("invalid seed %q", v)
		}
		req.Seed = &seed
	}
	if v := q.Get("scale"); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, fmt.Errorf("invalid scale %q", v)
		}
		req.Scale = s
	}
	return req, nil
}

func newMeshMessage(m *voxel.Mesh, stats voxel.Stats) MeshMessage {
	positions := make([]float32, 0, len(m.Positions)*3)
	for _, p := range m.Positions {
		positions = append(positions, p.X, p.Y, p.Z)
	}
	normals := make([]float32, 0, len(m.Normals)*3)
	for _, n := range m.Normals {
		normals = append(normals, n.X, n.Y, n.Z)
	}
	return MeshMessage{
		Type:      TypeMesh,
		Positions: positions,
		Normals:   normals,
		Indices:   m.Indices,
		Stats: &StatsMessage{
			Cells:     stats.Cells,
			Occupied:  stats.Occupied,
			Quads:     stats.Quads,
			Triangles: stats.Triangles,
			Vertices:  stats.Vertices,
			Millis:    float64(stats.Total().Microseconds()) / 1000,
		},
	}
}

func errorMessage(err error) MeshMessage {
	return MeshMessage{Type: TypeError, Error: err.Error()}
}
