package noise

// Fractal sums octaves of a Source (fractional Brownian motion). Each octave
// multiplies frequency by Lacunarity and amplitude by Persistence; the sum is
// normalised by total amplitude so the output stays in the source's range.
type Fractal struct {
	Source      Source
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// Sample evaluates the fractal sum at (x, y, z). With one octave (or fewer)
// it returns the source value unchanged.
func (f Fractal) Sample(x, y, z float64) float64 {
	if f.Octaves <= 1 {
		return f.Source.Sample(x, y, z)
	}

	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for range f.Octaves {
		sum += f.Source.Sample(x*frequency, y*frequency, z*frequency) * amplitude
		norm += amplitude
		amplitude *= f.Persistence
		frequency *= f.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
