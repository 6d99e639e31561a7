package core

// Color is a linear RGB sample accumulated by the film. Alpha rides along
// for image export.
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
	ColorRed   = Color{1, 0, 0, 1}
	ColorGreen = Color{0, 1, 0, 1}
	ColorBlue  = Color{0, 0, 1, 1}
)

func (c Color) Add(other Color) Color {
	return Color{
		R: c.R + other.R,
		G: c.G + other.G,
		B: c.B + other.B,
		A: c.A + other.A,
	}
}

func (c Color) Scale(scalar float32) Color {
	return Color{
		R: c.R * scalar,
		G: c.G * scalar,
		B: c.B * scalar,
		A: c.A * scalar,
	}
}
