package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns the number of cells covered by the size.
func (s Size) Cells() int { return s.W * s.H }

// Canvas is the contract the interactive front end drives every frame: step
// the simulation, then composite it into an RGBA buffer.
type Canvas interface {
	Name() string
	Size() Size
	Reset()
	Step()
	// RenderTo writes Size().W*Size().H*4 RGBA bytes into dst, growing it
	// when needed, and returns the filled slice.
	RenderTo(dst []byte) []byte
}
