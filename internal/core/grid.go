package core

// Field stores a 2D grid of float64 cell values in row-major order. Neighbor
// lookups clamp at the borders; there is no wraparound.
type Field struct {
	W, H int
	data []float64
}

// NewField allocates a zeroed field with the given dimensions.
func NewField(w, h int) *Field {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Field{W: w, H: h, data: make([]float64, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (f *Field) Cells() []float64 { return f.data }

// Index returns the linear slice index for coordinates (x, y).
func (f *Field) Index(x, y int) int { return y*f.W + x }

// Clamp pins the provided coordinates to the field bounds.
func (f *Field) Clamp(x, y int) (int, int) {
	if x < 0 {
		x = 0
	} else if x >= f.W {
		x = f.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= f.H {
		y = f.H - 1
	}
	return x, y
}

// In reports whether (x, y) lies inside the field.
func (f *Field) In(x, y int) bool {
	return x >= 0 && x < f.W && y >= 0 && y < f.H
}

// At returns the value at (x, y) after clamping the coordinates.
func (f *Field) At(x, y int) float64 {
	x, y = f.Clamp(x, y)
	return f.data[y*f.W+x]
}

// Fill sets every cell to v.
func (f *Field) Fill(v float64) {
	for i := range f.data {
		f.data[i] = v
	}
}

// Clear fills the field with zeros.
func (f *Field) Clear() { f.Fill(0) }
