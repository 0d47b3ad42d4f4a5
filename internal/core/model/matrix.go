package model

// Matrix is a dense row-major float32 matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []float32
}

func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

func (m *Matrix) At(r, c int) float32 {
	return m.Data[r*m.Cols+c]
}

func (m *Matrix) Set(r, c int, v float32) {
	m.Data[r*m.Cols+c] = v
}

func (m *Matrix) Row(r int) []float32 {
	return m.Data[r*m.Cols : (r+1)*m.Cols]
}

// SelectColumns returns a new matrix made of the given columns in order.
func (m *Matrix) SelectColumns(cols []int) *Matrix {
	out := NewMatrix(m.Rows, len(cols))
	for r := 0; r < m.Rows; r++ {
		for i, c := range cols {
			out.Data[r*out.Cols+i] = m.Data[r*m.Cols+c]
		}
	}
	return out
}

// Tensor3 is a dense row-major [D0, D1, D2] float32 tensor.
type Tensor3 struct {
	D0, D1, D2 int
	Data       []float32
}

func NewTensor3(d0, d1, d2 int) *Tensor3 {
	return &Tensor3{D0: d0, D1: d1, D2: d2, Data: make([]float32, d0*d1*d2)}
}

// Slot returns the D2-length vector at [i, j].
func (t *Tensor3) Slot(i, j int) []float32 {
	off := (i*t.D1 + j) * t.D2
	return t.Data[off : off+t.D2]
}

// Flat returns the D1*D2 values of entry i.
func (t *Tensor3) Flat(i int) []float32 {
	n := t.D1 * t.D2
	return t.Data[i*n : (i+1)*n]
}

// SelectMiddle keeps the given indices of the middle axis in order.
func (t *Tensor3) SelectMiddle(keep []int) *Tensor3 {
	out := NewTensor3(t.D0, len(keep), t.D2)
	for i := 0; i < t.D0; i++ {
		for k, j := range keep {
			copy(out.Slot(i, k), t.Slot(i, j))
		}
	}
	return out
}
