package layer

import "fmt"

// Element names one model making up a layer, optionally repeated.
type Element struct {
	Model string
	Count int // treated as 1 when zero
}

// Spec is the property-map form of a layer definition. Exactly one of
// Positions (free layer) or Columns/Rows (grid layer) must be given.
type Spec struct {
	Elements []Element

	// Free layer: one coordinate vector per grid position, all 2-D or all
	// 3-D.
	Positions [][]float64

	// Grid layer: shape. Columns and Rows go together; Layers > 0 makes the
	// grid 3-D.
	Columns int
	Rows    int
	Layers  int

	// Bounding box. When omitted, the box defaults to unit extent centered
	// on the origin.
	LowerLeft []float64
	Extent    []float64
}

// normalized is the validated, defaulted form of a Spec.
type normalized struct {
	elements  []string // one entry per element instance, depth = len
	cells     int
	dim       int
	grid      bool
	columns   int
	rows      int
	layers    int
	lowerLeft []float64
	extent    []float64
	positions [][]float64
}

// normalize validates the spec and fills in defaults. Model names are not
// resolved here; that is the caller's registry lookup.
func (s Spec) normalize() (*normalized, error) {
	if len(s.Elements) == 0 {
		return nil, &ErrInvalidSpec{Reason: "no elements given"}
	}
	n := &normalized{}
	for _, e := range s.Elements {
		count := e.Count
		if count == 0 {
			count = 1
		}
		if count < 0 {
			return nil, &ErrInvalidSpec{Reason: fmt.Sprintf("negative element count for %q", e.Model)}
		}
		for i := 0; i < count; i++ {
			n.elements = append(n.elements, e.Model)
		}
	}

	switch {
	case len(s.Positions) > 0 && (s.Columns > 0 || s.Rows > 0 || s.Layers > 0):
		return nil, &ErrInvalidSpec{Reason: "cannot specify both positions and a grid shape"}
	case len(s.Positions) > 0:
		n.dim = len(s.Positions[0])
		if n.dim != 2 && n.dim != 3 {
			return nil, &ErrInvalidSpec{Reason: fmt.Sprintf("positions must have 2 or 3 coordinates, got %d", n.dim)}
		}
		for i, p := range s.Positions {
			if len(p) != n.dim {
				return nil, &ErrInvalidSpec{Reason: fmt.Sprintf("position %d has %d coordinates, expected %d",
					i, len(p), n.dim)}
			}
		}
		n.cells = len(s.Positions)
		n.positions = s.Positions
	case s.Columns > 0:
		if s.Rows <= 0 {
			return nil, &ErrInvalidSpec{Reason: "both columns and rows must be given"}
		}
		n.grid = true
		n.columns = s.Columns
		n.rows = s.Rows
		n.layers = s.Layers
		if n.layers == 0 {
			n.layers = 1
		}
		n.dim = 2
		if n.layers > 1 {
			n.dim = 3
		}
		n.cells = n.columns * n.rows * n.layers
	default:
		return nil, &ErrInvalidSpec{Reason: "either positions or a grid shape is required"}
	}

	n.lowerLeft = s.LowerLeft
	n.extent = s.Extent
	if n.extent == nil {
		n.extent = make([]float64, n.dim)
		for i := range n.extent {
			n.extent[i] = 1
		}
	}
	if n.lowerLeft == nil {
		n.lowerLeft = make([]float64, n.dim)
		for i := range n.lowerLeft {
			n.lowerLeft[i] = -n.extent[i] / 2
		}
	}
	if len(n.lowerLeft) != n.dim || len(n.extent) != n.dim {
		return nil, &ErrInvalidSpec{Reason: fmt.Sprintf("box is %dx%d-dimensional but layer is %d-dimensional",
			len(n.lowerLeft), len(n.extent), n.dim)}
	}
	return n, nil
}

