package grid

import "fmt"

// Kind discriminates the three placeable entity variants.
type Kind string

const (
	KindPolyanet Kind = "polyanet"
	KindSoloon   Kind = "soloon"
	KindCometh   Kind = "cometh"
)

// Coordinate identifies one cell of the grid. Row and Column are
// non-negative; the remote service is authoritative on bounds.
type Coordinate struct {
	Row    int
	Column int
}

// String renders the coordinate as "(row,column)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
}

// Entity is one placeable object derived from a goal map cell. It is an
// immutable value: Color is set only for soloons, Direction only for comeths.
type Entity struct {
	Kind      Kind
	At        Coordinate
	Color     string
	Direction string
}

// String renders the entity for log lines, e.g. "soloon(1,0,blue)".
func (e Entity) String() string {
	switch e.Kind {
	case KindSoloon:
		return fmt.Sprintf("%s(%d,%d,%s)", e.Kind, e.At.Row, e.At.Column, e.Color)
	case KindCometh:
		return fmt.Sprintf("%s(%d,%d,%s)", e.Kind, e.At.Row, e.At.Column, e.Direction)
	default:
		return fmt.Sprintf("%s(%d,%d)", e.Kind, e.At.Row, e.At.Column)
	}
}
