package model

import "fmt"

// Position is a cell on the simulation grid. Coordinates are never negative.
// Positions are comparable and can be used directly as map keys.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// NewPosition validates the coordinates and returns the position.
func NewPosition(x, y int) (Position, error) {
	if x < 0 {
		return Position{}, fmt.Errorf("%w: negative x-coordinate %d", ErrInvalidArgument, x)
	}
	if y < 0 {
		return Position{}, fmt.Errorf("%w: negative y-coordinate %d", ErrInvalidArgument, y)
	}
	return Position{X: x, Y: y}, nil
}

// Validate reports whether p holds non-negative coordinates.
func (p Position) Validate() error {
	_, err := NewPosition(p.X, p.Y)
	return err
}

// Distance returns the number of king moves needed to go from p to dest.
func (p Position) Distance(dest Position) int {
	return max(abs(dest.X-p.X), abs(dest.Y-p.Y))
}

// Step returns the position one move closer to dest. Moving diagonally counts
// as a single move. When p already equals dest, dest is returned.
func (p Position) Step(dest Position) Position {
	dx := sign(dest.X - p.X)
	dy := sign(dest.Y - p.Y)
	if dx == 0 && dy == 0 {
		return dest
	}
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Distance is the Chebyshev distance between a and b.
func Distance(a, b Position) int { return a.Distance(b) }

func (p Position) String() string {
	return fmt.Sprintf("location %d,%d", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
