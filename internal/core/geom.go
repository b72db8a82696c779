// Package core provides fundamental types shared by the game and its front
// ends. It contains no external dependencies (especially no Bubble Tea) to keep
// game logic pure and testable.
package core

// Rect is an axis-aligned screen area, used for wells and side panels.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Manhattan returns the grid distance between (x1, y1) and (x2, y2).
func Manhattan(x1, y1, x2, y2 int) int {
	return Abs(x1-x2) + Abs(y1-y2)
}
