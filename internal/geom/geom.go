package geom

// Point is a position in screen cells
type Point struct {
	X int
	Y int
}

// Add returns p offset by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the delta from q to p
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle. Right and Bottom are inclusive edges
// at X+W and Y+H, matching bounding boxes reported by a layout engine.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Right returns the right edge
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the bottom edge
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Origin returns the top-left corner
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Contains reports whether p lies inside the cells covered by r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Empty reports whether r covers no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Span returns the rectangle between two corners regardless of drag
// direction: the origin is the min of both points and the size is the
// absolute delta.
func Span(a, b Point) Rect {
	return Rect{
		X: min(a.X, b.X),
		Y: min(a.Y, b.Y),
		W: abs(b.X - a.X),
		H: abs(b.Y - a.Y),
	}
}

// Intersects reports whether a and b overlap. Two rectangles intersect
// unless one lies entirely left, right, above or below the other; touching
// edges count as intersecting.
func Intersects(a, b Rect) bool {
	return !(a.Right() < b.X ||
		a.X > b.Right() ||
		a.Bottom() < b.Y ||
		a.Y > b.Bottom())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
