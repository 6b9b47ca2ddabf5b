// pkg/physics/quadtree.go
package physics

// DefaultMaxDepth bounds subdivision under pathological clustering:
// past this depth a leaf absorbs points beyond capacity instead of
// splitting, degrading to a linear scan within that leaf.
const DefaultMaxDepth = 16

// Point is an id/position pair held by a leaf. The id is assigned by
// the caller for the lifetime of one tree and carries no meaning here.
type Point struct {
	ID       int
	Position Vector2D
}

// QuadTree is a region quadtree over a fixed universe rectangle, used
// as a broad-phase spatial index for collision candidate queries.
//
// A tree is built fresh each simulation tick: construct, insert every
// live point, query, discard. There is no removal and no locking; a
// single tree instance must not be shared between goroutines.
//
// Query results are a superset of the exact answer. A leaf whose
// region intersects the query area contributes all of its points with
// no per-point containment check, so callers must re-validate every
// candidate with an exact geometric test.
type QuadTree struct {
	region   Rect
	capacity int
	depth    int
	maxDepth int

	// points is non-empty only on leaves; children is nil for a leaf
	// or holds exactly four quadrants (TL, TR, BL, BR) tiling region.
	points   []Point
	children []*QuadTree
}

// NewQuadTree creates a quadtree over the given universe rectangle.
// Capacity is the number of points a leaf holds before the next
// insertion splits it. The root is expanded into its four quadrants up
// front, so queries (which only ever descend into children) see every
// inserted point.
func NewQuadTree(region Rect, capacity int) *QuadTree {
	return NewQuadTreeWithDepth(region, capacity, DefaultMaxDepth)
}

// NewQuadTreeWithDepth creates a quadtree with an explicit subdivision
// limit. A maxDepth below 1 falls back to DefaultMaxDepth.
func NewQuadTreeWithDepth(region Rect, capacity, maxDepth int) *QuadTree {
	if capacity < 1 {
		capacity = 1
	}
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	root := &QuadTree{
		region:   region,
		capacity: capacity,
		maxDepth: maxDepth,
	}
	root.children = root.makeRegions()
	return root
}

// newLeaf creates an empty child node governing one quadrant.
func (qt *QuadTree) newLeaf(region Rect) *QuadTree {
	return &QuadTree{
		region:   region,
		capacity: qt.capacity,
		depth:    qt.depth + 1,
		maxDepth: qt.maxDepth,
	}
}

// makeRegions builds the four quadrant children of this node's region:
// top-left, top-right, bottom-left, bottom-right, each of half the
// width and height. The quadrants tile the region exactly.
func (qt *QuadTree) makeRegions() []*QuadTree {
	x := qt.region.X
	y := qt.region.Y
	hw := qt.region.W / 2
	hh := qt.region.H / 2
	return []*QuadTree{
		qt.newLeaf(Rect{X: x, Y: y, W: hw, H: hh}),
		qt.newLeaf(Rect{X: x + hw, Y: y, W: hw, H: hh}),
		qt.newLeaf(Rect{X: x, Y: y + hh, W: hw, H: hh}),
		qt.newLeaf(Rect{X: x + hw, Y: y + hh, W: hw, H: hh}),
	}
}

// Insert adds an id/position pair to the tree. A position outside this
// node's region is silently ignored, which lets internal nodes offer
// the point to all four children and have exactly one accept it.
func (qt *QuadTree) Insert(id int, position Vector2D) {
	if !qt.region.Contains(position) {
		return
	}

	if qt.children == nil {
		if len(qt.points) < qt.capacity || qt.depth >= qt.maxDepth {
			qt.points = append(qt.points, Point{ID: id, Position: position})
			return
		}
		qt.split()
		qt.Insert(id, position)
		return
	}

	for _, child := range qt.children {
		child.Insert(id, position)
	}
}

// split converts a leaf into an internal node, pushing every held
// point down into the appropriate quadrant. A point that fails every
// child's half-open containment test (possible only through floating
// point ties at quadrant boundaries) is dropped; the index is a
// best-effort filter and tolerates that.
func (qt *QuadTree) split() {
	qt.children = qt.makeRegions()
	for _, p := range qt.points {
		for _, child := range qt.children {
			child.Insert(p.ID, p.Position)
		}
	}
	qt.points = nil
}

// Query returns every point held by a descendant leaf whose region
// overlaps the query area. The traversal only ever inspects children:
// points held directly by the receiver are not visited. The root is
// pre-expanded at construction precisely so this never loses points
// in the intended root-level usage.
//
// Results are not deduplicated and may include points outside area;
// see the type doc for the re-validation contract.
func (qt *QuadTree) Query(area Rect) []Point {
	var found []Point
	for _, child := range qt.children {
		if !child.region.Overlaps(area) {
			continue
		}
		if child.children != nil {
			found = append(found, child.Query(area)...)
		} else {
			found = append(found, child.points...)
		}
	}
	return found
}

// Region returns the rectangle this node governs.
func (qt *QuadTree) Region() Rect {
	return qt.region
}

// Len returns the total number of points stored in the subtree.
func (qt *QuadTree) Len() int {
	n := len(qt.points)
	for _, child := range qt.children {
		n += child.Len()
	}
	return n
}

// Regions appends the rectangle of every node in the subtree to dst
// and returns it. Used by renderers for the debug overlay.
func (qt *QuadTree) Regions(dst []Rect) []Rect {
	dst = append(dst, qt.region)
	for _, child := range qt.children {
		dst = child.Regions(dst)
	}
	return dst
}
