package halfedge

// Edge is a directed half-edge. Face-owned half-edges cycle around their face
// through next/prev; boundary half-edges (nil face) cycle around their
// boundary loop instead. A nil pair means the opposite half-edge has not been
// created yet; LinkBoundary materializes those as explicit boundary twins.
type Edge struct {
	id     uint32
	origin *Vertex
	pair   *Edge
	next   *Edge
	prev   *Edge
	face   *Face
}

// ID returns the half-edge id. Ids are array indices and change on compaction.
func (e *Edge) ID() uint32 {
	return e.id
}

// From returns the origin vertex.
func (e *Edge) From() *Vertex {
	return e.origin
}

// To returns the destination vertex: the pair's origin once the edge is
// paired, the next origin in the cycle before that. After sewing, the pair's
// origin is colocal with, but not identical to, the cycle destination.
func (e *Edge) To() *Vertex {
	if e.pair != nil {
		return e.pair.origin
	}
	if e.next != nil {
		return e.next.origin
	}
	return nil
}

// Pair returns the opposite half-edge of the same undirected edge, or nil.
func (e *Edge) Pair() *Edge {
	return e.pair
}

// Next returns the next half-edge in the face cycle, or in the boundary loop
// for a boundary half-edge.
func (e *Edge) Next() *Edge {
	return e.next
}

// Prev returns the previous half-edge in the cycle.
func (e *Edge) Prev() *Edge {
	return e.prev
}

// Face returns the owning face, or nil for a boundary half-edge.
func (e *Edge) Face() *Face {
	return e.face
}

// IsBoundary reports whether the undirected edge lies on a boundary: either
// side has no face.
func (e *Edge) IsBoundary() bool {
	return e.face == nil || e.pair == nil || e.pair.face == nil
}

// IsSeam reports whether the edge joins colocal but distinct vertices, which
// is what sewing a boundary crack produces.
func (e *Edge) IsSeam() bool {
	if e.pair == nil || e.next == nil || e.pair.next == nil {
		return false
	}
	return e.pair.origin != e.next.origin || e.pair.next.origin != e.origin
}

// Length returns the Euclidean length of the edge, 0 when the destination is
// not wired up yet.
func (e *Edge) Length() float64 {
	to := e.To()
	if to == nil {
		return 0
	}
	return dist(e.origin.pos, to.pos)
}

// link makes b follow a, writing both sides of the connection.
func link(a, b *Edge) {
	a.next = b
	b.prev = a
}
