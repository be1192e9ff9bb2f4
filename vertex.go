package halfedge

import (
	"iter"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is a mesh vertex. Vertices at the same position (or in the same
// canonical group) are threaded into a circular colocal ring, but each one
// keeps its own identity, id and incident edge.
type Vertex struct {
	id      uint32
	pos     r3.Vec
	edge    *Edge   // incident out-edge, a boundary one when the vertex is on a boundary
	colocal *Vertex // circular ring of colocal vertices, self when unwelded
}

// ID returns the vertex id. Ids are array indices and change on compaction.
func (v *Vertex) ID() uint32 {
	return v.id
}

// Pos returns the vertex position.
func (v *Vertex) Pos() r3.Vec {
	return v.pos
}

// Edge returns an out-going half-edge incident to the vertex, or nil for an
// isolated vertex.
func (v *Vertex) Edge() *Edge {
	return v.edge
}

// IsBoundary reports whether any boundary half-edge leaves the vertex.
func (v *Vertex) IsBoundary() bool {
	if v.edge == nil {
		return false
	}
	e := v.edge
	for {
		if e.face == nil || e.pair == nil {
			return true
		}
		e = e.pair.next
		// A sewn pair leads into a colocal vertex's star; stop there.
		if e == nil || e.origin != v || e == v.edge {
			return false
		}
	}
}

// IsColocal reports whether w is in v's colocal ring. A vertex is colocal
// with itself.
func (v *Vertex) IsColocal(w *Vertex) bool {
	if v == w {
		return true
	}
	for c := v.colocal; c != nil && c != v; c = c.colocal {
		if c == w {
			return true
		}
	}
	return false
}

// Colocals yields every vertex in the colocal ring, starting with v itself.
func (v *Vertex) Colocals() iter.Seq[*Vertex] {
	return func(yield func(*Vertex) bool) {
		if !yield(v) {
			return
		}
		for c := v.colocal; c != nil && c != v; c = c.colocal {
			if !yield(c) {
				return
			}
		}
	}
}
