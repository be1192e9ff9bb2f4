package halfedge

import "iter"

// Face is a polygonal face, identified by one of its half-edges. The degree
// is not stored; it is derived by walking the edge cycle.
type Face struct {
	id   uint32
	edge *Edge
}

// ID returns the face id. Ids are array indices and change on compaction.
func (f *Face) ID() uint32 {
	return f.id
}

// Edge returns one half-edge of the face cycle.
func (f *Face) Edge() *Edge {
	return f.edge
}

// Degree returns the number of edges around the face.
func (f *Face) Degree() int {
	if f.edge == nil {
		return 0
	}
	n := 0
	e := f.edge
	for {
		n++
		e = e.next
		if e == f.edge {
			return n
		}
	}
}

// Edges yields the half-edges of the face cycle in order.
func (f *Face) Edges() iter.Seq[*Edge] {
	return func(yield func(*Edge) bool) {
		if f.edge == nil {
			return
		}
		e := f.edge
		for {
			if !yield(e) {
				return
			}
			e = e.next
			if e == f.edge {
				return
			}
		}
	}
}

// Contains reports whether e belongs to the face cycle.
func (f *Face) Contains(e *Edge) bool {
	for fe := range f.Edges() {
		if fe == e {
			return true
		}
	}
	return false
}
