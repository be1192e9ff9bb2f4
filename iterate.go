package halfedge

import "iter"

// Vertices yields every live vertex in id order, skipping removed slots.
// The sequence is valid only while the mesh is not mutated.
func (m *Mesh) Vertices() iter.Seq[*Vertex] {
	return func(yield func(*Vertex) bool) {
		for _, v := range m.vertices {
			if v == nil {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Edges yields every live half-edge in id order, skipping removed slots.
// The sequence is valid only while the mesh is not mutated.
func (m *Mesh) Edges() iter.Seq[*Edge] {
	return func(yield func(*Edge) bool) {
		for _, e := range m.edges {
			if e == nil {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Faces yields every live face in id order, skipping removed slots.
// The sequence is valid only while the mesh is not mutated.
func (m *Mesh) Faces() iter.Seq[*Face] {
	return func(yield func(*Face) bool) {
		for _, f := range m.faces {
			if f == nil {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}
