package halfedge

// Triangulate splits every face of degree above three into a fan of
// triangles. The fan apex is the first ring vertex whose diagonals collide
// with no existing edge; two opposite-winding faces over the same ring
// would otherwise fan through the same diagonal and overshare it. A face
// with no usable apex is left untouched and recorded in the diagnostic
// triple as non-manifold. The diagonals are new interior half-edge pairs,
// registered in the edge lookup; perimeter half-edges and their pairings
// are untouched, so linked boundaries stay valid.
func (m *Mesh) Triangulate() {
	faceCount := len(m.faces)
	for fi := 0; fi < faceCount; fi++ {
		f := m.faces[fi]
		if f == nil {
			continue
		}
		n := f.Degree()
		if n <= 3 {
			continue
		}

		ring := make([]*Edge, 0, n)
		e := f.edge
		for {
			ring = append(ring, e)
			e = e.next
			if e == f.edge {
				break
			}
		}
		apex := -1
		for a := 0; a < n; a++ {
			if !m.fanCollides(ring, a) {
				apex = a
				break
			}
		}
		if apex < 0 {
			m.fail(ErrNonManifold, f.id, f.id)
			continue
		}
		if apex > 0 {
			ring = append(ring[apex:], ring[:apex]...)
		}
		v0 := ring[0].origin

		// Triangles (v0, v_j, v_j+1); diagonals v0 - v_j+1 in between.
		var prevDiag *Edge // v0 -> v_j, entering triangle j
		for j := 1; j+1 < n; j++ {
			first := prevDiag
			if j == 1 {
				first = ring[0]
			}
			mid := ring[j]
			var closing *Edge
			if j+2 < n {
				a := m.newRawEdge(ring[j+1].origin, v0)
				b := m.newRawEdge(v0, ring[j+1].origin)
				a.pair = b
				b.pair = a
				closing = a
				prevDiag = b
			} else {
				closing = ring[n-1]
			}

			tf := f
			if j > 1 {
				tf = m.newFace()
			}
			first.face = tf
			mid.face = tf
			closing.face = tf
			tf.edge = first
			link(first, mid)
			link(mid, closing)
			link(closing, first)
		}
	}
}

// fanCollides reports whether fanning around ring[a] would create a
// diagonal that already exists in either direction.
func (m *Mesh) fanCollides(ring []*Edge, a int) bool {
	n := len(ring)
	v0 := ring[a].origin
	for k := 2; k < n-1; k++ {
		w := ring[(a+k)%n].origin
		if m.findEdge(v0.id, w.id) != nil || m.findEdge(w.id, v0.id) != nil {
			return true
		}
	}
	return false
}
