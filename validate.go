package halfedge

// Validate re-derives the mesh invariants across all entities: mutual
// pairing, mutual next/prev links, closed face cycles, edge lookup
// consistency, vertex incident-edge preferences and boundary branch
// vertices. The first violation is recorded in the diagnostic triple and
// returned; nil means the mesh is consistent. Validate performs no mutation
// beyond the diagnostics.
func (m *Mesh) Validate() error {
	for _, e := range m.edges {
		if e == nil {
			continue
		}
		if e.origin == nil || e.next == nil || e.prev == nil {
			return m.fail(ErrBrokenLink, e.id, e.id)
		}
		if e.next.prev != e || e.prev.next != e {
			return m.fail(ErrBrokenLink, e.id, e.next.id)
		}
		if e.pair != nil {
			if e.pair.pair != e {
				return m.fail(ErrBrokenPair, e.id, e.pair.id)
			}
			// The pair origin is the destination, or a colocal stand-in
			// for it on a sewn seam.
			if to := e.next.origin; e.face != nil && e.pair.origin != to && !e.pair.origin.IsColocal(to) {
				return m.fail(ErrBrokenPair, e.id, e.pair.id)
			}
		}
	}

	for _, f := range m.faces {
		if f == nil {
			continue
		}
		if f.edge == nil {
			return m.fail(ErrBrokenFaceCycle, f.id, f.id)
		}
		steps := 0
		e := f.edge
		for {
			if e.face != f {
				return m.fail(ErrBrokenFaceCycle, f.id, e.id)
			}
			steps++
			if steps > len(m.edges) {
				return m.fail(ErrBrokenFaceCycle, f.id, e.id)
			}
			e = e.next
			if e == nil {
				return m.fail(ErrBrokenFaceCycle, f.id, f.id)
			}
			if e == f.edge {
				break
			}
		}
		if steps < 3 {
			return m.fail(ErrBrokenFaceCycle, f.id, f.edge.id)
		}
	}

	for k, e := range m.edgeMap {
		if e == nil || int(e.id) >= len(m.edges) || m.edges[e.id] != e {
			return m.fail(ErrBrokenLookup, k.from, k.to)
		}
		if e.origin.id != k.from {
			return m.fail(ErrBrokenLookup, k.from, k.to)
		}
		var to *Vertex
		if e.face != nil {
			to = e.next.origin
		} else if e.pair != nil {
			to = e.pair.origin
		}
		if to == nil || to.id != k.to {
			return m.fail(ErrBrokenLookup, k.from, k.to)
		}
		// Both directions of an undirected pair may be present only as
		// mutual pairs.
		if rev, ok := m.edgeMap[edgeKey{k.to, k.from}]; ok && (rev.pair != e || e.pair != rev) {
			return m.fail(ErrBrokenLookup, k.from, k.to)
		}
	}

	boundaryOut := make(map[*Vertex]int)
	for _, e := range m.edges {
		if e != nil && e.face == nil {
			boundaryOut[e.origin]++
		}
	}
	for _, v := range m.vertices {
		if v == nil {
			continue
		}
		if v.edge != nil && v.edge.origin != v {
			return m.fail(ErrBrokenVertexRef, v.id, v.edge.id)
		}
		if boundaryOut[v] > 1 {
			return m.fail(ErrNonManifold, v.id, v.id)
		}
		if boundaryOut[v] == 1 && (v.edge == nil || v.edge.face != nil) {
			return m.fail(ErrBrokenVertexRef, v.id, v.id)
		}
		steps := 0
		for c := v.colocal; c != v; c = c.colocal {
			if c == nil {
				return m.fail(ErrBrokenColocal, v.id, v.id)
			}
			steps++
			if steps > len(m.vertices) {
				return m.fail(ErrBrokenColocal, v.id, c.id)
			}
		}
	}
	return nil
}

// IsValid reports whether Validate finds no violation.
func (m *Mesh) IsValid() bool {
	return m.Validate() == nil
}
