package halfedge

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// LinkBoundary materializes a boundary twin for every unpaired face edge and
// threads the twins into boundary loops through their next/prev links, so
// boundary walks never consult the edge lookup. Where more than two boundary
// half-edges meet at a vertex the first out-edge encountered while rotating
// around the vertex wins; Validate reports such vertices as non-manifold.
// Boundary vertices are repointed at a boundary out-edge.
func (m *Mesh) LinkBoundary() {
	n := len(m.edges)
	for i := 0; i < n; i++ {
		e := m.edges[i]
		if e == nil || e.pair != nil {
			continue
		}
		from := e.origin
		to := e.next.origin
		b := &Edge{id: uint32(len(m.edges)), origin: to}
		m.edges = append(m.edges, b)
		key := edgeKey{to.id, from.id}
		assertTrue(m.edgeMap[key] == nil)
		m.edgeMap[key] = b
		e.pair = b
		b.pair = e
		to.edge = b
	}
	for _, b := range m.edges {
		if b == nil || b.face != nil || b.next != nil {
			continue
		}
		m.linkBoundaryEdge(b)
	}
}

// linkBoundaryEdge threads the boundary loop containing b. The successor of
// a boundary edge is the first boundary out-edge found rotating around its
// destination, starting at its twin.
func (m *Mesh) linkBoundaryEdge(b *Edge) {
	start := b
	for {
		c := b.pair
		for c.face != nil {
			c = c.prev.pair
		}
		link(b, c)
		if c == start {
			return
		}
		b = c
	}
}

// BoundaryCount returns the number of boundary loops. Boundaries must have
// been linked.
func (m *Mesh) BoundaryCount() int {
	seen := make(map[*Edge]bool)
	count := 0
	for _, e := range m.edges {
		if e == nil || e.face != nil || seen[e] {
			continue
		}
		count++
		for b := e; b != nil && !seen[b]; b = b.next {
			seen[b] = true
		}
	}
	return count
}

// SplitBoundaryEdge splits the boundary half-edge b at parameter t along it,
// placing the new vertex at pos. Both b and its face-owned pair are replaced
// by two half-edge pairs; the boundary loop and the face cycle grow by one
// edge each (the face degree increases). The new vertex starts in a colocal
// ring of its own and points at a boundary out-edge.
func (m *Mesh) SplitBoundaryEdge(b *Edge, t float64, pos r3.Vec) *Vertex {
	assertTrue(b != nil && b.face == nil && b.pair != nil)
	assertTrue(t > 0 && t < 1)
	fe := b.pair
	f := fe.face
	assertTrue(f != nil)
	v0 := fe.origin // fe: v0 -> v1, b: v1 -> v0
	v1 := b.origin
	fePrev, feNext := fe.prev, fe.next
	bPrev, bNext := b.prev, b.next

	if key := (edgeKey{v0.id, v1.id}); m.edgeMap[key] == fe {
		delete(m.edgeMap, key)
	}
	if key := (edgeKey{v1.id, v0.id}); m.edgeMap[key] == b {
		delete(m.edgeMap, key)
	}

	w := m.AddVertex(pos)
	fe0 := m.newRawEdge(v0, w)
	fe1 := m.newRawEdge(w, v1)
	bA := m.newRawEdge(v1, w)
	bB := m.newRawEdge(w, v0)
	fe0.pair, bB.pair = bB, fe0
	fe1.pair, bA.pair = bA, fe1

	fe0.face = f
	fe1.face = f
	link(fePrev, fe0)
	link(fe0, fe1)
	link(fe1, feNext)
	if f.edge == fe {
		f.edge = fe0
	}

	link(bPrev, bA)
	link(bA, bB)
	link(bB, bNext)

	w.edge = bB
	if v0.edge == fe {
		v0.edge = bNext
	}
	if v1.edge == b {
		v1.edge = bA
	}

	m.dropEdgeRecord(fe)
	m.dropEdgeRecord(b)
	return w
}

// SplitBoundaryEdgeAt splits the boundary half-edge b at the position of an
// existing vertex v and threads the new vertex into v's colocal ring.
func (m *Mesh) SplitBoundaryEdgeAt(b *Edge, v *Vertex) *Vertex {
	assertTrue(b != nil && b.face == nil && b.pair != nil)
	t, _ := paramOnSegment(v.pos, b.origin.pos, b.pair.origin.pos)
	w := m.SplitBoundaryEdge(b, t, v.pos)
	w.colocal = v.colocal
	v.colocal = w
	return w
}

// SplitBoundaryEdges splits every boundary half-edge that some other
// boundary vertex lies strictly inside of, so that crack matching becomes a
// one-to-one pairing. It runs to a fixed point and reports whether any split
// happened. Boundaries must have been linked and colocals welded.
func (m *Mesh) SplitBoundaryEdges() bool {
	any := false
	for {
		again := false
		for _, b := range m.edges {
			if b == nil || b.face != nil || b.pair == nil || b.next == nil {
				continue
			}
			v := m.findSplitVertex(b)
			if v == nil {
				continue
			}
			m.SplitBoundaryEdgeAt(b, v)
			any = true
			again = true
			break
		}
		if !again {
			return any
		}
	}
}

// findSplitVertex returns the first boundary vertex, in id order, lying
// strictly inside b's span without being colocal to either endpoint.
func (m *Mesh) findSplitVertex(b *Edge) *Vertex {
	a := b.origin
	c := b.pair.origin
	for _, v := range m.vertices {
		if v == nil || v == a || v == c {
			continue
		}
		if !v.IsBoundary() {
			continue
		}
		if v.IsColocal(a) || v.IsColocal(c) {
			continue
		}
		if dist(v.pos, a.pos) <= positionEpsilon || dist(v.pos, c.pos) <= positionEpsilon {
			continue
		}
		t, d := paramOnSegment(v.pos, a.pos, c.pos)
		if d > positionEpsilon || t <= 0 || t >= 1 {
			continue
		}
		return v
	}
	return nil
}

// SewBoundary walks the boundary loop starting at start and welds every edge
// that has a colocal counterpart running the opposite way elsewhere on a
// boundary. It returns one half-edge still on a boundary, or nil when the
// loop sewed completely shut.
func (m *Mesh) SewBoundary(start *Edge) *Edge {
	assertTrue(start != nil && start.face == nil && start.pair != nil)
	var open *Edge
	e := start
	for steps := 2 * len(m.edges); e != nil && steps > 0; steps-- {
		match := m.findSewMatch(e)
		if match == nil {
			if e == open {
				break // walked the whole remaining loop without progress
			}
			if open == nil {
				open = e
			}
			e = e.next
			continue
		}
		next := e.next
		if next == match {
			next = match.next
		}
		if next == e {
			next = nil // the loop is closing shut
		}
		if match == open {
			open = nil
		}
		m.weld(e, match)
		e = next
	}
	return open
}

// findSewMatch returns a boundary half-edge whose endpoints are colocal with
// b's endpoints in the opposite order, or nil. Candidates are enumerated
// deterministically: colocal ring order first, rotation order second.
func (m *Mesh) findSewMatch(b *Edge) *Edge {
	v0 := b.origin
	v1 := b.pair.origin
	for w := range v1.Colocals() {
		if w.edge == nil {
			continue
		}
		first := w.edge
		e := first
		for {
			if e.face == nil && e != b && e.pair != nil && e.pair != b.pair {
				if to := e.pair.origin; to == v0 || to.IsColocal(v0) {
					return e
				}
			}
			if e.pair == nil {
				break
			}
			nxt := e.pair.next
			if nxt == nil || nxt.origin != w || nxt == first {
				break
			}
			e = nxt
		}
	}
	return nil
}

// weld seals one crack edge: the boundary twins b and c are removed, their
// boundary-loop neighbors are spliced together and the two surviving face
// edges become mutual pairs. Their origins stay distinct, colocal records.
func (m *Mesh) weld(b, c *Edge) {
	assertTrue(b != nil && c != nil && b != c)
	assertTrue(b.face == nil && c.face == nil)
	e1, e2 := b.pair, c.pair
	assertTrue(e1 != nil && e2 != nil)

	for _, x := range [2]*Edge{b, c} {
		key := edgeKey{x.origin.id, x.pair.origin.id}
		if m.edgeMap[key] == x {
			delete(m.edgeMap, key)
		}
	}

	p1, n1 := b.prev, b.next
	p2, n2 := c.prev, c.next
	if p1 != nil && n2 != nil {
		link(p1, n2)
	}
	if p2 != nil && n1 != nil {
		link(p2, n1)
	}

	vb, vc := b.origin, c.origin
	m.dropEdgeRecord(b)
	m.dropEdgeRecord(c)

	e1.pair = e2
	e2.pair = e1

	if vb.edge == b || vb.edge == c {
		vb.edge = e1.next
	}
	if vc.edge == c || vc.edge == b {
		vc.edge = e2.next
	}
	repointVertexEdge(vb)
	repointVertexEdge(vc)
}

// dropEdgeRecord unlinks an edge record and frees its array slot. Lookup
// entries must have been removed by the caller.
func (m *Mesh) dropEdgeRecord(e *Edge) {
	e.pair = nil
	e.next = nil
	e.prev = nil
	e.face = nil
	m.edges[e.id] = nil
}

// repointVertexEdge repoints v at a boundary out-edge if rotation from the
// current incident edge finds one. Rotation stops when a sewn pair crosses
// into a colocal vertex's star.
func repointVertexEdge(v *Vertex) {
	if v.edge == nil {
		return
	}
	first := v.edge
	e := first
	for {
		if e.face == nil {
			v.edge = e
			return
		}
		if e.pair == nil {
			return
		}
		nxt := e.pair.next
		if nxt == nil || nxt.origin != v || nxt == first {
			return
		}
		e = nxt
	}
}
