package halfedge

// CompactVertices drops removed vertex slots, renumbers the survivors in
// their original relative order and rebuilds the edge lookup, whose keys are
// vertex ids. Cross-references are pointers and survive untouched. O(n).
func (m *Mesh) CompactVertices() {
	remap := make([]uint32, len(m.vertices))
	c := 0
	for i, v := range m.vertices {
		if v == nil {
			continue
		}
		remap[i] = uint32(c)
		m.vertices[c] = v
		v.id = uint32(c)
		c++
	}
	m.vertices = m.vertices[:c]

	rebuilt := make(map[edgeKey]*Edge, len(m.edgeMap))
	for k, e := range m.edgeMap {
		rebuilt[edgeKey{remap[k.from], remap[k.to]}] = e
	}
	m.edgeMap = rebuilt
}

// CompactEdges drops removed edge slots and renumbers the survivors. The
// edge lookup is keyed by vertex ids and needs no rewrite. O(n).
func (m *Mesh) CompactEdges() {
	c := 0
	for _, e := range m.edges {
		if e == nil {
			continue
		}
		m.edges[c] = e
		e.id = uint32(c)
		c++
	}
	m.edges = m.edges[:c]
}

// CompactFaces drops removed face slots and renumbers the survivors. O(n).
func (m *Mesh) CompactFaces() {
	c := 0
	for _, f := range m.faces {
		if f == nil {
			continue
		}
		m.faces[c] = f
		f.id = uint32(c)
		c++
	}
	m.faces = m.faces[:c]
}
