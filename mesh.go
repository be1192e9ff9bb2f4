// Package halfedge implements a half-edge mesh for dynamic mesh
// manipulation: two-manifold-safe face construction from raw index arrays,
// colocal-vertex welding, boundary linking, splitting and sewing,
// triangulation, array compaction and validity auditing.
//
// The mesh owns every Vertex, Edge and Face it hands out. References
// returned by accessors are borrowed and are invalidated by Remove* and
// Compact* calls. All operations are single-threaded; callers must not
// interleave mutation with iteration or with other mutations.
package halfedge

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// edgeKey identifies a directed half-edge by its endpoint vertex ids.
type edgeKey struct {
	from, to uint32
}

// Mesh is a half-edge mesh. The three entity arrays are dense; ids are array
// indices. Removal nils a slot until the next compaction. The edge lookup is
// consulted during construction and repair only, never during traversal.
type Mesh struct {
	vertices []*Vertex
	edges    []*Edge
	faces    []*Face

	edgeMap map[edgeKey]*Edge

	colocalVertexCount int

	// Diagnostic triple, updated by the last failing operation.
	errorCount  int
	errorIndex0 uint32
	errorIndex1 uint32
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{
		edgeMap: map[edgeKey]*Edge{},
	}
}

// Clone returns a deep copy of the mesh. Entities are copied and rewired by
// id; the copy shares no state with the original.
func (m *Mesh) Clone() *Mesh {
	c := New()
	c.vertices = make([]*Vertex, len(m.vertices))
	c.edges = make([]*Edge, len(m.edges))
	c.faces = make([]*Face, len(m.faces))

	for i, v := range m.vertices {
		if v != nil {
			c.vertices[i] = &Vertex{id: v.id, pos: v.pos}
		}
	}
	for i, e := range m.edges {
		if e != nil {
			c.edges[i] = &Edge{id: e.id}
		}
	}
	for i, f := range m.faces {
		if f != nil {
			c.faces[i] = &Face{id: f.id}
		}
	}

	cv := func(v *Vertex) *Vertex {
		if v == nil {
			return nil
		}
		return c.vertices[v.id]
	}
	ce := func(e *Edge) *Edge {
		if e == nil {
			return nil
		}
		return c.edges[e.id]
	}
	for i, v := range m.vertices {
		if v == nil {
			continue
		}
		c.vertices[i].edge = ce(v.edge)
		c.vertices[i].colocal = cv(v.colocal)
	}
	for i, e := range m.edges {
		if e == nil {
			continue
		}
		ne := c.edges[i]
		ne.origin = cv(e.origin)
		ne.pair = ce(e.pair)
		ne.next = ce(e.next)
		ne.prev = ce(e.prev)
		if e.face != nil {
			ne.face = c.faces[e.face.id]
		}
	}
	for i, f := range m.faces {
		if f == nil {
			continue
		}
		c.faces[i].edge = ce(f.edge)
	}
	for k, e := range m.edgeMap {
		c.edgeMap[k] = c.edges[e.id]
	}

	c.colocalVertexCount = m.colocalVertexCount
	c.errorCount = m.errorCount
	c.errorIndex0 = m.errorIndex0
	c.errorIndex1 = m.errorIndex1
	return c
}

// Clear removes every entity and resets the diagnostics.
func (m *Mesh) Clear() {
	m.vertices = nil
	m.edges = nil
	m.faces = nil
	m.edgeMap = map[edgeKey]*Edge{}
	m.colocalVertexCount = 0
	m.ResetErrors()
}

// AddVertex appends a vertex at pos with the next id and returns it.
func (m *Mesh) AddVertex(pos r3.Vec) *Vertex {
	v := &Vertex{id: uint32(len(m.vertices)), pos: pos}
	v.colocal = v
	m.vertices = append(m.vertices, v)
	return v
}

// AddFace builds a face over the given vertex indices, in winding order.
// On a two-manifold or range violation it returns a nil face and an error,
// records the diagnostic triple and leaves the mesh unchanged.
//
// A face added after LinkBoundary may claim boundary twins, leaving their
// former loop neighbors with stale links; run LinkBoundary again before the
// next boundary walk or Validate.
func (m *Mesh) AddFace(indices ...uint32) (*Face, error) {
	return m.AddFaceRange(indices, 0, len(indices))
}

// AddFaceRange is AddFace over the window indices[first : first+num].
func (m *Mesh) AddFaceRange(indices []uint32, first, num int) (*Face, error) {
	assertTrue(first >= 0 && num >= 0 && first+num <= len(indices))
	if err := m.canAddFace(indices, first, num); err != nil {
		return nil, err
	}

	f := &Face{id: uint32(len(m.faces))}
	var firstEdge, last *Edge
	for i := 0; i < num; i++ {
		cur := m.addEdge(indices[first+i], indices[first+(i+1)%num])
		cur.face = f
		if last == nil {
			firstEdge = cur
		} else {
			link(last, cur)
		}
		last = cur
	}
	link(last, firstEdge)
	f.edge = firstEdge
	m.faces = append(m.faces, f)
	return f, nil
}

// canAddFace checks every consecutive index pair, wrap-around included,
// without mutating topology. Failures record the diagnostic triple.
func (m *Mesh) canAddFace(indices []uint32, first, num int) error {
	if num < 3 {
		return m.fail(ErrDegenerateFace, uint32(num), 0)
	}
	for i := 0; i < num; i++ {
		if int(indices[first+i]) >= len(m.vertices) {
			return m.fail(ErrIndexOutOfRange, indices[first+i], indices[first+i])
		}
	}
	// The window itself may repeat a directed edge; the lookup knows nothing
	// about edges the build loop has not created yet.
	seen := make(map[edgeKey]bool, num)
	for i := 0; i < num; i++ {
		k := edgeKey{indices[first+i], indices[first+(i+1)%num]}
		if seen[k] {
			return m.fail(ErrDuplicateEdge, k.from, k.to)
		}
		seen[k] = true
	}
	for i := 0; i < num; i++ {
		if err := m.canAddEdge(indices[first+i], indices[first+(i+1)%num]); err != nil {
			return err
		}
	}
	return nil
}

// canAddEdge reports whether a face may claim the directed edge i->j. The
// edge may exist as a faceless boundary twin; a face-owned record means a
// third face would share the undirected edge.
func (m *Mesh) canAddEdge(i, j uint32) error {
	if i == j {
		return m.fail(ErrDegenerateEdge, i, j)
	}
	if e := m.findEdge(i, j); e != nil && e.face != nil {
		return m.fail(ErrDuplicateEdge, i, j)
	}
	return nil
}

// addEdge returns the half-edge i->j for a face under construction. An
// existing faceless record (a boundary twin) is reused as-is; otherwise a new
// half-edge is allocated and, when the reverse half-edge exists unpaired, the
// two become mutual pairs.
func (m *Mesh) addEdge(i, j uint32) *Edge {
	if e := m.findEdge(i, j); e != nil {
		assertTrue(e.face == nil)
		return e
	}
	e := &Edge{id: uint32(len(m.edges)), origin: m.vertices[i]}
	m.edges = append(m.edges, e)
	m.edgeMap[edgeKey{i, j}] = e
	if pair := m.findEdge(j, i); pair != nil {
		assertTrue(pair.pair == nil)
		e.pair = pair
		pair.pair = e
	}
	if e.origin.edge == nil {
		e.origin.edge = e
	}
	return e
}

// newRawEdge allocates and registers a half-edge between two existing
// vertices without touching next/prev/face; callers wire those up.
func (m *Mesh) newRawEdge(from, to *Vertex) *Edge {
	key := edgeKey{from.id, to.id}
	assertTrue(m.edgeMap[key] == nil)
	e := &Edge{id: uint32(len(m.edges)), origin: from}
	m.edges = append(m.edges, e)
	m.edgeMap[key] = e
	if from.edge == nil {
		from.edge = e
	}
	return e
}

func (m *Mesh) newFace() *Face {
	f := &Face{id: uint32(len(m.faces))}
	m.faces = append(m.faces, f)
	return f
}

// findEdge returns the half-edge i->j, or nil.
func (m *Mesh) findEdge(i, j uint32) *Edge {
	return m.edgeMap[edgeKey{i, j}]
}

// FindEdge returns the half-edge from vertex i to vertex j, or nil. O(1).
func (m *Mesh) FindEdge(i, j uint32) *Edge {
	return m.findEdge(i, j)
}

// LinkColocals threads every group of vertices sharing a position into a
// circular colocal ring and sets the colocal vertex count to the number of
// distinct positions. Each ring starts at the group's lowest-id vertex;
// later members are inserted right after it, so the ring order is
// deterministic but not ascending.
func (m *Mesh) LinkColocals() {
	groups := make(map[r3.Vec]*Vertex, len(m.vertices))
	m.colocalVertexCount = 0
	for _, v := range m.vertices {
		if v == nil {
			continue
		}
		v.colocal = v
		head, ok := groups[v.pos]
		if !ok {
			groups[v.pos] = v
			m.colocalVertexCount++
			continue
		}
		v.colocal = head.colocal
		head.colocal = v
	}
}

// LinkColocalsWithCanonicalMap threads colocal rings by an externally
// supplied canonical id per vertex instead of exact position equality.
// canonical must have one entry per vertex slot.
func (m *Mesh) LinkColocalsWithCanonicalMap(canonical []uint32) {
	assertTrue(len(canonical) == len(m.vertices))
	groups := make(map[uint32]*Vertex, len(m.vertices))
	m.colocalVertexCount = 0
	for _, v := range m.vertices {
		if v == nil {
			continue
		}
		v.colocal = v
		head, ok := groups[canonical[v.id]]
		if !ok {
			groups[canonical[v.id]] = v
			m.colocalVertexCount++
			continue
		}
		v.colocal = head.colocal
		head.colocal = v
	}
}

// ColocalVertexCount returns the number of colocal groups found by the last
// LinkColocals pass.
func (m *Mesh) ColocalVertexCount() int {
	return m.colocalVertexCount
}

// Disconnect unlinks a half-edge from the mesh without deallocating it: the
// lookup entry is dropped, the mutual pairing is cleared (demoting the twin
// to an unpaired edge), the face and origin are pointed away from it and its
// cycle neighbors are spliced together. The edge slot survives until
// RemoveEdge.
func (m *Mesh) Disconnect(e *Edge) {
	assertTrue(e != nil)

	// Prefer the cycle destination for the lookup key; after sewing the
	// pair origin is a different, colocal record.
	var to *Vertex
	if e.next != nil && e.next != e {
		to = e.next.origin
	} else if e.pair != nil {
		to = e.pair.origin
	}
	if to != nil && m.edgeMap[edgeKey{e.origin.id, to.id}] == e {
		delete(m.edgeMap, edgeKey{e.origin.id, to.id})
	} else {
		// The cycle may have degenerated during teardown; find the entry
		// the slow way.
		for k, v := range m.edgeMap {
			if v == e {
				delete(m.edgeMap, k)
				break
			}
		}
	}

	if e.pair != nil {
		e.pair.pair = nil
		e.pair = nil
	}

	if e.face != nil && e.face.edge == e {
		if e.next != nil && e.next != e {
			e.face.edge = e.next
		} else {
			e.face.edge = nil
		}
	}
	if e.origin != nil && e.origin.edge == e {
		if e.prev != nil && e.prev.pair != nil && e.prev.pair != e {
			e.origin.edge = e.prev.pair
		} else {
			e.origin.edge = nil
		}
	}

	if e.prev != nil && e.next != nil && e.next != e {
		link(e.prev, e.next)
	}
	e.next = nil
	e.prev = nil
	e.face = nil
}

// RemoveEdge deallocates a disconnected half-edge. The edge must be fully
// unlinked; disconnect dependents first.
func (m *Mesh) RemoveEdge(e *Edge) {
	assertTrue(e != nil)
	assertTrue(e.pair == nil && e.next == nil && e.prev == nil && e.face == nil)
	assertTrue(m.edges[e.id] == e)
	m.edges[e.id] = nil
}

// RemoveVertex deallocates an isolated vertex: no incident edge and no
// colocal ring mates.
func (m *Mesh) RemoveVertex(v *Vertex) {
	assertTrue(v != nil)
	assertTrue(v.edge == nil)
	assertTrue(v.colocal == nil || v.colocal == v)
	assertTrue(m.vertices[v.id] == v)
	m.vertices[v.id] = nil
}

// RemoveFace deallocates a face whose edges have all been disconnected.
func (m *Mesh) RemoveFace(f *Face) {
	assertTrue(f != nil)
	assertTrue(f.edge == nil)
	assertTrue(m.faces[f.id] == f)
	m.faces[f.id] = nil
}

// VertexCount returns the size of the vertex array, removed slots included.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// EdgeCount returns the size of the edge array, removed slots included.
func (m *Mesh) EdgeCount() int {
	return len(m.edges)
}

// FaceCount returns the size of the face array, removed slots included.
func (m *Mesh) FaceCount() int {
	return len(m.faces)
}

// VertexAt returns the vertex with id i, or nil for a removed slot.
func (m *Mesh) VertexAt(i int) *Vertex {
	return m.vertices[i]
}

// EdgeAt returns the half-edge with id i, or nil for a removed slot.
func (m *Mesh) EdgeAt(i int) *Edge {
	return m.edges[i]
}

// FaceAt returns the face with id i, or nil for a removed slot.
func (m *Mesh) FaceAt(i int) *Face {
	return m.faces[i]
}
