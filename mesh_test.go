package halfedge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func vec(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// newTriangle builds a single CCW triangle in the XY plane.
func newTriangle(t *testing.T) *Mesh {
	t.Helper()
	m := New()
	m.AddVertex(vec(0, 0, 0))
	m.AddVertex(vec(1, 0, 0))
	m.AddVertex(vec(0, 1, 0))
	_, err := m.AddFace(0, 1, 2)
	require.NoError(t, err)
	return m
}

// newQuad builds a unit square as a single quad face.
func newQuad(t *testing.T) *Mesh {
	t.Helper()
	m := New()
	m.AddVertex(vec(0, 0, 0))
	m.AddVertex(vec(1, 0, 0))
	m.AddVertex(vec(1, 1, 0))
	m.AddVertex(vec(0, 1, 0))
	_, err := m.AddFace(0, 1, 2, 3)
	require.NoError(t, err)
	return m
}

func TestAddFaceQuad(t *testing.T) {
	m := newQuad(t)

	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 4, m.EdgeCount())
	assert.Equal(t, 1, m.FaceCount())
	assert.Equal(t, 0, m.ErrorCount())

	f := m.FaceAt(0)
	require.NotNil(t, f)
	assert.Equal(t, 4, f.Degree())

	// Every edge of an isolated face is a boundary edge with no pair yet.
	for e := range f.Edges() {
		assert.Nil(t, e.Pair())
		assert.True(t, e.IsBoundary())
		assert.Same(t, f, e.Face())
	}

	// The cycle wraps: from vertex 0 around and back.
	e := m.FindEdge(0, 1)
	require.NotNil(t, e)
	assert.Equal(t, uint32(1), e.To().ID())
	assert.Same(t, e, e.Next().Next().Next().Next())
	assert.Same(t, e, e.Prev().Prev().Prev().Prev())

	assert.True(t, m.IsValid())
}

func TestAddFaceSharedEdge(t *testing.T) {
	m := newTriangle(t)
	_, err := m.AddFace(1, 0, 2)
	require.NoError(t, err)

	assert.Equal(t, 6, m.EdgeCount())
	assert.Equal(t, 2, m.FaceCount())

	e01 := m.FindEdge(0, 1)
	e10 := m.FindEdge(1, 0)
	require.NotNil(t, e01)
	require.NotNil(t, e10)
	assert.Same(t, e10, e01.Pair())
	assert.Same(t, e01, e10.Pair())
	assert.False(t, e01.IsBoundary())

	// Adding the same face again would claim half-edges that already have
	// faces on both sides.
	f, err := m.AddFace(0, 1, 2)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrDuplicateEdge)
	assert.Equal(t, 6, m.EdgeCount())
	assert.Equal(t, 2, m.FaceCount())
	assert.Equal(t, 1, m.ErrorCount())
	i0, i1 := m.ErrorIndexes()
	assert.Equal(t, uint32(0), i0)
	assert.Equal(t, uint32(1), i1)

	m.ResetErrors()
	assert.Equal(t, 0, m.ErrorCount())
}

func TestAddFaceRejected(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    error
		i0, i1  uint32
	}{
		{"index out of range", []uint32{0, 1, 9}, ErrIndexOutOfRange, 9, 9},
		{"repeated vertex", []uint32{0, 1, 1}, ErrDegenerateEdge, 1, 1},
		{"too few vertices", []uint32{0, 1}, ErrDegenerateFace, 2, 0},
		{"repeated directed edge in window", []uint32{0, 1, 2, 0, 1, 2}, ErrDuplicateEdge, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.AddVertex(vec(0, 0, 0))
			m.AddVertex(vec(1, 0, 0))
			m.AddVertex(vec(0, 1, 0))

			f, err := m.AddFace(tt.indices...)
			assert.Nil(t, f)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			// A rejected face leaves the mesh untouched.
			assert.Equal(t, 3, m.VertexCount())
			assert.Equal(t, 0, m.EdgeCount())
			assert.Equal(t, 0, m.FaceCount())
			assert.Equal(t, 1, m.ErrorCount())
			i0, i1 := m.ErrorIndexes()
			assert.Equal(t, tt.i0, i0)
			assert.Equal(t, tt.i1, i1)
		})
	}
}

func TestAddFaceRange(t *testing.T) {
	m := New()
	for i := 0; i < 6; i++ {
		m.AddVertex(vec(float64(i), 0, 0))
	}
	indices := []uint32{0, 1, 2, 3, 4, 5}

	f, err := m.AddFaceRange(indices, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Degree())
	require.NotNil(t, m.FindEdge(1, 2))
	require.NotNil(t, m.FindEdge(3, 1))
	assert.Nil(t, m.FindEdge(0, 1))
}

func TestLinkColocals(t *testing.T) {
	m := New()
	m.AddVertex(vec(0, 0, 0)) // 0
	m.AddVertex(vec(1, 0, 0)) // 1
	m.AddVertex(vec(0, 1, 0)) // 2
	m.AddVertex(vec(1, 0, 0)) // 3, colocal with 1
	m.AddVertex(vec(0, 0, 0)) // 4, colocal with 0
	m.AddVertex(vec(0, -1, 0))

	m.LinkColocals()
	assert.Equal(t, 4, m.ColocalVertexCount())

	v0, v1 := m.VertexAt(0), m.VertexAt(1)
	v3, v4 := m.VertexAt(3), m.VertexAt(4)
	assert.True(t, v0.IsColocal(v4))
	assert.True(t, v4.IsColocal(v0))
	assert.True(t, v1.IsColocal(v3))
	assert.False(t, v0.IsColocal(v1))
	assert.True(t, v0.IsColocal(v0))

	var ring []uint32
	for c := range v0.Colocals() {
		ring = append(ring, c.ID())
	}
	assert.ElementsMatch(t, []uint32{0, 4}, ring)
}

func TestLinkColocalsWithCanonicalMap(t *testing.T) {
	m := New()
	m.AddVertex(vec(0, 0, 0))
	m.AddVertex(vec(1, 0, 0))
	m.AddVertex(vec(0, 1, 0))
	m.AddVertex(vec(1, 1, 0))

	m.LinkColocalsWithCanonicalMap([]uint32{7, 7, 8, 8})
	assert.Equal(t, 2, m.ColocalVertexCount())
	assert.True(t, m.VertexAt(0).IsColocal(m.VertexAt(1)))
	assert.True(t, m.VertexAt(2).IsColocal(m.VertexAt(3)))
	assert.False(t, m.VertexAt(0).IsColocal(m.VertexAt(2)))

	// Relinking by position discards the canonical grouping.
	m.LinkColocals()
	assert.Equal(t, 4, m.ColocalVertexCount())
	assert.False(t, m.VertexAt(0).IsColocal(m.VertexAt(1)))
}

func TestClone(t *testing.T) {
	m := newQuad(t)
	m.LinkColocals()
	m.LinkBoundary()

	c := m.Clone()
	assert.Equal(t, m.Checksum(), c.Checksum())
	assert.True(t, c.IsValid())

	// The clone owns its records.
	assert.NotSame(t, m.VertexAt(0), c.VertexAt(0))
	assert.NotSame(t, m.FindEdge(0, 1), c.FindEdge(0, 1))
	assert.Same(t, c.FindEdge(0, 1), c.FindEdge(1, 0).Pair())

	m.AddVertex(vec(5, 5, 5))
	assert.NotEqual(t, m.Checksum(), c.Checksum())
	assert.Equal(t, 4, c.VertexCount())
}

func TestClear(t *testing.T) {
	m := newQuad(t)
	m.Clear()
	assert.Equal(t, 0, m.VertexCount())
	assert.Equal(t, 0, m.EdgeCount())
	assert.Equal(t, 0, m.FaceCount())
	assert.Nil(t, m.FindEdge(0, 1))

	// The cleared mesh is usable again.
	m.AddVertex(vec(0, 0, 0))
	m.AddVertex(vec(1, 0, 0))
	m.AddVertex(vec(0, 1, 0))
	_, err := m.AddFace(0, 1, 2)
	require.NoError(t, err)
	assert.True(t, m.IsValid())
}

func TestDisconnectAndRemove(t *testing.T) {
	m := New()
	m.AddVertex(vec(0, 0, 0))
	m.AddVertex(vec(1, 0, 0))
	m.AddVertex(vec(0, 1, 0))
	m.AddVertex(vec(5, 0, 0))
	m.AddVertex(vec(6, 0, 0))
	m.AddVertex(vec(5, 1, 0))
	_, err := m.AddFace(0, 1, 2)
	require.NoError(t, err)
	f2, err := m.AddFace(3, 4, 5)
	require.NoError(t, err)

	// Dismantle the second triangle edge by edge.
	var edges []*Edge
	for e := range f2.Edges() {
		edges = append(edges, e)
	}
	require.Len(t, edges, 3)
	for _, e := range edges {
		m.Disconnect(e)
		m.RemoveEdge(e)
	}
	assert.Nil(t, f2.Edge())
	m.RemoveFace(f2)
	for i := 3; i <= 5; i++ {
		v := m.VertexAt(i)
		require.NotNil(t, v)
		assert.Nil(t, v.Edge())
		m.RemoveVertex(v)
	}

	// Slots stay behind as holes until compaction.
	assert.Equal(t, 6, m.VertexCount())
	assert.Nil(t, m.VertexAt(4))
	assert.Nil(t, m.FindEdge(3, 4))
	assert.True(t, m.IsValid())

	m.CompactVertices()
	m.CompactEdges()
	m.CompactFaces()
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 3, m.EdgeCount())
	assert.Equal(t, 1, m.FaceCount())
	require.NotNil(t, m.FindEdge(0, 1))
	assert.True(t, m.IsValid())
}

func TestIterators(t *testing.T) {
	m := newTriangle(t)
	_, err := m.AddFace(1, 0, 2)
	require.NoError(t, err)

	nv, ne, nf := 0, 0, 0
	for range m.Vertices() {
		nv++
	}
	for range m.Edges() {
		ne++
	}
	for range m.Faces() {
		nf++
	}
	assert.Equal(t, 3, nv)
	assert.Equal(t, 6, ne)
	assert.Equal(t, 2, nf)

	// Early break is fine.
	for range m.Edges() {
		ne = -1
		break
	}
	assert.Equal(t, -1, ne)

	// Removed slots are skipped.
	e := m.FindEdge(2, 1)
	require.NotNil(t, e)
	m.Disconnect(e)
	m.RemoveEdge(e)
	ne = 0
	for range m.Edges() {
		ne++
	}
	assert.Equal(t, 5, ne)
}

func TestChecksum(t *testing.T) {
	a := newQuad(t)
	b := newQuad(t)
	assert.Equal(t, a.Checksum(), b.Checksum())

	b.LinkBoundary()
	assert.NotEqual(t, a.Checksum(), b.Checksum())

	a.LinkBoundary()
	assert.Equal(t, a.Checksum(), b.Checksum())
}

func TestFindEdgeMissing(t *testing.T) {
	m := newTriangle(t)
	assert.Nil(t, m.FindEdge(1, 0))
	assert.Nil(t, m.FindEdge(0, 2))
	require.NotNil(t, m.FindEdge(2, 0))
}

func TestErrorTriple(t *testing.T) {
	m := newTriangle(t)
	_, err := m.AddFace(2, 2, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerateEdge))
	_, err = m.AddFace(0, 1, 2)
	assert.ErrorIs(t, err, ErrDuplicateEdge)

	// The triple keeps the most recent failure.
	assert.Equal(t, 2, m.ErrorCount())
	i0, i1 := m.ErrorIndexes()
	assert.Equal(t, uint32(0), i0)
	assert.Equal(t, uint32(1), i1)
}
