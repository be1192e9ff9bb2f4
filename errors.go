package halfedge

import (
	"errors"
	"fmt"
)

// Construction and validation failures. Failing calls wrap one of these with
// the offending indices and leave the mesh untouched.
var (
	ErrIndexOutOfRange = errors.New("halfedge: vertex index out of range")
	ErrDegenerateFace  = errors.New("halfedge: face needs at least three vertices")
	ErrDegenerateEdge  = errors.New("halfedge: degenerate edge")
	ErrDuplicateEdge   = errors.New("halfedge: half-edge already owned by a face")
	ErrNonManifold     = errors.New("halfedge: non-manifold topology")
	ErrBrokenPair      = errors.New("halfedge: pair links not mutual")
	ErrBrokenLink      = errors.New("halfedge: next/prev links not mutual")
	ErrBrokenFaceCycle = errors.New("halfedge: face cycle does not close")
	ErrBrokenLookup    = errors.New("halfedge: edge lookup entry mismatch")
	ErrBrokenVertexRef = errors.New("halfedge: vertex incident edge mismatch")
	ErrBrokenColocal   = errors.New("halfedge: colocal ring does not close")
)

// fail records the diagnostic triple and returns the wrapped reason.
func (m *Mesh) fail(reason error, i0, i1 uint32) error {
	m.errorCount++
	m.errorIndex0 = i0
	m.errorIndex1 = i1
	return fmt.Errorf("%w (%d, %d)", reason, i0, i1)
}

// ErrorCount returns the number of failed operations since the last reset.
func (m *Mesh) ErrorCount() int {
	return m.errorCount
}

// ErrorIndexes returns the two indices recorded by the last failure.
func (m *Mesh) ErrorIndexes() (uint32, uint32) {
	return m.errorIndex0, m.errorIndex1
}

// ResetErrors clears the diagnostic triple.
func (m *Mesh) ResetErrors() {
	m.errorCount = 0
	m.errorIndex0 = 0
	m.errorIndex1 = 0
}
