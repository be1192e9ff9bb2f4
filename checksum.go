package halfedge

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

const nilRef = ^uint32(0)

// Checksum returns a 64-bit digest of the whole mesh state: entity ids,
// positions and every cross-reference. Two meshes with identical arrays and
// wiring hash equal, which makes the checksum a cheap modified-since probe
// and the yardstick for compaction idempotence.
func (m *Mesh) Checksum() uint64 {
	d := xxhash.New()
	var buf [8]byte

	u32 := func(x uint32) {
		binary.LittleEndian.PutUint32(buf[:4], x)
		d.Write(buf[:4])
	}
	f64 := func(x float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
		d.Write(buf[:])
	}
	vref := func(v *Vertex) {
		if v == nil {
			u32(nilRef)
		} else {
			u32(v.id)
		}
	}
	eref := func(e *Edge) {
		if e == nil {
			u32(nilRef)
		} else {
			u32(e.id)
		}
	}

	u32(uint32(len(m.vertices)))
	for _, v := range m.vertices {
		if v == nil {
			u32(nilRef)
			continue
		}
		u32(v.id)
		f64(v.pos.X)
		f64(v.pos.Y)
		f64(v.pos.Z)
		eref(v.edge)
		vref(v.colocal)
	}
	u32(uint32(len(m.edges)))
	for _, e := range m.edges {
		if e == nil {
			u32(nilRef)
			continue
		}
		u32(e.id)
		vref(e.origin)
		eref(e.pair)
		eref(e.next)
		eref(e.prev)
		if e.face == nil {
			u32(nilRef)
		} else {
			u32(e.face.id)
		}
	}
	u32(uint32(len(m.faces)))
	for _, f := range m.faces {
		if f == nil {
			u32(nilRef)
			continue
		}
		u32(f.id)
		eref(f.edge)
	}
	return d.Sum64()
}
