package jamstage

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an opaque geometry payload handed through to the renderer.
// Positions and Normals are parallel; Indices form triangles.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint16
}

// Bounds returns the local-space axis-aligned bounds of the mesh.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if m == nil || len(m.Positions) == 0 {
		return
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return lo, hi
}

// MeshLibrary maps mesh names to geometry supplied by the host.
type MeshLibrary map[string]*Mesh

// Get returns the named mesh, or nil when the library does not carry it.
func (l MeshLibrary) Get(name string) *Mesh {
	if l == nil {
		return nil
	}
	return l[name]
}

// meshDescriptor is the interchange form of a mesh: flat position and normal
// arrays plus triangle index triples.
type meshDescriptor struct {
	Vertices []float32   `json:"vertices"`
	Normals  []float32   `json:"normals"`
	Faces    [][3]uint16 `json:"faces"`
}

// ParseMeshLibrary decodes a JSON object of named mesh descriptors.
func ParseMeshLibrary(data []byte) (MeshLibrary, error) {
	var raw map[string]meshDescriptor
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse mesh library: %w", err)
	}
	lib := make(MeshLibrary, len(raw))
	for name, d := range raw {
		if len(d.Vertices)%3 != 0 || len(d.Normals)%3 != 0 {
			return nil, fmt.Errorf("parse mesh library: mesh %q: component count not a multiple of 3", name)
		}
		m := &Mesh{
			Positions: unflatten(d.Vertices),
			Normals:   unflatten(d.Normals),
			Indices:   make([]uint16, 0, len(d.Faces)*3),
		}
		for _, f := range d.Faces {
			for _, idx := range f {
				if int(idx) >= len(m.Positions) {
					return nil, fmt.Errorf("parse mesh library: mesh %q: index %d out of range", name, idx)
				}
			}
			m.Indices = append(m.Indices, f[0], f[1], f[2])
		}
		lib[name] = m
	}
	return lib, nil
}

func unflatten(v []float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(v)/3)
	for i := range out {
		out[i] = mgl32.Vec3{v[i*3], v[i*3+1], v[i*3+2]}
	}
	return out
}

// boxFaces lists the six faces of a unit box as normal plus two in-plane
// axes (u, v) with u x v == normal.
var boxFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// NewBoxMesh builds a box of the given size centered on the origin, with
// flat per-face normals.
func NewBoxMesh(width, height, depth float32) *Mesh {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	m := &Mesh{
		Positions: make([]mgl32.Vec3, 0, 24),
		Normals:   make([]mgl32.Vec3, 0, 24),
		Indices:   make([]uint16, 0, 36),
	}
	for _, f := range boxFaces {
		n, u, v := f[0], f[1], f[2]
		base := uint16(len(m.Positions))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := n.Add(u.Mul(c[0])).Add(v.Mul(c[1]))
			m.Positions = append(m.Positions, mgl32.Vec3{p[0] * half[0], p[1] * half[1], p[2] * half[2]})
			m.Normals = append(m.Normals, n)
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// NewSphereMesh builds a UV sphere with the given number of latitude
// segments (longitude uses twice as many). segments below 3 are raised to 3.
func NewSphereMesh(radius float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	rings, sectors := segments, segments*2
	m := &Mesh{}
	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		sp, cp := math.Sincos(phi)
		for s := 0; s <= sectors; s++ {
			theta := 2 * math.Pi * float64(s) / float64(sectors)
			st, ct := math.Sincos(theta)
			n := mgl32.Vec3{float32(sp * ct), float32(cp), float32(sp * st)}
			m.Normals = append(m.Normals, n)
			m.Positions = append(m.Positions, n.Mul(radius))
		}
	}
	stride := uint16(sectors + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < sectors; s++ {
			a := uint16(r)*stride + uint16(s)
			b := a + stride
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return m
}
