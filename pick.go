package jamstage

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line in world space. Direction need not be normalized.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// Pickable is a clickable box bound to a node. The box is centered on the
// node's local origin and spans [-HalfExtents, +HalfExtents] on each axis.
type Pickable struct {
	// Code identifies the control, e.g. "pause", "2:5" or "bar:1".
	Code string
	// Node supplies the object-to-world transform at test time.
	Node        NodeID
	HalfExtents mgl32.Vec3

	// Distance is the world-space distance from the ray origin to the entry
	// point of the last successful Test.
	Distance float32
}

// NewPickable creates a pickable region.
func NewPickable(code string, node NodeID, halfExtents mgl32.Vec3) *Pickable {
	return &Pickable{Code: code, Node: node, HalfExtents: halfExtents}
}

const (
	singularEpsilon = 1e-12
	parallelEpsilon = 1e-9
)

// Test intersects ray with the box using the node's current world matrix. On
// a hit it records Distance and returns true. A stale node or a singular
// world matrix never hits. A ray starting inside the box hits at distance 0.
func (p *Pickable) Test(g *Graph, ray Ray) bool {
	world, ok := g.World(p.Node)
	if !ok {
		return false
	}
	if math.Abs(float64(world.Det())) < singularEpsilon {
		return false
	}
	inv := world.Inv()
	o := inv.Mul4x1(ray.Origin.Vec4(1)).Vec3()
	d := inv.Mul4x1(ray.Direction.Vec4(0)).Vec3()

	tNear, hit := slab(o, d, p.HalfExtents)
	if !hit {
		return false
	}
	t := max(tNear, 0)
	entry := world.Mul4x1(o.Add(d.Mul(t)).Vec4(1)).Vec3()
	p.Distance = entry.Sub(ray.Origin).Len()
	return true
}

// slab runs the ray/box slab test in the box's local space and returns the
// ray parameter of the entry point. Boundaries are inclusive.
func slab(o, d, half mgl32.Vec3) (tNear float32, hit bool) {
	tNear = -math.MaxFloat32
	tFar := float32(math.MaxFloat32)
	for i := 0; i < 3; i++ {
		lo, hi := -half[i], half[i]
		if math.Abs(float64(d[i])) < parallelEpsilon {
			if o[i] < lo || o[i] > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o[i]) / d[i]
		t2 := (hi - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = max(tNear, t1)
		tFar = min(tFar, t2)
		if tNear > tFar {
			return 0, false
		}
	}
	if tFar < 0 {
		return 0, false
	}
	return tNear, true
}

// nearestHit returns the candidate with the smallest Distance. Ties keep the
// first candidate. Returns nil for an empty slice.
func nearestHit(hits []*Pickable) *Pickable {
	var best *Pickable
	for _, h := range hits {
		if best == nil || h.Distance < best.Distance {
			best = h
		}
	}
	return best
}
