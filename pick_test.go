package jamstage

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func pickGraph(t *testing.T, at mgl32.Vec3) (*Graph, NodeID) {
	t.Helper()
	g := NewGraph("root")
	n := g.NewNode("box", g.Root())
	g.Translate(n, at)
	g.UpdateWorld()
	return g, n
}

func TestPickCenterRayHitsNearFace(t *testing.T) {
	g, n := pickGraph(t, mgl32.Vec3{0, 0, -5})
	p := NewPickable("c", n, mgl32.Vec3{1, 1, 1})
	ray := Ray{Origin: mgl32.Vec3{}, Direction: mgl32.Vec3{0, 0, -1}}
	if !p.Test(g, ray) {
		t.Fatal("expected hit")
	}
	assertNear(t, "distance", p.Distance, 4)
}

func TestPickUnnormalizedDirection(t *testing.T) {
	g, n := pickGraph(t, mgl32.Vec3{0, 0, -5})
	p := NewPickable("c", n, mgl32.Vec3{1, 1, 1})
	ray := Ray{Origin: mgl32.Vec3{}, Direction: mgl32.Vec3{0, 0, -10}}
	if !p.Test(g, ray) {
		t.Fatal("expected hit")
	}
	assertNear(t, "distance", p.Distance, 4)
}

func TestPickOffsetBeyondHalfExtentMisses(t *testing.T) {
	g, n := pickGraph(t, mgl32.Vec3{0, 0, -5})
	p := NewPickable("c", n, mgl32.Vec3{1, 1, 1})
	ray := Ray{Origin: mgl32.Vec3{1.5, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}}
	if p.Test(g, ray) {
		t.Error("ray outside the box should miss")
	}
}

func TestPickBoxBehindOriginMisses(t *testing.T) {
	g, n := pickGraph(t, mgl32.Vec3{0, 0, 5})
	p := NewPickable("c", n, mgl32.Vec3{1, 1, 1})
	if p.Test(g, Ray{Direction: mgl32.Vec3{0, 0, -1}}) {
		t.Error("box behind the ray should miss")
	}
}

func TestPickOriginInsideHitsAtZero(t *testing.T) {
	g, n := pickGraph(t, mgl32.Vec3{})
	p := NewPickable("c", n, mgl32.Vec3{1, 1, 1})
	if !p.Test(g, Ray{Direction: mgl32.Vec3{1, 0, 0}}) {
		t.Fatal("ray from inside should hit")
	}
	assertNear(t, "distance", p.Distance, 0)
}

func TestPickUsesRotatedLocalSpace(t *testing.T) {
	g := NewGraph("root")
	n := g.NewNode("slab", g.Root())
	g.Translate(n, mgl32.Vec3{0, 0, -5})
	g.Rotate(n, 90, AxisY)
	g.UpdateWorld()
	// Thin along local X, which the rotation lays along world Z.
	p := NewPickable("c", n, mgl32.Vec3{0.1, 1, 2})
	if !p.Test(g, Ray{Direction: mgl32.Vec3{0, 0, -1}}) {
		t.Fatal("expected hit")
	}
	assertNear(t, "distance", p.Distance, 4.9)
	// Local Z lies along world X.
	if !p.Test(g, Ray{Origin: mgl32.Vec3{1.5, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}}) {
		t.Error("x=1.5 should hit")
	}
	if p.Test(g, Ray{Origin: mgl32.Vec3{2.5, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}}) {
		t.Error("x=2.5 should miss")
	}
}

func TestPickStaleNodeNeverHits(t *testing.T) {
	g, n := pickGraph(t, mgl32.Vec3{0, 0, -5})
	p := NewPickable("c", n, mgl32.Vec3{1, 1, 1})
	g.Remove(n)
	if p.Test(g, Ray{Direction: mgl32.Vec3{0, 0, -1}}) {
		t.Error("stale node should never hit")
	}
}

func TestNearestHitIgnoresInsertionOrder(t *testing.T) {
	g := NewGraph("root")
	near := g.NewNode("near", g.Root())
	g.Translate(near, mgl32.Vec3{0, 0, -3})
	far := g.NewNode("far", g.Root())
	g.Translate(far, mgl32.Vec3{0, 0, -8})
	g.UpdateWorld()

	ray := Ray{Direction: mgl32.Vec3{0, 0, -1}}
	for _, order := range [][2]NodeID{{near, far}, {far, near}} {
		var hits []*Pickable
		for _, id := range order {
			p := NewPickable("", id, mgl32.Vec3{1, 1, 1})
			if p.Test(g, ray) {
				hits = append(hits, p)
			}
		}
		best := nearestHit(hits)
		if best == nil || best.Node != near {
			t.Errorf("order %v: nearest = %+v, want near", order, best)
		}
	}
}

func TestNearestHitTiesKeepFirst(t *testing.T) {
	a := &Pickable{Code: "a", Distance: 2}
	b := &Pickable{Code: "b", Distance: 2}
	if got := nearestHit([]*Pickable{a, b}); got != a {
		t.Errorf("nearest = %v, want a", got.Code)
	}
	if nearestHit(nil) != nil {
		t.Error("empty hits should yield nil")
	}
}

func TestScenePickRay(t *testing.T) {
	s := NewScene(DefaultConfig(), nil)
	g := s.Graph()
	n := g.NewNode("pad", g.Root())
	g.Translate(n, mgl32.Vec3{0, 0, -5})
	s.AddPickable(NewPickable("1:1", n, mgl32.Vec3{1, 1, 1}))
	s.Tick(0)

	hit, ok := s.Pick()
	if !ok || hit.Code != "1:1" {
		t.Fatalf("Pick = %v, %v", hit, ok)
	}
	s.CameraMovement(900, 0)
	if _, ok := s.Pick(); ok {
		t.Error("turning away should miss")
	}
}
