package jamstage

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-4

func assertNear(t *testing.T, name string, got, want float32) {
	t.Helper()
	if math.Abs(float64(got-want)) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want mgl32.Vec3) {
	t.Helper()
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func assertMatrix(t *testing.T, name string, got, want mgl32.Mat4) {
	t.Helper()
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- Local transform ---

func TestTranslateRightMultiplies(t *testing.T) {
	g := NewGraph("root")
	n := g.NewNode("n", g.Root())
	g.Translate(n, mgl32.Vec3{1, 2, 3})
	g.Translate(n, mgl32.Vec3{1, 0, 0})
	local, _ := g.Local(n)
	assertMatrix(t, "local", local, mgl32.Translate3D(2, 2, 3))
}

func TestRotateThenTranslateUsesLocalAxes(t *testing.T) {
	g := NewGraph("root")
	n := g.NewNode("n", g.Root())
	g.Rotate(n, 90, AxisY)
	g.Translate(n, mgl32.Vec3{0, 0, 1})
	g.UpdateWorld()
	// +Z rotated 90 degrees about +Y points along +X.
	pos, _ := g.WorldPosition(n)
	assertVec(t, "position", pos, mgl32.Vec3{1, 0, 0})
}

func TestRotateNormalizesAxis(t *testing.T) {
	g := NewGraph("root")
	a := g.NewNode("a", g.Root())
	b := g.NewNode("b", g.Root())
	g.Rotate(a, 30, mgl32.Vec3{0, 5, 0})
	g.Rotate(b, 30, AxisY)
	la, _ := g.Local(a)
	lb, _ := g.Local(b)
	assertMatrix(t, "local", la, lb)
}

func TestRotateZeroAxisIsNoop(t *testing.T) {
	g := NewGraph("root")
	n := g.NewNode("n", g.Root())
	if !g.Rotate(n, 45, mgl32.Vec3{}) {
		t.Fatal("Rotate on a live node should succeed")
	}
	local, _ := g.Local(n)
	assertMatrix(t, "local", local, mgl32.Ident4())
}

func TestResetLocal(t *testing.T) {
	g := NewGraph("root")
	n := g.NewNode("n", g.Root())
	g.Translate(n, mgl32.Vec3{4, 5, 6})
	g.ResetLocal(n)
	local, _ := g.Local(n)
	assertMatrix(t, "local", local, mgl32.Ident4())
}

// --- World transform ---

func TestWorldIsProductOfAncestorChain(t *testing.T) {
	g := NewGraph("root")
	g.Translate(g.Root(), mgl32.Vec3{0, 1, 0})
	a := g.NewNode("a", g.Root())
	g.Rotate(a, 90, AxisY)
	b := g.NewNode("b", a)
	g.Translate(b, mgl32.Vec3{0, 0, 2})
	c := g.NewNode("c", b)
	g.Rotate(c, 45, AxisX)

	if got := g.UpdateWorld(); got != 4 {
		t.Errorf("visited = %d, want 4", got)
	}

	lr, _ := g.Local(g.Root())
	la, _ := g.Local(a)
	lb, _ := g.Local(b)
	lc, _ := g.Local(c)
	want := lr.Mul4(la).Mul4(lb).Mul4(lc)
	got, _ := g.World(c)
	assertMatrix(t, "world", got, want)

	pos, _ := g.WorldPosition(b)
	assertVec(t, "b position", pos, mgl32.Vec3{2, 1, 0})
}

func TestWorldNotUpdatedUntilTraversal(t *testing.T) {
	g := NewGraph("root")
	n := g.NewNode("n", g.Root())
	g.Translate(n, mgl32.Vec3{3, 0, 0})
	world, _ := g.World(n)
	assertMatrix(t, "stale world", world, mgl32.Ident4())
	g.UpdateWorld()
	world, _ = g.World(n)
	assertMatrix(t, "world", world, mgl32.Translate3D(3, 0, 0))
}

func TestTransformStaleHandle(t *testing.T) {
	g := NewGraph("root")
	n := g.NewNode("n", g.Root())
	g.Remove(n)
	if g.Translate(n, mgl32.Vec3{1, 0, 0}) {
		t.Error("Translate on stale handle should fail")
	}
	if g.Rotate(n, 10, AxisX) {
		t.Error("Rotate on stale handle should fail")
	}
	if g.ResetLocal(n) {
		t.Error("ResetLocal on stale handle should fail")
	}
	if _, ok := g.World(n); ok {
		t.Error("World on stale handle should report absence")
	}
	if _, ok := g.Local(n); ok {
		t.Error("Local on stale handle should report absence")
	}
}
