package jamstage

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBoxMeshBounds(t *testing.T) {
	m := NewBoxMesh(4, 10, 1)
	if len(m.Positions) != 24 || len(m.Normals) != 24 || len(m.Indices) != 36 {
		t.Fatalf("counts = %d/%d/%d", len(m.Positions), len(m.Normals), len(m.Indices))
	}
	lo, hi := m.Bounds()
	assertVec(t, "lo", lo, mgl32.Vec3{-2, -5, -0.5})
	assertVec(t, "hi", hi, mgl32.Vec3{2, 5, 0.5})
}

func TestBoxMeshWindingMatchesNormals(t *testing.T) {
	m := NewBoxMesh(1, 1, 1)
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Positions[m.Indices[i]], m.Positions[m.Indices[i+1]], m.Positions[m.Indices[i+2]]
		face := b.Sub(a).Cross(c.Sub(a))
		if face.Dot(m.Normals[m.Indices[i]]) <= 0 {
			t.Errorf("triangle %d winds against its normal", i/3)
		}
	}
}

func TestSphereMeshOnSurface(t *testing.T) {
	m := NewSphereMesh(2, 8)
	for i, p := range m.Positions {
		assertNear(t, "radius", p.Len(), 2)
		assertNear(t, "normal length", m.Normals[i].Len(), 1)
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestSphereMeshMinimumSegments(t *testing.T) {
	if got, want := len(NewSphereMesh(1, 1).Indices), len(NewSphereMesh(1, 3).Indices); got != want {
		t.Errorf("indices = %d, want %d", got, want)
	}
}

func TestParseMeshLibrary(t *testing.T) {
	data := []byte(`{
		"square_pad": {
			"vertices": [0,0,0, 1,0,0, 1,0,1],
			"normals": [0,1,0, 0,1,0, 0,1,0],
			"faces": [[0,1,2]]
		}
	}`)
	lib, err := ParseMeshLibrary(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m := lib.Get("square_pad")
	if m == nil {
		t.Fatal("square_pad missing")
	}
	assertVec(t, "vertex 2", m.Positions[2], mgl32.Vec3{1, 0, 1})
	if len(m.Indices) != 3 || m.Indices[2] != 2 {
		t.Errorf("indices = %v", m.Indices)
	}
	if lib.Get("missing") != nil {
		t.Error("missing mesh should be nil")
	}
}

func TestParseMeshLibraryRejectsBadData(t *testing.T) {
	cases := map[string]string{
		"not json":       `{`,
		"ragged":         `{"m": {"vertices": [0,0], "normals": [], "faces": []}}`,
		"index overflow": `{"m": {"vertices": [0,0,0], "normals": [0,1,0], "faces": [[0,0,1]]}}`,
	}
	for name, data := range cases {
		if _, err := ParseMeshLibrary([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestNilMeshLibraryGet(t *testing.T) {
	var lib MeshLibrary
	if lib.Get("anything") != nil {
		t.Error("nil library should return nil meshes")
	}
}
