package jamstage

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Translate right-multiplies a translation into the node's local matrix.
// Returns false for a stale handle.
func (g *Graph) Translate(id NodeID, v mgl32.Vec3) bool {
	n := g.get(id)
	if n == nil {
		return false
	}
	n.local = n.local.Mul4(mgl32.Translate3D(v[0], v[1], v[2]))
	return true
}

// Rotate right-multiplies a rotation of angleDegrees about axis into the
// node's local matrix. The axis need not be normalized; a zero axis leaves
// the matrix unchanged.
func (g *Graph) Rotate(id NodeID, angleDegrees float32, axis mgl32.Vec3) bool {
	n := g.get(id)
	if n == nil {
		return false
	}
	l := axis.Len()
	if l == 0 {
		return true
	}
	n.local = n.local.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(angleDegrees), axis.Mul(1/l)))
	return true
}

// ResetLocal replaces the node's local matrix with identity.
func (g *Graph) ResetLocal(id NodeID) bool {
	n := g.get(id)
	if n == nil {
		return false
	}
	n.local = mgl32.Ident4()
	return true
}

// Local returns the node's local matrix.
func (g *Graph) Local(id NodeID) (mgl32.Mat4, bool) {
	n := g.get(id)
	if n == nil {
		return mgl32.Mat4{}, false
	}
	return n.local, true
}

// World returns the node's world matrix as of the last UpdateWorld.
func (g *Graph) World(id NodeID) (mgl32.Mat4, bool) {
	n := g.get(id)
	if n == nil {
		return mgl32.Mat4{}, false
	}
	return n.world, true
}

// WorldPosition returns the world-space origin of the node.
func (g *Graph) WorldPosition(id NodeID) (mgl32.Vec3, bool) {
	n := g.get(id)
	if n == nil {
		return mgl32.Vec3{}, false
	}
	return n.world.Col(3).Vec3(), true
}

// UpdateWorld recomputes every world matrix in one pre-order pass from the
// root: world = parent.world * local, and world = local at the root.
// Returns the number of nodes visited.
func (g *Graph) UpdateWorld() int {
	root := g.get(g.root)
	root.world = root.local
	visited := 1
	for _, c := range root.children {
		visited += g.updateWorld(c, root.world)
	}
	return visited
}

func (g *Graph) updateWorld(id NodeID, parentWorld mgl32.Mat4) int {
	n := g.get(id)
	if n == nil {
		return 0
	}
	n.world = parentWorld.Mul4(n.local)
	visited := 1
	world := n.world
	for _, c := range n.children {
		visited += g.updateWorld(c, world)
	}
	return visited
}
