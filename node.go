package jamstage

import (
	"github.com/go-gl/mathgl/mgl32"
)

// NodeID is a stable handle to a node in a Graph. The zero value refers to
// no node. A handle goes stale when its node is removed; the slot may be
// reused, but the generation check keeps old handles from aliasing the new
// occupant.
type NodeID struct {
	index uint32
	gen   uint32
}

// IsNil reports whether id is the zero handle.
func (id NodeID) IsNil() bool {
	return id.gen == 0
}

// node is one arena slot. Hierarchy links are handles, never pointers.
type node struct {
	name     string
	parent   NodeID
	children []NodeID

	local mgl32.Mat4
	world mgl32.Mat4
	color mgl32.Vec3
	mesh  *Mesh

	gen  uint32
	live bool
}

// Graph owns every node of a scene. The root is created with the graph and
// cannot be removed.
type Graph struct {
	nodes  []node
	free   []uint32
	root   NodeID
	byName map[string][]NodeID
	// drawOrder holds mesh-bearing nodes in creation order.
	drawOrder []NodeID
	count     int
}

// NewGraph creates a graph holding only a root node with the given name.
func NewGraph(rootName string) *Graph {
	g := &Graph{byName: make(map[string][]NodeID)}
	g.root = g.alloc(rootName, NodeID{}, nil, mgl32.Vec3{})
	return g
}

// Root returns the root handle.
func (g *Graph) Root() NodeID {
	return g.root
}

// Len returns the number of live nodes, root included.
func (g *Graph) Len() int {
	return g.count
}

// NewNode creates a container node under parent. A nil parent means the
// root. Returns the zero handle if parent is stale.
func (g *Graph) NewNode(name string, parent NodeID) NodeID {
	return g.NewMeshNode(name, parent, nil, mgl32.Vec3{})
}

// NewMeshNode creates a node that carries geometry and a color under parent.
// A nil parent means the root. Returns the zero handle if parent is stale.
func (g *Graph) NewMeshNode(name string, parent NodeID, mesh *Mesh, color mgl32.Vec3) NodeID {
	if parent.IsNil() {
		parent = g.root
	}
	if g.get(parent) == nil {
		return NodeID{}
	}
	id := g.alloc(name, parent, mesh, color)
	p := g.get(parent)
	p.children = append(p.children, id)
	return id
}

func (g *Graph) alloc(name string, parent NodeID, mesh *Mesh, color mgl32.Vec3) NodeID {
	var idx uint32
	if n := len(g.free); n > 0 {
		idx = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		idx = uint32(len(g.nodes))
		g.nodes = append(g.nodes, node{})
	}
	slot := &g.nodes[idx]
	gen := slot.gen + 1
	*slot = node{
		name:   name,
		parent: parent,
		local:  mgl32.Ident4(),
		world:  mgl32.Ident4(),
		color:  color,
		mesh:   mesh,
		gen:    gen,
		live:   true,
	}
	id := NodeID{index: idx, gen: gen}
	g.byName[name] = append(g.byName[name], id)
	if mesh != nil {
		g.drawOrder = append(g.drawOrder, id)
	}
	g.count++
	return id
}

// get returns the slot for id, or nil if id is zero or stale.
func (g *Graph) get(id NodeID) *node {
	if id.IsNil() || int(id.index) >= len(g.nodes) {
		return nil
	}
	n := &g.nodes[id.index]
	if !n.live || n.gen != id.gen {
		return nil
	}
	return n
}

// Contains reports whether id refers to a live node.
func (g *Graph) Contains(id NodeID) bool {
	return g.get(id) != nil
}

// Find returns the earliest-created live node with the given name.
func (g *Graph) Find(name string) (NodeID, bool) {
	ids := g.byName[name]
	if len(ids) == 0 {
		return NodeID{}, false
	}
	return ids[0], true
}

// Name returns the node's name.
func (g *Graph) Name(id NodeID) (string, bool) {
	n := g.get(id)
	if n == nil {
		return "", false
	}
	return n.name, true
}

// Parent returns the node's parent. The root has no parent.
func (g *Graph) Parent(id NodeID) (NodeID, bool) {
	n := g.get(id)
	if n == nil || n.parent.IsNil() {
		return NodeID{}, false
	}
	return n.parent, true
}

// Children returns the node's children in insertion order. The returned
// slice MUST NOT be mutated by the caller.
func (g *Graph) Children(id NodeID) []NodeID {
	n := g.get(id)
	if n == nil {
		return nil
	}
	return n.children
}

// Color returns the node's color.
func (g *Graph) Color(id NodeID) (mgl32.Vec3, bool) {
	n := g.get(id)
	if n == nil {
		return mgl32.Vec3{}, false
	}
	return n.color, true
}

// SetColor replaces the node's color. Returns false for a stale handle.
func (g *Graph) SetColor(id NodeID, c mgl32.Vec3) bool {
	n := g.get(id)
	if n == nil {
		return false
	}
	n.color = c
	return true
}

// Mesh returns the node's geometry, nil for containers.
func (g *Graph) Mesh(id NodeID) (*Mesh, bool) {
	n := g.get(id)
	if n == nil {
		return nil, false
	}
	return n.mesh, true
}

// Remove detaches the node from its parent and frees it together with its
// whole subtree. The root cannot be removed. Returns false if id is stale.
func (g *Graph) Remove(id NodeID) bool {
	if id == g.root {
		return false
	}
	n := g.get(id)
	if n == nil {
		return false
	}
	if p := g.get(n.parent); p != nil {
		p.children = removeID(p.children, id)
	}
	g.release(id)
	g.drawOrder = g.compactDrawOrder()
	return true
}

func (g *Graph) release(id NodeID) {
	n := g.get(id)
	if n == nil {
		return
	}
	for _, c := range n.children {
		g.release(c)
	}
	if ids := removeID(g.byName[n.name], id); len(ids) > 0 {
		g.byName[n.name] = ids
	} else {
		delete(g.byName, n.name)
	}
	gen := n.gen
	*n = node{gen: gen}
	g.free = append(g.free, id.index)
	g.count--
}

// compactDrawOrder drops stale handles in place, keeping creation order.
func (g *Graph) compactDrawOrder() []NodeID {
	out := g.drawOrder[:0]
	for _, id := range g.drawOrder {
		if g.get(id) != nil {
			out = append(out, id)
		}
	}
	clear(g.drawOrder[len(out):])
	return out
}

// Drawables appends the renderer view of every mesh-bearing node to buf in
// creation order and returns the extended slice.
func (g *Graph) Drawables(buf []Drawable) []Drawable {
	for _, id := range g.drawOrder {
		n := g.get(id)
		buf = append(buf, Drawable{
			Node:  id,
			Name:  n.name,
			World: n.world,
			Color: n.color,
			Mesh:  n.mesh,
		})
	}
	return buf
}

// depth returns the number of nodes from id up to and including the root.
func (g *Graph) depth(id NodeID) int {
	d := 0
	for n := g.get(id); n != nil; n = g.get(n.parent) {
		d++
	}
	return d
}

// removeID removes the first occurrence of id, preserving order.
func removeID(s []NodeID, id NodeID) []NodeID {
	for i, c := range s {
		if c == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = NodeID{}
			return s[:len(s)-1]
		}
	}
	return s
}
