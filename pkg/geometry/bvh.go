package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Leaf threshold: if we have this many or fewer primitives, store them in a leaf node
const leafSize = 4

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Primitives  []Primitive // Non-nil only for leaf nodes
}

func (n *BVHNode) isLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is read-only after NewBVH returns, so any number of goroutines may traverse it.
type BVH struct {
	Root *BVHNode
}

// BVHStats summarizes the shape of a built tree
type BVHStats struct {
	Nodes      int
	Leaves     int
	MaxDepth   int
	Primitives int
}

// bvhItem caches what construction needs per primitive
type bvhItem struct {
	primitive Primitive
	box       core.AABB
	centroid  core.Vec3
}

// NewBVH constructs a BVH from a slice of primitives. The input slice is not modified.
func NewBVH(primitives []Primitive) *BVH {
	if len(primitives) == 0 {
		return &BVH{}
	}

	items := make([]bvhItem, len(primitives))
	for i := range primitives {
		box := primitives[i].BoundingBox()
		items[i] = bvhItem{primitive: primitives[i], box: box, centroid: box.Center()}
	}

	return &BVH{Root: buildBVH(items)}
}

// buildBVH splits at the spatial midpoint of the longest axis of the centroid bounds.
// When every centroid falls on one side it falls back to an object-median split.
func buildBVH(items []bvhItem) *BVHNode {
	boundingBox := items[0].box
	centroidBounds := core.NewAABB(items[0].centroid, items[0].centroid)
	for i := 1; i < len(items); i++ {
		boundingBox = boundingBox.Union(items[i].box)
		centroidBounds = centroidBounds.Union(core.NewAABB(items[i].centroid, items[i].centroid))
	}

	if len(items) <= leafSize {
		return newLeaf(boundingBox, items)
	}

	axis := centroidBounds.LongestAxis()
	splitPos := centroidBounds.Center().Axis(axis)

	mid := partitionItems(items, axis, splitPos)
	if mid == 0 || mid == len(items) {
		// Stable sort keeps equal centroids in their original order
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].centroid.Axis(axis) < items[j].centroid.Axis(axis)
		})
		mid = len(items) / 2
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(items[:mid]),
		Right:       buildBVH(items[mid:]),
	}
}

// partitionItems moves items whose centroid lies below splitPos to the front, keeping
// relative order on both sides, and returns the size of the front group
func partitionItems(items []bvhItem, axis int, splitPos float64) int {
	left := make([]bvhItem, 0, len(items))
	right := make([]bvhItem, 0, len(items))
	for _, item := range items {
		if item.centroid.Axis(axis) < splitPos {
			left = append(left, item)
		} else {
			right = append(right, item)
		}
	}
	copy(items, left)
	copy(items[len(left):], right)
	return len(left)
}

func newLeaf(boundingBox core.AABB, items []bvhItem) *BVHNode {
	primitives := make([]Primitive, len(items))
	for i := range items {
		primitives[i] = items[i].primitive
	}
	return &BVHNode{BoundingBox: boundingBox, Primitives: primitives}
}

// Hit tests if a ray intersects any primitive in the BVH and keeps the closest hit
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	if bvh.Root == nil || !bvh.Root.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}
	return bvh.hitNode(bvh.Root, ray, tMin, tMax, hit)
}

// hitNode assumes the ray already overlaps node's box
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	if node.isLeaf() {
		hitAnything := false
		closestSoFar := tMax
		for i := range node.Primitives {
			if node.Primitives[i].Hit(ray, tMin, closestSoFar, hit) {
				hitAnything = true
				closestSoFar = hit.T
			}
		}
		return hitAnything
	}

	// Visit the child the ray enters first so the second can be pruned by tMax
	near, far := node.Left, node.Right
	tNear, hitNear := near.BoundingBox.Intersect(ray, tMin, tMax)
	tFar, hitFar := far.BoundingBox.Intersect(ray, tMin, tMax)
	if hitFar && (!hitNear || tFar < tNear) {
		near, far = far, near
		tNear, tFar = tFar, tNear
		hitNear, hitFar = hitFar, hitNear
	}

	hitAnything := false
	closestSoFar := tMax

	if hitNear && bvh.hitNode(near, ray, tMin, closestSoFar, hit) {
		hitAnything = true
		closestSoFar = hit.T
	}

	if hitFar && tFar <= closestSoFar && bvh.hitNode(far, ray, tMin, closestSoFar, hit) {
		hitAnything = true
	}

	return hitAnything
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// Stats walks the tree and reports its size and depth
func (bvh *BVH) Stats() BVHStats {
	var stats BVHStats
	if bvh.Root != nil {
		collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.isLeaf() {
		stats.Leaves++
		stats.Primitives += len(node.Primitives)
		return
	}
	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
