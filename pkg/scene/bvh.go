package scene

import (
	"math"
	"sort"

	"github.com/df07/go-ao-raytracer/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Handles     []Handle // Objects in a leaf, in ascending order (nil for internal nodes)
}

// BVH is a bounding volume hierarchy over the objects of a group
type BVH struct {
	Root    *BVHNode
	objects []Object
}

// Leaf threshold: if we have this many or fewer objects, store them in a leaf node
const leafThreshold = 8

type bvhBuilder struct {
	objects   []Object
	boxes     []core.AABB
	selection AxisSelection
	random    core.Sampler
}

// NewBVH constructs a BVH over objects using the configured split axis policy
func NewBVH(objects []Object, config AccelerationConfig) *BVH {
	if len(objects) == 0 {
		return &BVH{objects: objects}
	}

	b := &bvhBuilder{
		objects:   objects,
		boxes:     make([]core.AABB, len(objects)),
		selection: config.AxisSelection,
		random:    core.NewRandomSampler(core.NewRandom(config.Seed)),
	}
	handles := make([]Handle, len(objects))
	for i := range objects {
		b.boxes[i] = objects[i].Shape.BoundingBox()
		handles[i] = Handle(i)
	}

	return &BVH{
		Root:    b.build(handles, 0),
		objects: objects,
	}
}

func (b *bvhBuilder) build(handles []Handle, depth int) *BVHNode {
	boundingBox := b.boxes[handles[0]]
	for _, h := range handles[1:] {
		boundingBox = boundingBox.Union(b.boxes[h])
	}

	if len(handles) <= leafThreshold {
		leaf := append([]Handle(nil), handles...)
		sort.Slice(leaf, func(i, j int) bool { return leaf[i] < leaf[j] })
		return &BVHNode{BoundingBox: boundingBox, Handles: leaf}
	}

	// Median split along the chosen axis
	axis := b.splitAxis(boundingBox, depth)
	sort.SliceStable(handles, func(i, j int) bool {
		return b.boxes[handles[i]].Center().Axis(axis) < b.boxes[handles[j]].Center().Axis(axis)
	})

	mid := len(handles) / 2
	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        b.build(handles[:mid], depth+1),
		Right:       b.build(handles[mid:], depth+1),
	}
}

func (b *bvhBuilder) splitAxis(box core.AABB, depth int) int {
	switch b.selection {
	case AxisAlternating:
		return depth % 3
	case AxisRandom:
		return min(2, int(b.random.Get1D()*3))
	default:
		return box.LongestAxis()
	}
}

// Intersect returns the same nearest hit as a linear scan over the objects
func (bvh *BVH) Intersect(ray core.Ray) Intersection {
	closest := noIntersection()
	if bvh.Root != nil {
		bvh.intersectNode(bvh.Root, ray, &closest)
	}
	return closest
}

func (bvh *BVH) intersectNode(node *BVHNode, ray core.Ray, closest *Intersection) {
	// Keep a hit at exactly the current distance in play so lower handles can claim ties
	query := ray
	if closest.Hit() {
		query.MaxT = math.Min(ray.MaxT, math.Nextafter(closest.Info.T, math.Inf(1)))
	}

	if !node.BoundingBox.Hit(query) {
		return
	}

	if node.Handles != nil {
		for _, h := range node.Handles {
			info := bvh.objects[h].Shape.Intersect(query)
			if !info.Hit {
				continue
			}
			if !closest.Hit() || info.T < closest.Info.T || (info.T == closest.Info.T && h < closest.Handle) {
				*closest = Intersection{Handle: h, Info: info}
				query.MaxT = math.Min(ray.MaxT, math.Nextafter(info.T, math.Inf(1)))
			}
		}
		return
	}

	if node.Left != nil {
		bvh.intersectNode(node.Left, ray, closest)
	}
	if node.Right != nil {
		bvh.intersectNode(node.Right, ray, closest)
	}
}

// BVHStats summarises the shape of a hierarchy
type BVHStats struct {
	TotalNodes   int
	LeafNodes    int
	MaxDepth     int
	AvgDepth     float64
	TotalObjects int
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	bvh.collectStats(bvh.Root, 0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	if node.Handles != nil {
		stats.LeafNodes++
		stats.TotalObjects += len(node.Handles)
		stats.AvgDepth += float64(depth)
		return
	}

	if node.Left != nil {
		bvh.collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		bvh.collectStats(node.Right, depth+1, stats)
	}
}
