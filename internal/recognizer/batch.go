package recognizer

import (
	"image"
	"math"
	"sort"
)

// item is one image carrying its original request-order index and
// aspect ratio, used to group images for width-packed batching.
type item struct {
	origIndex int
	img       image.Image
	ratio     float64 // width / height
}

// sortByAspect computes each image's aspect ratio and returns items
// sorted by ratio ascending, stably, so consecutive groups of up to
// batchSize keep intra-batch padding small.
func sortByAspect(imgs []image.Image) []item {
	items := make([]item, len(imgs))
	for i, img := range imgs {
		b := img.Bounds()
		w, h := b.Dx(), b.Dy()
		ratio := 1.0
		if h > 0 {
			ratio = float64(w) / float64(h)
		}
		items[i] = item{origIndex: i, img: img, ratio: ratio}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].ratio < items[j].ratio })
	return items
}

// groupInto splits items into consecutive batches of at most batchSize.
func groupInto(items []item, batchSize int) [][]item {
	if batchSize <= 0 {
		batchSize = 1
	}
	var groups [][]item
	for start := 0; start < len(items); start += batchSize {
		end := min(start+batchSize, len(items))
		groups = append(groups, items[start:end])
	}
	return groups
}

// packedWidth computes a batch's shared packed width: maxWhRatio is the
// largest aspect ratio in the group (floored at minWhRatio), and the
// packed width is ceil(height * maxWhRatio), clamped to [1, 10000].
func packedWidth(group []item, height int, minWhRatio float64) int {
	maxRatio := minWhRatio
	for _, it := range group {
		if it.ratio > maxRatio {
			maxRatio = it.ratio
		}
	}
	w := int(math.Ceil(float64(height) * maxRatio))
	if w < 1 {
		w = 1
	}
	if w > 10000 {
		w = 10000
	}
	return w
}

// contentWidth returns an item's resized width at the given height,
// clamped to the batch's packed width.
func contentWidth(it item, height, packedW int) int {
	w := int(math.Ceil(float64(height) * it.ratio))
	if w < 1 {
		w = 1
	}
	if w > packedW {
		w = packedW
	}
	return w
}
