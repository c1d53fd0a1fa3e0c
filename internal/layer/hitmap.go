// Package layer composites z-ordered boxes over a background and maps
// mouse coordinates back to the boxes that were drawn.
package layer

// Rect is a screen rectangle. Right and bottom edges are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named hit area.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap resolves coordinates to regions. Later regions win over earlier
// ones, so add regions bottom-up.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region.
func (h *HitMap) AddRect(id string, x, y, w, hgt int, data any) {
	h.regions = append(h.regions, Region{
		ID:   id,
		Rect: Rect{X: x, Y: y, W: w, H: hgt},
		Data: data,
	})
}

// Test returns the top-most region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

// Clear removes all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Len returns the number of regions.
func (h *HitMap) Len() int {
	return len(h.regions)
}
