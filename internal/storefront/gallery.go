package storefront

import "sync"

// SwipeThreshold is the minimum horizontal displacement, in screen units,
// for a drag gesture to count as a swipe.
const SwipeThreshold = 50

// Gallery is the image cursor of an open product detail view. Navigation is
// circular. The cursor is shared by concurrent requests on the same session,
// so it carries its own lock; the image list is fixed at construction.
type Gallery struct {
	images []string

	mu    sync.Mutex
	index int
}

// NewGallery builds a gallery over images in the given order. An empty list
// falls back to a single placeholder so Current always resolves.
func NewGallery(images []string) *Gallery {
	if len(images) == 0 {
		images = []string{placeholderImage}
	}
	return &Gallery{images: images}
}

func (g *Gallery) Images() []string { return g.images }

func (g *Gallery) Index() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.index
}

// Current is the image under the cursor.
func (g *Gallery) Current() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.images[g.index]
}

// Next advances the cursor, wrapping past the last image.
func (g *Gallery) Next() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.index = (g.index + 1) % len(g.images)
}

// Previous moves the cursor back, wrapping before the first image.
func (g *Gallery) Previous() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.index = (g.index - 1 + len(g.images)) % len(g.images)
}

// Select jumps to image i. Out-of-range values are ignored.
func (g *Gallery) Select(i int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i >= 0 && i < len(g.images) {
		g.index = i
	}
}

// Swipe applies a horizontal drag of dx units: a rightward swipe past the
// threshold reveals the previous image, a leftward one the next. Smaller
// displacements do nothing.
func (g *Gallery) Swipe(dx float64) {
	switch {
	case dx > SwipeThreshold:
		g.Previous()
	case dx < -SwipeThreshold:
		g.Next()
	}
}

// CanNavigate reports whether navigation controls apply. A single image
// disables next/previous and the dot indicator.
func (g *Gallery) CanNavigate() bool { return len(g.images) > 1 }
