// Package radar contains the scope-side logic: the world/screen projection
// and the render-decision engine that turns a state snapshot into an ordered
// draw-instruction list for the presentation layer.
package radar

// Scale clamp range in studs per pixel
const (
	minStudsPerPixel = 1.0
	maxStudsPerPixel = 1000.0
)

// ZoomDirection selects whether a zoom step magnifies or shrinks the view
type ZoomDirection int

const (
	ZoomIn  ZoomDirection = iota // scale *= 0.9
	ZoomOut                      // scale *= 1.1
)

// Projection converts between world studs and screen pixels. In world space
// -y is North and -x is West; in screen space +x is right and +y is down,
// so world axes map onto screen axes directly.
//
// Pure arithmetic: no operation can fail.
type Projection struct {
	// Center of the view in studs
	CenterX float64
	CenterY float64

	// Zoom level in studs per pixel, clamped to [1, 1000]
	StudsPerPixel float64

	ScreenWidth  float64
	ScreenHeight float64
}

// NewProjection creates a projection centered on the world origin at the
// default zoom level.
func NewProjection(screenWidth, screenHeight float64) *Projection {
	return &Projection{
		StudsPerPixel: 100.0,
		ScreenWidth:   screenWidth,
		ScreenHeight:  screenHeight,
	}
}

// WorldToScreen converts a point in studs to screen pixels
func (p *Projection) WorldToScreen(x, y float64) Point {
	return Point{
		X: p.ScreenWidth/2 + (x-p.CenterX)/p.StudsPerPixel,
		Y: p.ScreenHeight/2 + (y-p.CenterY)/p.StudsPerPixel,
	}
}

// ScreenToWorld converts a screen pixel position to studs
func (p *Projection) ScreenToWorld(pixel Point) (float64, float64) {
	x := p.CenterX + (pixel.X-p.ScreenWidth/2)*p.StudsPerPixel
	y := p.CenterY + (pixel.Y-p.ScreenHeight/2)*p.StudsPerPixel
	return x, y
}

// Pan shifts the view by a drag delta in screen pixels; the view moves
// opposite to the cursor motion.
func (p *Projection) Pan(deltaX, deltaY float64) {
	p.CenterX -= deltaX * p.StudsPerPixel
	p.CenterY -= deltaY * p.StudsPerPixel
}

// Zoom rescales the view. When an anchor pixel is supplied the world
// coordinate under that pixel stays fixed, which keeps the point under the
// cursor stable while zooming.
func (p *Projection) Zoom(direction ZoomDirection, anchor *Point) {
	factor := 0.9
	if direction == ZoomOut {
		factor = 1.1
	}

	if anchor != nil {
		beforeX, beforeY := p.ScreenToWorld(*anchor)
		p.StudsPerPixel *= factor
		afterX, afterY := p.ScreenToWorld(*anchor)
		p.CenterX += beforeX - afterX
		p.CenterY += beforeY - afterY
	} else {
		p.StudsPerPixel *= factor
	}

	if p.StudsPerPixel < minStudsPerPixel {
		p.StudsPerPixel = minStudsPerPixel
	}
	if p.StudsPerPixel > maxStudsPerPixel {
		p.StudsPerPixel = maxStudsPerPixel
	}
}

// SetScreenSize updates the screen dimensions the projection maps onto
func (p *Projection) SetScreenSize(width, height float64) {
	p.ScreenWidth = width
	p.ScreenHeight = height
}
