package radar

import (
	"math"
	"testing"
)

const coordTolerance = 1e-9

// TestWorldScreenRoundTrip verifies that converting world to screen and back
// recovers the original coordinates at various zoom levels and centers.
func TestWorldScreenRoundTrip(t *testing.T) {
	tests := []struct {
		name          string
		centerX       float64
		centerY       float64
		studsPerPixel float64
		worldX        float64
		worldY        float64
	}{
		{
			name:          "origin at default zoom",
			studsPerPixel: 100.0,
			worldX:        0,
			worldY:        0,
		},
		{
			name:          "offset center",
			centerX:       5000,
			centerY:       -3000,
			studsPerPixel: 100.0,
			worldX:        1234.5,
			worldY:        -6789.25,
		},
		{
			name:          "minimum zoom",
			studsPerPixel: 1.0,
			worldX:        -42.125,
			worldY:        17.5,
		},
		{
			name:          "maximum zoom",
			centerX:       -100000,
			centerY:       250000,
			studsPerPixel: 1000.0,
			worldX:        99999,
			worldY:        -99999,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProjection(1280, 720)
			p.CenterX = tt.centerX
			p.CenterY = tt.centerY
			p.StudsPerPixel = tt.studsPerPixel

			pixel := p.WorldToScreen(tt.worldX, tt.worldY)
			gotX, gotY := p.ScreenToWorld(pixel)

			if math.Abs(gotX-tt.worldX) > coordTolerance || math.Abs(gotY-tt.worldY) > coordTolerance {
				t.Errorf("round trip (%g, %g) = (%g, %g)", tt.worldX, tt.worldY, gotX, gotY)
			}
		})
	}
}

// TestWorldToScreenCentering verifies the view center maps to the screen
// center and that world offsets scale by studs-per-pixel.
func TestWorldToScreenCentering(t *testing.T) {
	p := NewProjection(800, 600)
	p.CenterX = 1000
	p.CenterY = 2000
	p.StudsPerPixel = 50

	center := p.WorldToScreen(1000, 2000)
	if center.X != 400 || center.Y != 300 {
		t.Errorf("center maps to (%g, %g), want (400, 300)", center.X, center.Y)
	}

	// 500 studs east at 50 studs/pixel is 10 pixels right.
	east := p.WorldToScreen(1500, 2000)
	if east.X != 410 || east.Y != 300 {
		t.Errorf("east offset maps to (%g, %g), want (410, 300)", east.X, east.Y)
	}
}

// TestPan verifies that dragging moves the view center opposite the drag,
// scaled by the zoom level.
func TestPan(t *testing.T) {
	p := NewProjection(800, 600)
	p.StudsPerPixel = 10

	before := p.WorldToScreen(0, 0)
	p.Pan(25, -40)
	after := p.WorldToScreen(0, 0)

	// Dragging right by 25px moves the world 25px right on screen.
	if got := after.X - before.X; got != 25 {
		t.Errorf("X shift = %g, want 25", got)
	}
	if got := after.Y - before.Y; got != -40 {
		t.Errorf("Y shift = %g, want -40", got)
	}

	if p.CenterX != -250 || p.CenterY != 400 {
		t.Errorf("center = (%g, %g), want (-250, 400)", p.CenterX, p.CenterY)
	}
}

// TestZoomAnchored verifies the world coordinate under the anchor pixel is
// unchanged by a zoom step.
func TestZoomAnchored(t *testing.T) {
	tests := []struct {
		name      string
		direction ZoomDirection
	}{
		{name: "zoom in", direction: ZoomIn},
		{name: "zoom out", direction: ZoomOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProjection(1024, 768)
			p.CenterX = 3000
			p.CenterY = -1500
			p.StudsPerPixel = 40

			anchor := Point{X: 200, Y: 650}
			wantX, wantY := p.ScreenToWorld(anchor)

			p.Zoom(tt.direction, &anchor)

			gotX, gotY := p.ScreenToWorld(anchor)
			if math.Abs(gotX-wantX) > coordTolerance || math.Abs(gotY-wantY) > coordTolerance {
				t.Errorf("anchor world moved from (%g, %g) to (%g, %g)", wantX, wantY, gotX, gotY)
			}
		})
	}
}

// TestZoomFactors verifies the in/out step factors.
func TestZoomFactors(t *testing.T) {
	p := NewProjection(800, 600)
	p.StudsPerPixel = 100

	p.Zoom(ZoomIn, nil)
	if math.Abs(p.StudsPerPixel-90) > coordTolerance {
		t.Errorf("after zoom in, scale = %g, want 90", p.StudsPerPixel)
	}

	p.Zoom(ZoomOut, nil)
	if math.Abs(p.StudsPerPixel-99) > coordTolerance {
		t.Errorf("after zoom out, scale = %g, want 99", p.StudsPerPixel)
	}
}

// TestZoomClamp verifies the scale never leaves [1, 1000] regardless of how
// many zoom steps are applied.
func TestZoomClamp(t *testing.T) {
	p := NewProjection(800, 600)

	for i := 0; i < 200; i++ {
		p.Zoom(ZoomIn, nil)
	}
	if p.StudsPerPixel != 1.0 {
		t.Errorf("scale after repeated zoom in = %g, want 1", p.StudsPerPixel)
	}

	for i := 0; i < 200; i++ {
		p.Zoom(ZoomOut, nil)
	}
	if p.StudsPerPixel != 1000.0 {
		t.Errorf("scale after repeated zoom out = %g, want 1000", p.StudsPerPixel)
	}
}

// TestZoomClampWithAnchor verifies clamping also applies to anchored zooms.
func TestZoomClampWithAnchor(t *testing.T) {
	p := NewProjection(800, 600)
	anchor := Point{X: 100, Y: 100}

	for i := 0; i < 200; i++ {
		p.Zoom(ZoomOut, &anchor)
	}
	if p.StudsPerPixel != 1000.0 {
		t.Errorf("scale = %g, want 1000", p.StudsPerPixel)
	}
}
