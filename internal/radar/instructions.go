package radar

import "sort"

// Layer is the z-order slot of a draw instruction. Layers are rendered back
// to front in declaration order; tags are drawn last so they are never
// occluded by symbols of aircraft later in iteration order.
type Layer int

const (
	LayerHistory Layer = iota
	LayerVectors
	LayerTargets
	LayerTags
)

// Op is the kind of a draw instruction
type Op int

const (
	OpCircle   Op = iota // filled circle: Points[0] center, Radius
	OpLine               // line segment: Points[0] to Points[1], Width
	OpPolyline           // stroked polyline over Points, closed when Closed
	OpText               // text at Points[0] (left-top anchored), FontSize
)

// RGBA is an 8-bit straight-alpha color; A == 0 draws nothing
type RGBA struct {
	R, G, B, A uint8
}

// Point is a position in screen pixels
type Point struct {
	X float64
	Y float64
}

// Instruction is one drawing command for the presentation layer. The core
// emits instructions, not pixels; any 2D backend can replay them.
type Instruction struct {
	Op       Op
	Layer    Layer
	Points   []Point
	Closed   bool
	Radius   float64
	Width    float64
	Text     string
	FontSize float64
	Color    RGBA
}

// DrawList accumulates draw instructions for one frame
type DrawList struct {
	ops []Instruction
}

// AddCircle appends a filled circle
func (d *DrawList) AddCircle(layer Layer, center Point, radius float64, color RGBA) {
	d.ops = append(d.ops, Instruction{
		Op:     OpCircle,
		Layer:  layer,
		Points: []Point{center},
		Radius: radius,
		Color:  color,
	})
}

// AddLine appends a stroked line segment
func (d *DrawList) AddLine(layer Layer, p0, p1 Point, width float64, color RGBA) {
	d.ops = append(d.ops, Instruction{
		Op:     OpLine,
		Layer:  layer,
		Points: []Point{p0, p1},
		Width:  width,
		Color:  color,
	})
}

// AddClosedPolyline appends a stroked closed polyline
func (d *DrawList) AddClosedPolyline(layer Layer, points []Point, width float64, color RGBA) {
	d.ops = append(d.ops, Instruction{
		Op:     OpPolyline,
		Layer:  layer,
		Points: points,
		Closed: true,
		Width:  width,
		Color:  color,
	})
}

// AddText appends a text run anchored at its top-left corner
func (d *DrawList) AddText(layer Layer, pos Point, text string, fontSize float64, color RGBA) {
	d.ops = append(d.ops, Instruction{
		Op:       OpText,
		Layer:    layer,
		Points:   []Point{pos},
		Text:     text,
		FontSize: fontSize,
		Color:    color,
	})
}

// Instructions returns the accumulated instructions in render order: sorted
// by layer, stable within a layer.
func (d *DrawList) Instructions() []Instruction {
	sort.SliceStable(d.ops, func(i, j int) bool {
		return d.ops[i].Layer < d.ops[j].Layer
	})
	return d.ops
}

// Len returns the number of accumulated instructions
func (d *DrawList) Len() int {
	return len(d.ops)
}
