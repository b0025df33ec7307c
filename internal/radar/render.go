// Package radar turns tracked aircraft state into presentation-agnostic draw
// instructions: projection between world studs and screen pixels, the draw
// list, data tag templating and the per-frame render decisions.
package radar

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/yegors/atc24-radar/internal/config"
	"github.com/yegors/atc24-radar/internal/state"
)

// studsPerKnotSecond converts ground speed in knots to studs covered per
// second in the simulation's world scale.
const studsPerKnotSecond = 0.5442765

// flashPeriod is the full on/off cycle of the emergency flash. Targets are
// visible during the first half of each period.
const flashPeriod = time.Second

// Engine builds the per-frame draw list from the current aircraft picture.
// Selection state is the only thing it owns; everything else comes in per
// frame.
type Engine struct {
	mu       sync.RWMutex
	selected string
}

// NewEngine creates a render engine with no aircraft selected.
func NewEngine() *Engine {
	return &Engine{}
}

// Select marks a callsign as the selected aircraft. Selecting a callsign
// that is not (or no longer) tracked is harmless; it simply highlights
// nothing until the aircraft reappears.
func (e *Engine) Select(callsign string) {
	e.mu.Lock()
	e.selected = callsign
	e.mu.Unlock()
}

// ClearSelection removes the current selection.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	e.selected = ""
	e.mu.Unlock()
}

// Selected returns the currently selected callsign, or "" if none.
func (e *Engine) Selected() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selected
}

// BuildFrame produces the draw instructions for one frame. aircraft is a
// snapshot from the state store, clock is a monotonic animation clock used
// for the emergency flash phase. Instructions come out grouped by layer:
// history trails, then predictive vectors, then target symbols, then data
// tags, so later layers paint over earlier ones.
func (e *Engine) BuildFrame(proj *Projection, aircraft map[string]state.TrackedAircraft, cfg *config.Config, clock time.Duration) *DrawList {
	list := &DrawList{}

	callsigns := make([]string, 0, len(aircraft))
	for callsign := range aircraft {
		callsigns = append(callsigns, callsign)
	}
	sort.Strings(callsigns)
	if limit := cfg.Performance.MaxAircraft; limit > 0 && len(callsigns) > limit {
		callsigns = callsigns[:limit]
	}

	selected := e.Selected()

	historyColor := ParseHexColor(cfg.Colors.History)
	vectorColor := ParseHexColor(cfg.Colors.Vector)
	tagColor := ParseHexColor(cfg.Colors.TagText)
	targetColor := ParseHexColor(cfg.Colors.Target)
	selectedColor := ParseHexColor(cfg.Colors.TargetSelected)
	emergencyColor := ParseHexColor(cfg.Colors.TargetEmergency)
	groundColor := ParseHexColor(cfg.Colors.Ground)

	flashVisible := (clock/(flashPeriod/2))%2 == 0

	tagTemplates := cfg.DataTags.TagLines()

	for _, callsign := range callsigns {
		ac := aircraft[callsign]
		pos := proj.WorldToScreen(ac.Sample.Position.X, ac.Sample.Position.Y)

		if cfg.Display.ShowHistory {
			for _, h := range ac.History {
				list.AddCircle(LayerHistory, proj.WorldToScreen(h.X, h.Y), cfg.Display.HistoryDotSize, historyColor)
			}
		}

		if cfg.Display.ShowVectors {
			dist := ac.Sample.GroundSpeed * studsPerKnotSecond * cfg.Display.VectorMinutes * 60
			sin, cos := headingSinCos(ac.Sample.Heading)
			end := proj.WorldToScreen(
				ac.Sample.Position.X+cos*dist,
				ac.Sample.Position.Y+sin*dist,
			)
			list.AddLine(LayerVectors, pos, end, 1.5, vectorColor)
		}

		color := targetColor
		switch {
		case ac.Sample.IsEmergencyOccuring:
			if flashVisible {
				color = emergencyColor
			} else {
				color = Transparent
			}
		case callsign == selected:
			color = selectedColor
		case ac.Sample.OnGround():
			color = groundColor
		}

		size := 6.0 * cfg.Display.TargetScale
		diamond := []Point{
			{X: pos.X, Y: pos.Y - size},
			{X: pos.X + size, Y: pos.Y},
			{X: pos.X, Y: pos.Y + size},
			{X: pos.X - size, Y: pos.Y},
		}
		list.AddClosedPolyline(LayerTargets, diamond, cfg.Display.TargetStroke, color)

		// Heading stroke from the symbol centre, twice the symbol size.
		sin, cos := headingSinCos(ac.Sample.Heading)
		strokeEnd := Point{X: pos.X + cos*size*2, Y: pos.Y + sin*size*2}
		list.AddLine(LayerTargets, pos, strokeEnd, 0.7*cfg.Display.TargetStroke, color)

		if cfg.Display.ShowTags {
			for i, template := range tagTemplates {
				line := FormatTagLine(template, &ac)
				if line == "" {
					continue
				}
				at := Point{
					X: pos.X + cfg.DataTags.OffsetX,
					Y: pos.Y + cfg.DataTags.OffsetY + float64(i)*cfg.DataTags.LineSpacing,
				}
				list.AddText(LayerTags, at, line, cfg.Display.FontSize, tagColor)
			}
		}
	}

	return list
}

// headingSinCos converts a compass heading (degrees, 360 = North) into unit
// vector components in world/screen orientation, where -Y is North.
func headingSinCos(headingDeg float64) (sin, cos float64) {
	rad := (headingDeg - 90) * math.Pi / 180
	return math.Sin(rad), math.Cos(rad)
}
