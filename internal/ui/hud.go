//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/gfawcettpq/emotional-contagion/internal/core"
	"github.com/gfawcettpq/emotional-contagion/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the status and parameter panel to the right of the grid.
type HUD struct {
	sim    core.Sim
	width  int
	panel  *ebiten.Image
	pixel  *ebiten.Image
	legend []render.Legend

	summary  []string
	snapshot core.ParameterSnapshot
	controls []hudControlState

	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	boolSetter  core.BoolParameterSetter

	panelOffsetX int
	showHelp     bool
}

// NewHUD constructs a HUD for sim with a panel of the given width. legend
// lists the swatches drawn under the status lines.
func NewHUD(sim core.Sim, width int, legend []render.Legend) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, legend: legend}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, hudControlState{control: ctrl, value: "--"})
		}
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	h.boolSetter, _ = sim.(core.BoolParameterSetter)
	return h
}

// ToggleHelp shows or hides the key reference.
func (h *HUD) ToggleHelp() {
	if h != nil {
		h.showHelp = !h.showHelp
	}
}

// Update refreshes the cached status and parameters and handles clicks on
// the panel.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	if s, ok := h.sim.(core.Summarizer); ok {
		h.summary = s.Summary()
	}
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.snapshot = provider.Parameters()
	}
	h.layout()
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(colorPanel)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	for i, line := range h.summary {
		col := colorText
		if i == 0 {
			col = colorTitle
		}
		text.Draw(h.panel, line, face, panelPadding, y, col)
		y += textLine
	}
	if len(h.legend) > 0 {
		y += textLine / 2
		for _, l := range h.legend {
			h.fillRect(image.Rect(panelPadding, y-swatch, panelPadding+swatch, y), l.Color)
			text.Draw(h.panel, l.Label, face, panelPadding+swatch+buttonGap, y, colorText)
			y += textLine
		}
	}
	if h.showHelp {
		y += textLine / 2
		for _, line := range helpLines {
			text.Draw(h.panel, line, face, panelPadding, y, colorMuted)
			y += textLine
		}
	}
	h.drawControls()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) layout() {
	top := panelPadding + headerBaseline + len(h.summary)*textLine + textLine
	top += len(h.legend)*textLine + textLine/2
	if h.showHelp {
		top += len(helpLines)*textLine + textLine/2
	}
	for i := range h.controls {
		row := top + i*lineHeight
		buttonY := row + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = row
		h.controls[i].minusRect = minus
		h.controls[i].plusRect = plus
	}
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		state.hasValue = false
		state.value = "--"
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			if v, err := strconv.Atoi(param.Value); err == nil {
				state.floatValue = float64(v)
				state.value = strconv.Itoa(v)
				state.hasValue = true
			}
		case core.ParamTypeFloat:
			if v, err := strconv.ParseFloat(param.Value, 64); err == nil {
				state.floatValue = v
				state.value = formatFloat(state.control.Step, v)
				state.hasValue = true
			}
		case core.ParamTypeBool:
			if v, err := strconv.ParseBool(param.Value); err == nil {
				state.boolValue = v
				state.value = "off"
				if v {
					state.value = "on"
				}
				state.hasValue = true
			}
		}
	}
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		switch {
		case pointInRect(px, my, state.minusRect):
			h.adjust(state, -1)
			return
		case pointInRect(px, my, state.plusRect):
			h.adjust(state, 1)
			return
		}
	}
}

// adjust applies one step in direction and reports whether the sim accepted
// it.
func (h *HUD) adjust(state *hudControlState, direction int) bool {
	ctrl := state.control
	switch ctrl.Type {
	case core.ParamTypeBool:
		return h.boolSetter != nil && h.boolSetter.SetBoolParameter(ctrl.Key, direction > 0)
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return false
		}
		step := math.Max(1, math.Round(ctrl.Step))
		target := ctrl.Clamp(state.floatValue + float64(direction)*step)
		if target == state.floatValue {
			return false
		}
		return h.intSetter.SetIntParameter(ctrl.Key, int(target))
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return false
		}
		step := ctrl.Step
		if step <= 0 {
			step = 0.05
		}
		target := ctrl.Clamp(state.floatValue + float64(direction)*step)
		if math.Abs(target-state.floatValue) < 1e-9 {
			return false
		}
		return h.floatSetter.SetFloatParameter(ctrl.Key, target)
	}
	return false
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	ctrl := state.control
	if ctrl.Type == core.ParamTypeBool {
		return h.boolSetter != nil && state.boolValue != (direction > 0)
	}
	if ctrl.Type == core.ParamTypeInt && h.intSetter == nil {
		return false
	}
	if ctrl.Type == core.ParamTypeFloat && h.floatSetter == nil {
		return false
	}
	if direction < 0 {
		return !ctrl.HasMin || state.floatValue > ctrl.Min+1e-9
	}
	return !ctrl.HasMax || state.floatValue < ctrl.Max-1e-9
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	for i := range h.controls {
		state := &h.controls[i]
		y := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, y, colorText)
		valueColor := colorText
		if !state.hasValue {
			valueColor = colorMuted
		}
		bounds := text.BoundString(face, state.value)
		text.Draw(h.panel, state.value, face, state.minusRect.Min.X-buttonGap-bounds.Dx(), y, valueColor)

		minus, plus := "-", "+"
		if state.control.Type == core.ParamTypeBool {
			minus, plus = "0", "1"
		}
		h.drawButton(state.minusRect, minus, state.hasValue && h.canAdjust(state, -1))
		h.drawButton(state.plusRect, plus, state.hasValue && h.canAdjust(state, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := colorButton, colorText
	if !enabled {
		bg, fg = colorButtonOff, colorMuted
	}
	h.fillRect(rect, bg)
	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) fillRect(rect image.Rectangle, col color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	h.panel.DrawImage(h.pixel, op)
}

func formatFloat(step, value float64) string {
	precision := 1
	switch {
	case step <= 0:
		precision = 2
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	floatValue float64
	boolValue  bool
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

var helpLines = []string{
	"space  pause / resume",
	"n      single step",
	"r      randomize",
	"s      reset seed",
	"c      clear",
	"b      barrier maze",
	"1-9    emotion to seed",
	"click  seed emotion",
	"e      entity overlay",
	"i      intensity overlay",
	"h      hide help",
	"q      quit",
}

var (
	colorPanel     = color.RGBA{R: 46, G: 52, B: 64, A: 255}
	colorTitle     = color.RGBA{R: 136, G: 192, B: 208, A: 255}
	colorText      = color.RGBA{R: 216, G: 222, B: 233, A: 255}
	colorMuted     = color.RGBA{R: 129, G: 161, B: 193, A: 255}
	colorButton    = color.RGBA{R: 67, G: 76, B: 94, A: 255}
	colorButtonOff = color.RGBA{R: 59, G: 66, B: 82, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 30
	textLine       = 16
	swatch         = 10
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 14
	labelBaseline  = 20
)
