// Package render draws the scene onto a tcell screen.
// The logical canvas (constant.CanvasWidth x CanvasHeight) is scaled to whatever the terminal offers.
package render

import (
	"math"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pharaoh-slot/constant"
	"github.com/lixenwraith/pharaoh-slot/reel"
	"github.com/lixenwraith/pharaoh-slot/scene"
)

// RenderPriority orders layers; lower draws first
type RenderPriority int

const (
	PriorityBackground RenderPriority = 100
	PriorityReels      RenderPriority = 200
	PriorityMascots    RenderPriority = 250
	PriorityEffects    RenderPriority = 300
	PriorityUI         RenderPriority = 400
	PriorityOverlay    RenderPriority = 500
)

// Frame is everything one draw reads; the caller holds the engine lock while Draw runs
type Frame struct {
	Scene  *scene.Scene
	Reels  *reel.Set
	Status string
	Paused bool
	Muted  bool
}

// Layer draws one part of the frame
type Layer interface {
	Render(f Frame, c *Canvas)
}

// LayerFunc adapts a function to Layer
type LayerFunc func(f Frame, c *Canvas)

func (fn LayerFunc) Render(f Frame, c *Canvas) { fn(f, c) }

type entry struct {
	layer    Layer
	priority RenderPriority
}

// Canvas maps logical canvas coordinates onto screen cells
type Canvas struct {
	screen tcell.Screen
	w, h   int
	dx     int // shake offset in cells
	bg     RGB
}

// Col maps a canvas x to a screen column
func (c *Canvas) Col(x float64) int {
	return int(x*float64(c.w)/constant.CanvasWidth) + c.dx
}

// Row maps a canvas y to a screen row; the last row is reserved for the status bar
func (c *Canvas) Row(y float64) int {
	return int(y * float64(c.h-1) / constant.CanvasHeight)
}

// Set writes one cell, clipping to the screen
func (c *Canvas) Set(x, y int, r rune, fg, bg RGB) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(fg.Color()).Background(bg.Color()))
}

// Text writes s starting at x, y over the background
func (c *Canvas) Text(x, y int, s string, fg RGB) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, fg, c.bg)
	}
}

// Centered writes s centered on row y
func (c *Canvas) Centered(y int, s string, fg RGB) {
	c.Text((c.w-len([]rune(s)))/2, y, s, fg)
}

// Renderer composes registered layers into frames
type Renderer struct {
	screen tcell.Screen
	layers []entry
	frame  uint64
}

// NewRenderer creates a renderer with the standard layer stack
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.Register(LayerFunc(drawBackground), PriorityBackground)
	r.Register(LayerFunc(drawReels), PriorityReels)
	r.Register(LayerFunc(drawMascots), PriorityMascots)
	r.Register(LayerFunc(drawBeams), PriorityEffects)
	r.Register(LayerFunc(drawBanner), PriorityUI)
	r.Register(LayerFunc(drawStatusBar), PriorityUI)
	r.Register(LayerFunc(drawEndScreen), PriorityOverlay)
	return r
}

// Register adds a layer; equal priorities keep registration order
func (r *Renderer) Register(l Layer, p RenderPriority) {
	r.layers = append(r.layers, entry{layer: l, priority: p})
	sort.SliceStable(r.layers, func(i, j int) bool {
		return r.layers[i].priority < r.layers[j].priority
	})
}

// Draw writes the frame into the screen buffer; call Show afterwards to flush
func (r *Renderer) Draw(f Frame) {
	r.frame++
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	c := &Canvas{screen: r.screen, w: w, h: h, bg: background(f.Scene)}
	if f.Scene.Shake > 0 {
		amp := int(math.Ceil(f.Scene.Shake * float64(w)))
		if r.frame%2 == 0 {
			amp = -amp
		}
		c.dx = amp
	}

	for _, e := range r.layers {
		e.layer.Render(f, c)
	}
}

// Show flushes the screen buffer; safe to call without the engine lock
func (r *Renderer) Show() {
	r.screen.Show()
}

// HitEndScreen reports whether a click at screen row y lands on the end screen's restart line
func HitEndScreen(f Frame, h, y int) bool {
	if !f.Scene.End.Visible {
		return false
	}
	mid := (h - 1) / 2
	return y >= mid-2 && y <= mid+2
}

func background(sc *scene.Scene) RGB {
	return RgbBlack.Blend(RgbDaySky, sc.Day.Alpha).Blend(RgbNightSky, sc.Night.Alpha)
}

func drawBackground(f Frame, c *Canvas) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			c.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(c.bg.Color()))
		}
	}
}

// visibleHeight is the reel window: three symbol rows starting at strip y 0
const visibleHeight = 3 * constant.SymbolHeight

// reelSpacing narrows the columns when n reels at the default spacing would run past the canvas
func reelSpacing(n int) float64 {
	if n < 1 {
		return constant.ReelSpacing
	}
	return min(constant.ReelSpacing, (constant.CanvasWidth-2*constant.ReelLeft)/float64(n))
}

func drawReels(f Frame, c *Canvas) {
	if f.Reels == nil {
		return
	}
	top := c.Row(constant.ReelTop) - 1
	bottom := c.Row(constant.ReelTop + visibleHeight)
	payline := c.Row(constant.ReelTop + constant.MiddleSlotY + constant.SymbolHeight/2)

	spacing := reelSpacing(f.Reels.Len())
	for i, rl := range f.Reels.Reels {
		left := c.Col(constant.ReelLeft + float64(i)*spacing)
		right := c.Col(constant.ReelLeft+float64(i)*spacing+spacing) - 2

		for y := top; y <= bottom; y++ {
			for x := left; x <= right; x++ {
				ch := ' '
				switch {
				case y == top || y == bottom:
					ch = '─'
				case x == left || x == right:
					ch = '│'
				}
				c.Set(x, y, ch, RgbReelFrame, RgbReelFace)
			}
		}

		for _, s := range rl.Slots {
			center := s.Y + constant.SymbolHeight/2
			if center < 0 || center >= visibleHeight {
				continue
			}
			label := strings.ToUpper(s.Symbol.String())
			fg, ok := symbolColors[s.Symbol.String()]
			if !ok {
				fg = RgbHintText
			}
			row := c.Row(constant.ReelTop + center)
			x := left + (right-left+1-len(label))/2
			for k, r := range label {
				c.Set(x+k, row, r, fg, RgbReelFace)
			}
		}

		c.Set(left-1, payline, '▶', RgbPayline, c.bg)
		c.Set(right+1, payline, '◀', RgbPayline, c.bg)
	}
}

func drawMascots(f Frame, c *Canvas) {
	for _, m := range f.Scene.Mascots {
		if !m.Eligible() {
			continue
		}
		glyph := "<=O=>"
		if m.Scale < 0.8 {
			glyph = "<O>"
		}
		fg := c.bg.Blend(RgbMascot, m.Alpha)
		x := c.Col(m.X) - len(glyph)/2
		c.Text(x, c.Row(m.Y), glyph, fg)
	}
}

func drawBeams(f Frame, c *Canvas) {
	for _, b := range f.Scene.Beams {
		x := c.Col(b.X1)
		from, to := c.Row(b.Y1), c.Row(b.Y2)
		for y := from; y < to; y++ {
			ch := '╲'
			if (y-from)%2 == 1 {
				ch = '╱'
			}
			c.Set(x+(y-from)%2, y, ch, RgbBeam, c.bg)
		}
	}
}

func drawBanner(f Frame, c *Canvas) {
	b := f.Scene.Banner
	if b.Alpha <= 0 || b.Text == "" {
		return
	}
	row := min(c.Row(constant.ReelTop+visibleHeight)+2, c.h-2)
	c.Centered(row, b.Text, c.bg.Blend(RgbBannerText, b.Alpha))
}

func drawEndScreen(f Frame, c *Canvas) {
	end := f.Scene.End
	if !end.Visible {
		return
	}
	mid := (c.h - 1) / 2
	for y := mid - 2; y <= mid+2; y++ {
		for x := 0; x < c.w; x++ {
			c.Set(x, y, ' ', RgbEndText, RgbBlack)
		}
	}
	bg := c.bg
	c.bg = RgbBlack
	c.Centered(mid-1, end.Text, RgbEndText)
	c.Centered(mid+1, end.Hint, RgbHintText)
	c.bg = bg
}

func drawStatusBar(f Frame, c *Canvas) {
	y := c.h - 1
	for x := 0; x < c.w; x++ {
		c.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(RgbStatusBg.Color()))
	}
	line := f.Status
	if f.Paused {
		line += "  [PAUSED]"
	}
	if f.Muted {
		line += "  [MUTED]"
	}
	for i, r := range []rune(line) {
		if i >= c.w {
			break
		}
		c.screen.SetContent(i, y, r, nil, tcell.StyleDefault.Foreground(RgbStatusBar.Color()).Background(RgbStatusBg.Color()))
	}
}
