package game

import (
	"fmt"
	"time"

	"github.com/lixenwraith/pharaoh-slot/audio"
	"github.com/lixenwraith/pharaoh-slot/constant"
	"github.com/lixenwraith/pharaoh-slot/engine"
	"github.com/lixenwraith/pharaoh-slot/scene"
)

// AttemptsText renders the remaining-spins banner
func AttemptsText(n int) string {
	if n == 1 {
		return "1 SPIN LEFT"
	}
	return fmt.Sprintf("%d SPINS LEFT", n)
}

func winBanner() string {
	return constant.WinBannerText
}

// entrance fades the night in, shakes the camera and flies the mascots to rest
func (e *Engine) entrance(c *Context) {
	sc := c.Scene

	c.Animator.Animate(&engine.Tween{
		Target:   &sc.Night,
		Props:    []engine.Prop{{Value: &sc.Night.Alpha, To: 1}},
		Duration: constant.EntranceNightFade,
		Ease:     engine.Linear,
	})

	sc.Shake = constant.EntranceShakeAmount
	c.Animator.Animate(&engine.Tween{
		Target:   &sc.Shake,
		Props:    []engine.Prop{{Value: &sc.Shake, To: 0}},
		Duration: constant.EntranceShake,
		Ease:     engine.QuadOut,
	})

	e.flyToRest(c)
	e.cues.PlayCue(audio.CueUfoHum, "")
}

// restScene places everything at its post-entrance values immediately
func (e *Engine) restScene(c *Context) {
	sc := c.Scene
	sc.Night.Alpha = 1
	for i, m := range sc.Mascots {
		m.Y = constant.MascotRestY[i]
		m.Alpha = constant.MascotRestAlpha[i]
	}
}

// returnMascots brings the night and the mascots back after a win flew them off
func (e *Engine) returnMascots(c *Context) {
	sc := c.Scene
	c.Animator.CancelAnimationsOf(&sc.Night)
	c.Animator.Animate(&engine.Tween{
		Target:   &sc.Night,
		Props:    []engine.Prop{{Value: &sc.Night.Alpha, To: 1}},
		Duration: constant.EntranceNightFade,
		Ease:     engine.Linear,
	})
	e.flyToRest(c)
}

func (e *Engine) flyToRest(c *Context) {
	for i, m := range c.Scene.Mascots {
		c.Animator.CancelAnimationsOf(m)
		c.Animator.Animate(&engine.Tween{
			Target: m,
			Props: []engine.Prop{
				{Value: &m.Y, To: constant.MascotRestY[i]},
				{Value: &m.Alpha, To: constant.MascotRestAlpha[i]},
			},
			Duration:   constant.EntranceFlyDuration,
			Ease:       engine.CubicOut,
			OnComplete: func() { e.hover(c, m) },
		})
	}
}

// hover bobs a resting mascot until something else takes it over
func (e *Engine) hover(c *Context, m *scene.Actor) {
	if c != e.ctx {
		return
	}
	span := constant.HoverMaxDuration - constant.HoverMinDuration
	d := constant.HoverMinDuration + time.Duration(e.rng.Int64N(int64(span)+1))
	c.Animator.Animate(&engine.Tween{
		Target:   m,
		Props:    []engine.Prop{{Value: &m.Y, To: m.Y + constant.HoverAmplitude}},
		Duration: d,
		Ease:     engine.SineInOut,
		Yoyo:     true,
		Repeat:   -1,
	})
}

// showBanner fades text in, holds it and fades it out
func (e *Engine) showBanner(c *Context, text string) {
	b := &c.Scene.Banner
	c.Animator.CancelAnimationsOf(b)
	b.Text = text
	b.Alpha = 0

	c.Animator.Animate(&engine.Tween{
		Target:   b,
		Props:    []engine.Prop{{Value: &b.Alpha, To: 1}},
		Duration: constant.BannerFadeIn,
		Ease:     engine.QuadOut,
	})
	c.Animator.Animate(&engine.Tween{
		Target:   b,
		Props:    []engine.Prop{{Value: &b.Alpha, To: 0}},
		Delay:    constant.BannerFadeIn + constant.BannerHold,
		Duration: constant.BannerFadeOut,
		Ease:     engine.QuadIn,
	})
}

func (e *Engine) hideBanner(c *Context) {
	c.Animator.CancelAnimationsOf(&c.Scene.Banner)
	c.Scene.Banner = scene.Banner{}
}

func (e *Engine) showEnd(c *Context) {
	e.hideBanner(c)
	c.Scene.ShowEnd(constant.LoseBannerText, constant.RestartHintText)
}
