// cmd/transition_demo/main.go
// 过渡预设演示：两块颜色面板之间的 slide / wipe / dissolve 切换
//
// 用法：
//
//	go run ./cmd/transition_demo [--verbose]
//
// 按键：1-4 四向滑动，5-8 四向扫动，9/0 溶解（γ=1 / γ=2.2），
// ESC 中途打断（演示复位保证），空格 重复上一种过渡。
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/motion/pkg/anim"
	"github.com/decker502/motion/pkg/easing"
	"github.com/decker502/motion/pkg/transition"
)

var verbose = flag.Bool("verbose", false, "详细日志")

const (
	screenWidth  = 800
	screenHeight = 480
	tps          = 60
)

// pane 是演示内容：一块纯色面板，暴露过渡需要的标准属性
type pane struct {
	name    string
	fill    color.RGBA
	x, y    float64
	opacity float64
	clip    *transition.Rect
}

func newPane(name string, fill color.RGBA) *pane {
	return &pane{name: name, fill: fill, opacity: 1}
}

func (p *pane) AttributeValue(name string) (any, error) {
	switch name {
	case transition.AttrX:
		return p.x, nil
	case transition.AttrY:
		return p.y, nil
	case transition.AttrOpacity:
		return p.opacity, nil
	case transition.AttrClip:
		return p.clip, nil
	}
	return nil, fmt.Errorf("pane %s has no attribute %q", p.name, name)
}

func (p *pane) SetAttributeValue(name string, value any) error {
	switch name {
	case transition.AttrX:
		p.x = value.(float64)
	case transition.AttrY:
		p.y = value.(float64)
	case transition.AttrOpacity:
		p.opacity = value.(float64)
	case transition.AttrClip:
		p.clip, _ = value.(*transition.Rect)
	default:
		return fmt.Errorf("pane %s has no attribute %q", p.name, name)
	}
	return nil
}

// draw 按当前属性绘制面板：位置偏移、不透明度、裁剪区域
func (p *pane) draw(screen *ebiten.Image) {
	bounds := transition.NewRect(0, 0, screenWidth, screenHeight)
	if p.clip != nil {
		bounds = *p.clip
	}
	if bounds.Empty() {
		return
	}
	fill := p.fill
	fill.A = uint8(float64(fill.A) * clamp01(p.opacity))
	fill.R = uint8(float64(fill.R) * clamp01(p.opacity))
	fill.G = uint8(float64(fill.G) * clamp01(p.opacity))
	fill.B = uint8(float64(fill.B) * clamp01(p.opacity))
	vector.DrawFilledRect(screen,
		float32(bounds.MinX+p.x), float32(bounds.MinY+p.y),
		float32(bounds.Width()), float32(bounds.Height()),
		fill, false)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Game 实现 ebiten.Game，驱动舞台并处理按键
type Game struct {
	stage *transition.Stage
	clock *anim.Clock
	panes [2]*pane
	// next 指向下一个入场的面板（两块面板轮换）
	next int
	last string
}

func NewGame() *Game {
	a := newPane("青", color.RGBA{0x2a, 0x9d, 0x8f, 0xff})
	b := newPane("橙", color.RGBA{0xe7, 0x6f, 0x51, 0xff})
	g := &Game{
		stage: transition.NewStage(a),
		clock: anim.NewClock(),
		panes: [2]*pane{a, b},
		next:  1,
	}
	g.clock.Subscribe(g.stage)
	return g
}

// factories 把按键映射到过渡工厂
func (g *Game) factories() map[ebiten.Key]struct {
	name    string
	factory transition.Factory
} {
	bounds := transition.NewRect(0, 0, screenWidth, screenHeight)
	dur := transition.WithDuration(0.8)
	curve := transition.WithEasing(easing.CubicInOut)
	wrap := func(fn func(transition.Rect, anim.Attributable, anim.Attributable, ...transition.Option) (*transition.Transition, error)) transition.Factory {
		return func(from, to anim.Attributable) (*transition.Transition, error) {
			return fn(bounds, from, to, dur, curve)
		}
	}
	return map[ebiten.Key]struct {
		name    string
		factory transition.Factory
	}{
		ebiten.Key1: {"滑动←", wrap(transition.SlideLeft)},
		ebiten.Key2: {"滑动→", wrap(transition.SlideRight)},
		ebiten.Key3: {"滑动↑", wrap(transition.SlideUp)},
		ebiten.Key4: {"滑动↓", wrap(transition.SlideDown)},
		ebiten.Key5: {"扫动←", wrap(transition.WipeLeft)},
		ebiten.Key6: {"扫动→", wrap(transition.WipeRight)},
		ebiten.Key7: {"扫动↑", wrap(transition.WipeUp)},
		ebiten.Key8: {"扫动↓", wrap(transition.WipeDown)},
		ebiten.Key9: {"溶解 γ=1", func(from, to anim.Attributable) (*transition.Transition, error) {
			return transition.Dissolve(from, to, dur, transition.WithEasing(easing.Linear))
		}},
		ebiten.Key0: {"溶解 γ=2.2", func(from, to anim.Attributable) (*transition.Transition, error) {
			return transition.Dissolve(from, to, dur, transition.WithEasing(easing.Linear), transition.WithGamma(2.2))
		}},
	}
}

func (g *Game) Update() error {
	for key, entry := range g.factories() {
		if inpututil.IsKeyJustPressed(key) {
			g.startTransition(entry.name, entry.factory)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.stage.Transitioning() {
		log.Printf("[Demo] ESC 打断过渡")
		g.stage.Stop()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && g.last != "" {
		for _, entry := range g.factories() {
			if entry.name == g.last {
				g.startTransition(entry.name, entry.factory)
				break
			}
		}
	}

	g.clock.Advance(1.0 / tps)
	return nil
}

func (g *Game) startTransition(name string, factory transition.Factory) {
	incoming := g.panes[g.next]
	if err := g.stage.TransitionTo(incoming, factory); err != nil {
		log.Printf("[Demo] 过渡构造失败: %v", err)
		return
	}
	g.last = name
	g.next = 1 - g.next
	log.Printf("[Demo] %s → 面板「%s」", name, incoming.name)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x26, 0x26, 0x2b, 0xff})
	for _, content := range g.stage.Contents() {
		content.(*pane).draw(screen)
	}

	status := "空闲"
	if g.stage.Transitioning() {
		status = "过渡中: " + g.last
	}
	ebitenutil.DebugPrintAt(screen, "1-4 slide  5-8 wipe  9/0 dissolve  ESC interrupt  SPACE repeat", 8, 8)
	ebitenutil.DebugPrintAt(screen, status, 8, 24)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("过渡演示 Transition Demo")
	ebiten.SetTPS(tps)

	if err := ebiten.RunGame(NewGame()); err != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}
