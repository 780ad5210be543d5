// cmd/easing_showcase/main.go
// 缓动曲线展示：分页网格里每条命名曲线的形状与实时运动
//
// 用法：
//
//	go run ./cmd/easing_showcase [--watch] [--verbose]
//
// 每个单元画出曲线折线，一个圆点沿曲线运动（共享一条循环动画的进度）。
// 按键：←/→ 翻页，H 帮助开关（页码与帮助状态经 gdata 持久化）。
// --watch 监视 data/sequences，脚本变化时重新校验并把第一个脚本
// 热重载到底栏的演示对象上。
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
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/motion/pkg/anim"
	"github.com/decker502/motion/pkg/easing"
	"github.com/decker502/motion/pkg/sequence"
)

var (
	watch   = flag.Bool("watch", false, "监视 data/sequences 并热重载")
	verbose = flag.Bool("verbose", false, "详细日志")
)

const (
	screenWidth  = 960
	screenHeight = 600
	tps          = 60

	columns    = 4
	rows       = 3
	cellWidth  = screenWidth / columns
	cellHeight = 160
	cellPad    = 18

	footerY = rows*cellHeight + 10

	loopDuration = 2.0 // 每轮进度动画的时长（秒）
)

// demoSprite 是 --watch 模式下被脚本驱动的底栏对象
type demoSprite struct {
	attrs map[string]float64
}

func newDemoSprite() *demoSprite {
	return &demoSprite{attrs: map[string]float64{"x": 0, "y": 0, "opacity": 1}}
}

func (s *demoSprite) AttributeValue(name string) (any, error) {
	v, ok := s.attrs[name]
	if !ok {
		return nil, fmt.Errorf("no attribute %q", name)
	}
	return v, nil
}

func (s *demoSprite) SetAttributeValue(name string, value any) error {
	s.attrs[name] = value.(float64)
	return nil
}

// Game 主结构：曲线网格 + 共享进度动画 + 可选的脚本热重载
type Game struct {
	names      []string
	totalPages int

	store *SettingsStore

	clock    *anim.Clock
	progress float64 // 全部单元共享的进度 [0,1]

	watcher     *Watcher
	sprite      *demoSprite
	spriteChain *anim.Chain
	watchStatus string
}

func NewGame() (*Game, error) {
	names := easing.Names()

	// gdata 初始化失败走降级模式（仅内存设置）
	var manager *gdata.Manager
	m, err := gdata.Open(gdata.Config{AppName: "motion_easing_showcase"})
	if err != nil {
		log.Printf("[Showcase] Warning: gdata 不可用: %v（设置不持久化）", err)
	} else {
		manager = m
	}
	store := NewSettingsStore(manager)

	g := &Game{
		names:      names,
		totalPages: (len(names) + columns*rows - 1) / (columns * rows),
		store:      store,
		clock:      anim.NewClock(),
		sprite:     newDemoSprite(),
	}
	if g.store.Settings().Page >= g.totalPages {
		g.store.Settings().Page = 0
	}
	log.Printf("✓ 已注册 %d 条曲线，共 %d 页", len(names), g.totalPages)

	if err := g.startProgressLoop(); err != nil {
		return nil, err
	}

	if *watch {
		w, err := NewWatcher("data/sequences")
		if err != nil {
			return nil, fmt.Errorf("failed to start watcher: %w", err)
		}
		g.watcher = w
		g.watchStatus = "watching data/sequences"
		log.Printf("✓ 监视 data/sequences")
	}
	return g, nil
}

// startProgressLoop 构造驱动全部单元的循环进度动画：
// 0→1 线性走 loopDuration 秒，结束后自动重启
func (g *Game) startProgressLoop() error {
	target, err := anim.NewTarget(anim.TargetConfig[float64]{
		Setter:    func(v float64) { g.progress = v },
		FromValue: ptr(0.0),
		ToValue:   ptr(1.0),
		Easing:    easing.Linear,
	})
	if err != nil {
		return err
	}
	loop, err := anim.New(anim.Config{
		Targets:   []anim.AttributeTarget{target},
		Duration:  ptr(loopDuration),
		Scheduler: g.clock,
	})
	if err != nil {
		return err
	}
	loop.OnEnd(func() { loop.Start() })
	loop.Start()
	return nil
}

func (g *Game) Update() error {
	settings := g.store.Settings()
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		settings.Page = (settings.Page + 1) % g.totalPages
		g.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		settings.Page = (settings.Page + g.totalPages - 1) % g.totalPages
		g.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		settings.ShowHelp = !settings.ShowHelp
		g.saveSettings()
	}

	if g.watcher != nil {
		select {
		case path := <-g.watcher.Events:
			g.reloadScript(path)
		default:
		}
	}

	g.clock.Advance(1.0 / tps)
	return nil
}

func (g *Game) saveSettings() {
	if err := g.store.Save(); err != nil {
		log.Printf("[Showcase] 保存设置失败: %v", err)
	}
}

// reloadScript 重新校验变化的脚本并把它绑定到底栏演示对象
func (g *Game) reloadScript(path string) {
	script, err := sequence.Load(path)
	if err != nil {
		g.watchStatus = fmt.Sprintf("✗ %s", err)
		log.Printf("[Watch] 校验失败: %v", err)
		return
	}

	if g.spriteChain != nil {
		g.spriteChain.Stop()
	}
	g.sprite = newDemoSprite()
	chain, err := script.Build(g.sprite, sequence.WithScheduler(g.clock))
	if err != nil {
		g.watchStatus = fmt.Sprintf("✗ %s", err)
		log.Printf("[Watch] 编译失败: %v", err)
		return
	}
	g.spriteChain = chain
	chain.Start()
	g.watchStatus = fmt.Sprintf("✓ %s (%d 步)", script.Name, len(script.Steps))
	log.Printf("[Watch] 热重载脚本 %q", script.Name)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1d, 0x1d, 0x22, 0xff})

	page := g.store.Settings().Page
	start := page * columns * rows
	for i := 0; i < columns*rows && start+i < len(g.names); i++ {
		col := i % columns
		row := i / columns
		g.drawCell(screen, g.names[start+i], col*cellWidth, row*cellHeight)
	}

	// 底栏：--watch 的脚本演示对象
	if g.watcher != nil {
		y := float32(footerY + 40 + g.sprite.attrs["y"]*0.2)
		alpha := clamp01(g.sprite.attrs["opacity"])
		vector.DrawFilledCircle(screen, float32(40+g.sprite.attrs["x"]), y, 10,
			color.RGBA{uint8(0xe9 * alpha), uint8(0xc4 * alpha), uint8(0x6a * alpha), uint8(0xff * alpha)}, true)
		ebitenutil.DebugPrintAt(screen, g.watchStatus, 8, footerY)
	}

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("page %d/%d", page+1, g.totalPages), screenWidth-96, screenHeight-20)
	if g.store.Settings().ShowHelp {
		ebitenutil.DebugPrintAt(screen, "arrows: page  H: help", 8, screenHeight-20)
	}
}

// drawCell 画一条曲线的单元：折线 + 沿曲线运动的圆点 + 名字
func (g *Game) drawCell(screen *ebiten.Image, name string, x, y int) {
	curve, _ := easing.ByName(name)

	plotX := float32(x + cellPad)
	plotY := float32(y + cellPad + 8)
	plotW := float32(cellWidth - 2*cellPad)
	plotH := float32(cellHeight - 2*cellPad - 16)

	vector.StrokeRect(screen, plotX, plotY, plotW, plotH, 1,
		color.RGBA{0x3a, 0x3a, 0x42, 0xff}, false)

	// 曲线折线。BackOut 这类曲线会越界 [0,1]，纵向直接按比例画出
	const segments = 48
	prevX, prevY := plotX, plotY+plotH
	for i := 1; i <= segments; i++ {
		t := float64(i) / segments
		v := curve.Value(t)
		nx := plotX + plotW*float32(t)
		ny := plotY + plotH*float32(1-v)
		vector.StrokeLine(screen, prevX, prevY, nx, ny, 1,
			color.RGBA{0x6c, 0x8e, 0xbf, 0xff}, true)
		prevX, prevY = nx, ny
	}

	// 运动圆点
	v := curve.Value(g.progress)
	vector.DrawFilledCircle(screen,
		plotX+plotW*float32(g.progress), plotY+plotH*float32(1-v), 4,
		color.RGBA{0xe7, 0x6f, 0x51, 0xff}, true)

	ebitenutil.DebugPrintAt(screen, name, x+cellPad, y+4)
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

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func ptr(v float64) *float64 { return &v }

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("缓动曲线展示 Easing Showcase")
	ebiten.SetTPS(tps)

	game, err := NewGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if game.watcher != nil {
			_ = game.watcher.Close()
		}
	}()

	if err := ebiten.RunGame(game); err != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}
