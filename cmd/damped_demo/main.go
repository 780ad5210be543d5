// cmd/damped_demo/main.go
// 阻尼谐振子演示：闭式解与 harmonica 离散弹簧的对照
//
// 用法：
//
//	go run ./cmd/damped_demo [--verbose]
//
// 点击任意位置设定目标横坐标：上方圆点走闭式 DampedAnimation，
// 下方圆点走 harmonica 的逐帧弹簧积分。空格循环阻尼预设
// （0.3 欠阻尼 / 1 临界 / 2.5 过阻尼）。
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/motion/pkg/damped"
)

var verbose = flag.Bool("verbose", false, "详细日志")

const (
	screenWidth  = 800
	screenHeight = 360
	tps          = 60
	force        = 60.0 // 回复力系数，ω = √60 ≈ 7.7 rad/s
)

var dampingPresets = []float64{0.3, 1.0, 2.5}

// Game 并排驱动闭式阻尼动画和 harmonica 弹簧
type Game struct {
	closed *damped.DampedAnimation

	spring    harmonica.Spring
	springPos float64
	springVel float64
	target    float64

	presetIndex int
}

func NewGame() (*Game, error) {
	start := float64(screenWidth) / 2
	closed, err := damped.New(start, 0, start, dampingPresets[0], force)
	if err != nil {
		return nil, err
	}
	g := &Game{
		closed:    closed,
		springPos: start,
		target:    start,
	}
	g.rebuildSpring()
	return g, nil
}

// rebuildSpring 按当前阻尼预设重建 harmonica 弹簧。
// harmonica 的角频率参数与 ω = √force 对齐，便于两条轨迹直接对照。
func (g *Game) rebuildSpring() {
	omega := 7.745966692 // √60
	g.spring = harmonica.NewSpring(harmonica.FPS(tps), omega, dampingPresets[g.presetIndex])
}

func (g *Game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, _ := ebiten.CursorPosition()
		g.target = float64(x)
		g.closed.SetTargetValue(g.target)
		log.Printf("[Demo] 新目标 x=%v", g.target)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.presetIndex = (g.presetIndex + 1) % len(dampingPresets)
		g.closed.SetDamping(dampingPresets[g.presetIndex])
		g.rebuildSpring()
		log.Printf("[Demo] 阻尼预设 %v", dampingPresets[g.presetIndex])
	}

	g.closed.Step(1.0 / tps)
	g.springPos, g.springVel = g.spring.Update(g.springPos, g.springVel, g.target)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x26, 0x26, 0x2b, 0xff})

	// 目标竖线
	vector.StrokeLine(screen, float32(g.target), 60, float32(g.target), screenHeight-40,
		1, color.RGBA{0x80, 0x80, 0x88, 0xff}, false)

	// 上：闭式解；下：harmonica
	vector.DrawFilledCircle(screen, float32(g.closed.Value()), 140, 14,
		color.RGBA{0x2a, 0x9d, 0x8f, 0xff}, true)
	vector.DrawFilledCircle(screen, float32(g.springPos), 240, 14,
		color.RGBA{0xe7, 0x6f, 0x51, 0xff}, true)

	ebitenutil.DebugPrintAt(screen, "click: set target   SPACE: cycle damping", 8, 8)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("damping=%.1f  closed=%.1f  spring=%.1f",
			dampingPresets[g.presetIndex], g.closed.Value(), g.springPos), 8, 24)
	ebitenutil.DebugPrintAt(screen, "closed-form", 8, 128)
	ebitenutil.DebugPrintAt(screen, "harmonica", 8, 228)
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
	ebiten.SetWindowTitle("阻尼动画演示 Damped Demo")
	ebiten.SetTPS(tps)

	game, err := NewGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}
	if err := ebiten.RunGame(game); err != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}
