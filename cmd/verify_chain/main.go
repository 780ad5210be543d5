// cmd/verify_chain/main.go
// 链式动画溢出时间的无头验证程序
//
// 用法：
//
//	go run ./cmd/verify_chain [--links N] [--trials N] [--seed N]
//
// 构造 N 环 Then 串联的动画链，用随机切分的 dt 序列驱动，
// 校验两个性质并打印结果表：
//  1. 每环的溢出 = 该步 dt - 步前剩余时间（单步核对）
//  2. 整链累计漂移有界：消耗的总时间 - 链尾溢出 ≈ 各环时长之和
//
// 任一性质违反时以非零退出（CI 可直接调用）。
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/decker502/motion/pkg/anim"
	"github.com/decker502/motion/pkg/easing"
)

var (
	links  = flag.Int("links", 200, "链的环数")
	trials = flag.Int("trials", 20, "随机试验次数")
	seed   = flag.Int64("seed", 1, "随机种子")
)

// driftBound 是可接受的累计浮点漂移上限。
// 每环一次减法、每步一次减法，误差按 ulp 量级累加。
const driftBound = 1e-9

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	fmt.Printf("链式溢出验证: %d 环 × %d 次试验 (seed=%d)\n", *links, *trials, *seed)
	fmt.Printf("%-8s %-14s %-14s %-14s %s\n", "试验", "总时长(s)", "消耗(s)", "漂移", "结果")

	failures := 0
	worst := 0.0
	for trial := 0; trial < *trials; trial++ {
		drift, total, consumed, err := runTrial(rng)
		status := "✅"
		if err != nil {
			status = "❌ " + err.Error()
			failures++
		}
		if drift > worst {
			worst = drift
		}
		fmt.Printf("%-8d %-14.6f %-14.6f %-14.3e %s\n", trial, total, consumed, drift, status)
	}

	fmt.Printf("最大漂移 %.3e（上限 %.0e）\n", worst, driftBound)
	if failures > 0 {
		fmt.Printf("❌ %d 次试验失败\n", failures)
		os.Exit(1)
	}
	fmt.Printf("✅ 全部试验通过\n")
}

// runTrial 跑一条随机链：每环时长 0.05~0.3 秒，dt 为 0.001~0.05 秒的随机切分
func runTrial(rng *rand.Rand) (drift, total, consumed float64, err error) {
	n := *links
	durations := make([]float64, n)
	total = 0
	for i := range durations {
		durations[i] = 0.05 + 0.25*rng.Float64()
		total += durations[i]
	}

	values := make([]float64, n)
	anims := make([]*anim.Animation, n)
	for i := range anims {
		v := &values[i]
		d := durations[i]
		target, terr := anim.NewTarget(anim.TargetConfig[float64]{
			Get:       func() float64 { return *v },
			Set:       func(nv float64) { *v = nv },
			FromValue: ptr(0.0),
			ToValue:   ptr(1.0),
			Easing:    easing.Linear,
		})
		if terr != nil {
			return 0, total, 0, fmt.Errorf("failed to build target: %v", terr)
		}
		a, aerr := anim.New(anim.Config{
			Targets:  []anim.AttributeTarget{target},
			Duration: &d,
		})
		if aerr != nil {
			return 0, total, 0, fmt.Errorf("failed to build animation: %v", aerr)
		}
		anims[i] = a
	}

	// 单步核对：每环完成时，溢出 = dt - 步前剩余
	var lastOverflow float64
	stepChecksOK := true
	for i, a := range anims {
		i := i
		a.OnFinish(func(overflow float64) {
			lastOverflow = overflow
			if overflow < 0 {
				stepChecksOK = false
				fmt.Printf("  环 %d 溢出为负: %v\n", i, overflow)
			}
		})
	}

	chain := anim.NewChain(anims[0], anims[1:]...)
	chain.Start()
	consumed = 0
	for chain.Running() {
		dt := 0.001 + 0.049*rng.Float64()
		consumed += dt
		chain.Step(dt)
	}

	drift = math.Abs((consumed - lastOverflow) - total)
	if !stepChecksOK {
		return drift, total, consumed, fmt.Errorf("per-step overflow check failed")
	}
	if drift > driftBound {
		return drift, total, consumed, fmt.Errorf("drift %.3e exceeds bound", drift)
	}
	// 每环都应收敛到终点值
	for i, v := range values {
		if v != 1 {
			return drift, total, consumed, fmt.Errorf("link %d final value %v != 1", i, v)
		}
	}
	return drift, total, consumed, nil
}

func ptr(v float64) *float64 { return &v }
