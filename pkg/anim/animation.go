// Package anim 提供按时间步进的属性插值引擎
//
// Animation 是一个小型状态机：拥有一组属性目标（AttributeTarget），
// 先经过延迟阶段（Delaying），再进入插值阶段（Animating），
// 通过显式的 Step(dt) 推进时间。每一步按注册顺序更新全部目标的属性值，
// 然后触发一次 Updated 通知——观察者不会看到"更新到一半"的动画帧。
//
// 引擎是单线程、协作式的：内部没有定时器，Step 之间完全空闲。
// 时间来源由调用方注入（通常是渲染循环里的 Clock.Advance），
// 引擎只在 running 期间订阅调度器，结束后立即退订，避免监听器泄漏。
package anim

import (
	"fmt"
	"math"

	"github.com/decker502/motion/pkg/easing"
)

// lengthSourceKind 区分动画时长的两种来源
type lengthSourceKind int

const (
	// lengthExplicit 由 Config.Duration 显式指定
	lengthExplicit lengthSourceKind = iota
	// lengthDerived 由唯一携带 Speed 的目标按距离推导
	lengthDerived
)

// lengthSource 是时长来源的和类型（sum type）：
// 显式时长，或"由第 targetIndex 个目标的速度推导"。
// 构造时校验过"恰好一个来源"，之后不再分支判断。
type lengthSource struct {
	kind        lengthSourceKind
	duration    float64 // kind == lengthExplicit 时有效
	targetIndex int     // kind == lengthDerived 时有效
}

// Config 是 Animation 的构造配置
type Config struct {
	// Targets 要驱动的属性目标，至少一个，按注册顺序更新
	Targets []AttributeTarget

	// Duration 显式动画时长（秒）。与目标上的 Speed 互斥：
	// 要么指定 Duration，要么恰好一个目标携带 Speed，二者必居其一
	Duration *float64

	// Delay 开始前的静止延迟（秒），必须 ≥ 0，默认 0
	Delay float64

	// Easing 默认缓动曲线，未指定曲线的目标使用它。
	// 零值表示使用 easing.CubicInOut
	Easing easing.Easing

	// Scheduler 可选的外部步进调度器。
	// 指定后，动画在 running 期间自动订阅，结束（完成或停止）时立即退订
	Scheduler Scheduler
}

// Animation 是核心动画引擎，插值一个或多个属性目标。
//
// 生命周期：Idle →(Start)→ Delaying →(延迟耗尽)→ Animating →(ratio=1 或 Stop)→ Idle。
// 同一个实例可以反复 Start/Stop，多次运行；只在调用方丢弃它时销毁。
type Animation struct {
	targets       []AttributeTarget
	length        lengthSource
	delay         float64
	defaultEasing easing.Easing
	scheduler     Scheduler

	// 运行时状态
	running        bool    // Start 到自然结束或 Stop 之间为 true
	animating      bool    // 仅插值阶段为 true，延迟阶段为 false
	remainingDelay float64 // 延迟阶段剩余时间
	resolvedLength float64 // 延迟耗尽时解析一次的动画时长
	remaining      float64 // 插值阶段剩余时间（可为负，负值即溢出）

	// 通知监听器，按注册顺序同步触发
	startedListeners  []func()
	beganListeners    []func()
	updatedListeners  []func()
	finishedListeners []func(overflow float64)
	stoppedListeners  []func()
	endedListeners    []func()
}

// New 构造一个 Animation 并校验构造期不变量：
// 至少一个目标、Delay 非负、时长来源恰好一个
// （显式 Duration 与携带 Speed 的目标互斥，且携带 Speed 的目标至多一个）。
func New(cfg Config) (*Animation, error) {
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("anim: at least one attribute target is required")
	}
	if math.IsNaN(cfg.Delay) || cfg.Delay < 0 {
		return nil, fmt.Errorf("anim: delay must be non-negative, got %v", cfg.Delay)
	}

	src, err := resolveLengthSource(cfg)
	if err != nil {
		return nil, err
	}

	defaultEasing := cfg.Easing
	if defaultEasing.IsZero() {
		defaultEasing = easing.CubicInOut
	}

	return &Animation{
		targets:       cfg.Targets,
		length:        src,
		delay:         cfg.Delay,
		defaultEasing: defaultEasing,
		scheduler:     cfg.Scheduler,
	}, nil
}

// resolveLengthSource 校验并确定时长来源。
// 规则："恰好一个"——显式 Duration 或恰好一个携带 Speed 的目标。
func resolveLengthSource(cfg Config) (lengthSource, error) {
	speedIndex := -1
	for i, target := range cfg.Targets {
		if !target.hasSpeed() {
			continue
		}
		if speedIndex >= 0 {
			return lengthSource{}, fmt.Errorf("anim: targets %d and %d both specify Speed, at most one is allowed", speedIndex, i)
		}
		speedIndex = i
	}

	if cfg.Duration != nil {
		if speedIndex >= 0 {
			return lengthSource{}, fmt.Errorf("anim: Duration and target Speed are mutually exclusive")
		}
		d := *cfg.Duration
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return lengthSource{}, fmt.Errorf("anim: duration must be finite and non-negative, got %v", d)
		}
		return lengthSource{kind: lengthExplicit, duration: d}, nil
	}

	if speedIndex < 0 {
		return lengthSource{}, fmt.Errorf("anim: missing length source: need Duration or exactly one target with Speed")
	}
	return lengthSource{kind: lengthDerived, targetIndex: speedIndex}, nil
}

// Running 报告动画是否处于一次运行之中（含延迟阶段）
func (a *Animation) Running() bool { return a.running }

// Animating 报告动画是否处于插值阶段（延迟阶段为 false）
func (a *Animation) Animating() bool { return a.animating }

// OnStart 注册 Start 时刻的监听器
func (a *Animation) OnStart(fn func()) { a.startedListeners = append(a.startedListeners, fn) }

// OnBegin 注册延迟耗尽、进入插值阶段时刻的监听器
func (a *Animation) OnBegin(fn func()) { a.beganListeners = append(a.beganListeners, fn) }

// OnUpdate 注册每步更新后的监听器（全部目标更新完毕后触发一次）
func (a *Animation) OnUpdate(fn func()) { a.updatedListeners = append(a.updatedListeners, fn) }

// OnFinish 注册自然完成时刻的监听器，携带溢出时间
// （本次 Step 超出动画终点的部分，单位秒）。Stop 不会触发它。
func (a *Animation) OnFinish(fn func(overflow float64)) {
	a.finishedListeners = append(a.finishedListeners, fn)
}

// OnStop 注册 Stop 时刻的监听器，自然完成不会触发它
func (a *Animation) OnStop(fn func()) { a.stoppedListeners = append(a.stoppedListeners, fn) }

// OnEnd 注册运行结束的监听器：无论自然完成还是被 Stop，
// 每次运行恰好触发一次，在 Finished 或 Stopped 之后。
func (a *Animation) OnEnd(fn func()) { a.endedListeners = append(a.endedListeners, fn) }

// Start 开始一次运行。已在运行中则为空操作。
//
// 可选的 dt 参数（至多一个）是起跑偏移：重置延迟倒计时、触发 Started 之后，
// 立即执行一次 Step(dt)。链式动画用它"带着上一个动画的溢出时间起跑"，
// 省略时等价于 Step(0)——目标立即被写入起始值（延迟为零时）。
func (a *Animation) Start(dt ...float64) {
	if len(dt) > 1 {
		panic(fmt.Sprintf("anim: Start accepts at most one dt argument, got %d", len(dt)))
	}
	if a.running {
		return
	}

	a.running = true
	a.animating = false
	a.remainingDelay = a.delay
	if a.scheduler != nil {
		a.scheduler.Subscribe(a)
	}
	for _, fn := range a.startedListeners {
		fn()
	}

	initial := 0.0
	if len(dt) == 1 {
		initial = dt[0]
	}
	a.Step(initial)
}

// Step 推进 dt 秒。未在运行中则为空操作。dt 必须是有限非负数。
//
// 延迟阶段消耗 dt；越过延迟边界的部分原样带入插值阶段。
// 插值阶段计算 ratio = clamp((length-remaining)/length, 0, 1)
// （length=0 时 ratio 定义为 1），按注册顺序更新全部目标，
// 触发一次 Updated；ratio=1 时依次触发 Finished(溢出时间) 和 Ended。
func (a *Animation) Step(dt float64) {
	if !a.running {
		return
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		panic(fmt.Sprintf("anim: Step dt=%v must be finite and non-negative", dt))
	}

	if !a.animating {
		a.remainingDelay -= dt
		if a.remainingDelay > 0 {
			return
		}
		// 越过延迟边界的时间带入插值阶段
		dt = -a.remainingDelay
		a.remainingDelay = 0
		a.beginAnimating()
	}

	a.remaining -= dt

	var ratio float64
	if a.resolvedLength == 0 {
		// 零长动画必须在第一步完成，不允许除零
		ratio = 1
	} else {
		ratio = (a.resolvedLength - a.remaining) / a.resolvedLength
		if ratio < 0 {
			ratio = 0
		} else if ratio > 1 {
			ratio = 1
		}
	}

	for _, target := range a.targets {
		target.apply(ratio, a.defaultEasing)
	}
	for _, fn := range a.updatedListeners {
		fn()
	}

	// Updated 监听器可能在终点那一步里调用 Stop()——
	// 此时本次运行已经结束，不能再走自然完成路径
	if ratio >= 1 && a.running {
		overflow := -a.remaining
		if overflow < 0 {
			overflow = 0
		}
		a.finish(overflow)
	}
}

// beginAnimating 完成延迟到插值的状态转移：
// 解析每个目标的 from/to（惰性来源此刻求值），解析一次动画时长，
// 置 animating=true 并触发 Began。这一解析每次运行恰好发生一次。
func (a *Animation) beginAnimating() {
	for _, target := range a.targets {
		target.resolve()
	}

	switch a.length.kind {
	case lengthExplicit:
		a.resolvedLength = a.length.duration
	case lengthDerived:
		a.resolvedLength = a.targets[a.length.targetIndex].derivedLength()
	}
	a.remaining = a.resolvedLength

	a.animating = true
	for _, fn := range a.beganListeners {
		fn()
	}
}

// finish 处理自然完成：退出运行态、退订调度器，
// 依次触发 Finished(overflow) 和 Ended。
func (a *Animation) finish(overflow float64) {
	a.animating = false
	a.running = false
	if a.scheduler != nil {
		a.scheduler.Unsubscribe(a)
	}
	for _, fn := range a.finishedListeners {
		fn(overflow)
	}
	for _, fn := range a.endedListeners {
		fn()
	}
}

// Stop 中止当前运行。未在运行中则为空操作。
// 依次触发 Stopped 和 Ended；Finished 对被中止的运行永不触发。
func (a *Animation) Stop() {
	if !a.running {
		return
	}
	a.running = false
	a.animating = false
	if a.scheduler != nil {
		a.scheduler.Unsubscribe(a)
	}
	for _, fn := range a.stoppedListeners {
		fn()
	}
	for _, fn := range a.endedListeners {
		fn()
	}
}

// Then 注册 next 在本动画自然完成时带溢出时间起跑（next.Start(overflow)），
// 返回 next 以便流式串联：a.Then(b).Then(c)。
// Stop 打断的运行不会启动后继。
func (a *Animation) Then(next *Animation) *Animation {
	a.OnFinish(func(overflow float64) {
		next.Start(overflow)
	})
	return next
}
