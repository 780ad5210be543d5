// Package transition 在动画引擎之上合成屏幕过渡
//
// 一个过渡同时驱动两组镜像的属性目标：一组作用于退场内容，
// 一组作用于入场内容，由命名预设（slide/wipe/dissolve）按几何和方向合成。
// 无论过渡自然完成还是被打断，两个对象的属性都保证被复位到中性值。
//
// 过渡只依赖 anim.Attributable 协作者契约：按名字读写属性。
// 本包不做任何渲染，渲染层读回属性值（位置、不透明度、裁剪区域）自行绘制。
package transition

import (
	"fmt"
	"math"

	"github.com/decker502/motion/pkg/anim"
	"github.com/decker502/motion/pkg/easing"
)

// 预设过渡动的标准属性名。
// 渲染层按这些名字暴露属性即可接入全部预设。
const (
	// AttrX 水平位置偏移（像素，0 为中性位）
	AttrX = "x"
	// AttrY 垂直位置偏移
	AttrY = "y"
	// AttrOpacity 不透明度，0~1，中性值 1
	AttrOpacity = "opacity"
	// AttrClip 裁剪区域，值类型 *Rect，nil 为无裁剪
	AttrClip = "clip"
)

// DefaultDuration 未指定时长来源时的默认过渡时长（秒）
const DefaultDuration = 1.0

// options 汇总全部预设共用的可选配置
type options struct {
	duration  *float64
	delay     float64
	easing    easing.Easing
	speed     float64
	gamma     float64
	scheduler anim.Scheduler
	reset     func(anim.Attributable)
}

// Option 配置过渡预设的可选项
type Option func(*options)

// WithDuration 指定显式过渡时长（秒）。与 WithTargetSpeed 互斥。
func WithDuration(seconds float64) Option {
	return func(o *options) { o.duration = &seconds }
}

// WithDelay 指定开始前的延迟（秒）
func WithDelay(seconds float64) Option {
	return func(o *options) { o.delay = seconds }
}

// WithEasing 指定过渡的缓动曲线，默认 easing.CubicInOut
func WithEasing(e easing.Easing) Option {
	return func(o *options) { o.easing = e }
}

// WithTargetSpeed 用速度推导时长：时长 = 入场目标的移动距离 / speed
// （无入场内容时取退场目标）。与 WithDuration 互斥。
func WithTargetSpeed(speed float64) Option {
	return func(o *options) { o.speed = speed }
}

// WithGamma 指定 Dissolve 的伽马校正指数（γ=1 为线性混合），
// 其他预设忽略该选项
func WithGamma(gamma float64) Option {
	return func(o *options) { o.gamma = gamma }
}

// WithScheduler 指定外部步进调度器，过渡运行期间自动订阅
func WithScheduler(s anim.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithResetAttributes 覆盖预设的属性复位函数。
// 过渡结束时（完成或打断）对退场、入场两个对象各调用一次。
func WithResetAttributes(fn func(anim.Attributable)) Option {
	return func(o *options) { o.reset = fn }
}

func applyOptions(opts []Option) (*options, error) {
	o := &options{gamma: 1}
	for _, opt := range opts {
		opt(o)
	}
	if o.duration != nil && o.speed != 0 {
		return nil, fmt.Errorf("transition: WithDuration and WithTargetSpeed are mutually exclusive")
	}
	if o.speed != 0 && (math.IsNaN(o.speed) || math.IsInf(o.speed, 0) || o.speed < 0) {
		return nil, fmt.Errorf("transition: speed must be finite and positive, got %v", o.speed)
	}
	if math.IsNaN(o.gamma) || math.IsInf(o.gamma, 0) || o.gamma <= 0 {
		return nil, fmt.Errorf("transition: gamma must be finite and positive, got %v", o.gamma)
	}
	return o, nil
}

// animDuration 返回传给 anim.Config 的时长：
// 指定速度时返回 nil（由目标推导），否则显式时长或默认 1 秒
func (o *options) animDuration() *float64 {
	if o.speed != 0 {
		return nil
	}
	if o.duration != nil {
		return o.duration
	}
	d := DefaultDuration
	return &d
}

// Transition 是一个保证属性复位的双内容动画。
// 嵌入 *anim.Animation，完整继承其生命周期操作与通知。
type Transition struct {
	*anim.Animation

	from anim.Attributable
	to   anim.Attributable
}

// From 返回退场内容，可能为 nil
func (t *Transition) From() anim.Attributable { return t.from }

// To 返回入场内容，可能为 nil
func (t *Transition) To() anim.Attributable { return t.to }

// newTransition 组装底层动画并挂接复位保证。
// 复位经由 Ended 通知触发：每次运行恰好一次，完成和打断都覆盖。
func newTransition(from, to anim.Attributable, targets []anim.AttributeTarget, o *options, defaultReset func(anim.Attributable)) (*Transition, error) {
	if from == nil && to == nil {
		return nil, fmt.Errorf("transition: outgoing and incoming contents cannot both be nil")
	}

	a, err := anim.New(anim.Config{
		Targets:   targets,
		Duration:  o.animDuration(),
		Delay:     o.delay,
		Easing:    o.easing,
		Scheduler: o.scheduler,
	})
	if err != nil {
		return nil, err
	}

	reset := o.reset
	if reset == nil {
		reset = defaultReset
	}

	tr := &Transition{Animation: a, from: from, to: to}
	a.OnEnd(func() {
		if from != nil {
			reset(from)
		}
		if to != nil {
			reset(to)
		}
	})
	return tr, nil
}

// floatTarget 构造一个按名字驱动 float64 属性的目标
func floatTarget(obj anim.Attributable, attr string, from, to float64, speed float64, blend func(a, b, ratio float64) float64) (anim.AttributeTarget, error) {
	return anim.NewTarget(anim.TargetConfig[float64]{
		Object:    obj,
		Attribute: attr,
		FromValue: &from,
		ToValue:   &to,
		Speed:     speed,
		Blend:     blend,
	})
}

// clipTarget 构造一个驱动 *Rect 裁剪属性的目标。
// 混合函数对四条边做分量插值并产出可渲染区域——不是数值混合。
func clipTarget(obj anim.Attributable, from, to Rect, speed float64) (anim.AttributeTarget, error) {
	fromPtr, toPtr := &from, &to
	return anim.NewTarget(anim.TargetConfig[*Rect]{
		Object:    obj,
		Attribute: AttrClip,
		FromValue: &fromPtr,
		ToValue:   &toPtr,
		Speed:     speed,
		Blend: func(a, b *Rect, ratio float64) *Rect {
			r := a.Lerp(*b, ratio)
			return &r
		},
		Distance: func(a, b *Rect) float64 {
			return a.Distance(*b)
		},
	})
}
