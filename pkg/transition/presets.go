package transition

import (
	"fmt"
	"math"

	"github.com/decker502/motion/pkg/anim"
)

// 本文件是三类预设工厂：slide（滑动）、wipe（扫动）、dissolve（溶解）。
// 每个工厂根据几何与方向合成镜像的退场/入场目标组，
// 并绑定该预设的中性值复位函数。退场或入场内容可以为 nil
// （从无到有、从有到无的过渡），对应目标组直接省略。

// SlideLeft 向左滑动：退场内容 x 从 0 到 -宽度，入场内容 x 从 +宽度 到 0
func SlideLeft(bounds Rect, from, to anim.Attributable, opts ...Option) (*Transition, error) {
	return slide(AttrX, bounds.Width(), -1, from, to, opts)
}

// SlideRight 向右滑动：退场内容 x 从 0 到 +宽度，入场内容 x 从 -宽度 到 0
func SlideRight(bounds Rect, from, to anim.Attributable, opts ...Option) (*Transition, error) {
	return slide(AttrX, bounds.Width(), +1, from, to, opts)
}

// SlideUp 向上滑动：退场内容 y 从 0 到 -高度，入场内容 y 从 +高度 到 0
func SlideUp(bounds Rect, from, to anim.Attributable, opts ...Option) (*Transition, error) {
	return slide(AttrY, bounds.Height(), -1, from, to, opts)
}

// SlideDown 向下滑动：退场内容 y 从 0 到 +高度，入场内容 y 从 -高度 到 0
func SlideDown(bounds Rect, from, to anim.Attributable, opts ...Option) (*Transition, error) {
	return slide(AttrY, bounds.Height(), +1, from, to, opts)
}

// slide 按符号合成位置目标：退场 0→sign·size，入场 -sign·size→0。
// 符号保证两个内容始终朝同一屏幕方向移动。
func slide(attr string, size, sign float64, from, to anim.Attributable, opts []Option) (*Transition, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	fromSpeed, toSpeed := splitSpeed(o, to)

	var targets []anim.AttributeTarget
	if from != nil {
		target, err := floatTarget(from, attr, 0, sign*size, fromSpeed, nil)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	if to != nil {
		target, err := floatTarget(to, attr, -sign*size, 0, toSpeed, nil)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return newTransition(from, to, targets, o, resetAttribute(attr, 0.0))
}

// WipeLeft 边界从右向左扫动：退场裁剪 [MinX, MaxX]→[MinX, MinX]，
// 入场裁剪 [MaxX, MaxX]→[MinX, MaxX]。任意时刻两块裁剪恰好铺满边界。
func WipeLeft(bounds Rect, from, to anim.Attributable, opts ...Option) (*Transition, error) {
	b := bounds
	outgoingEnd := Rect{MinX: b.MinX, MinY: b.MinY, MaxX: b.MinX, MaxY: b.MaxY}
	incomingStart := Rect{MinX: b.MaxX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}
	return wipe(b, outgoingEnd, incomingStart, from, to, opts)
}

// WipeRight 边界从左向右扫动
func WipeRight(bounds Rect, from, to anim.Attributable, opts ...Option) (*Transition, error) {
	b := bounds
	outgoingEnd := Rect{MinX: b.MaxX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}
	incomingStart := Rect{MinX: b.MinX, MinY: b.MinY, MaxX: b.MinX, MaxY: b.MaxY}
	return wipe(b, outgoingEnd, incomingStart, from, to, opts)
}

// WipeUp 边界从下向上扫动
func WipeUp(bounds Rect, from, to anim.Attributable, opts ...Option) (*Transition, error) {
	b := bounds
	outgoingEnd := Rect{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MinY}
	incomingStart := Rect{MinX: b.MinX, MinY: b.MaxY, MaxX: b.MaxX, MaxY: b.MaxY}
	return wipe(b, outgoingEnd, incomingStart, from, to, opts)
}

// WipeDown 边界从上向下扫动
func WipeDown(bounds Rect, from, to anim.Attributable, opts ...Option) (*Transition, error) {
	b := bounds
	outgoingEnd := Rect{MinX: b.MinX, MinY: b.MaxY, MaxX: b.MaxX, MaxY: b.MaxY}
	incomingStart := Rect{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MinY}
	return wipe(b, outgoingEnd, incomingStart, from, to, opts)
}

// wipe 合成裁剪目标：退场从完整边界收缩到前缘塌到后缘的矩形，
// 入场走镜像路径。复位值是 nil——无裁剪。
func wipe(bounds, outgoingEnd, incomingStart Rect, from, to anim.Attributable, opts []Option) (*Transition, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("transition: wipe requires non-empty bounds, got %v", bounds)
	}
	fromSpeed, toSpeed := splitSpeed(o, to)

	var targets []anim.AttributeTarget
	if from != nil {
		target, err := clipTarget(from, bounds, outgoingEnd, fromSpeed)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	if to != nil {
		target, err := clipTarget(to, incomingStart, bounds, toSpeed)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return newTransition(from, to, targets, o, resetAttribute(AttrClip, (*Rect)(nil)))
}

// Dissolve 溶解：退场不透明度 1→0，入场 0→1。
// WithGamma(γ) 启用伽马校正混合 ((1-r)·a + r·b)^γ，γ=1 即线性。
// 复位值是完全不透明（1），与哪个内容画在上层无关。
func Dissolve(from, to anim.Attributable, opts ...Option) (*Transition, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	fromSpeed, toSpeed := splitSpeed(o, to)
	blend := gammaBlend(o.gamma)

	var targets []anim.AttributeTarget
	if from != nil {
		target, err := floatTarget(from, AttrOpacity, 1, 0, fromSpeed, blend)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	if to != nil {
		target, err := floatTarget(to, AttrOpacity, 0, 1, toSpeed, blend)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return newTransition(from, to, targets, o, resetAttribute(AttrOpacity, 1.0))
}

// gammaBlend 返回伽马校正混合。math.Pow(x, 1) 精确等于 x，
// γ=1 时与默认线性插值一致。
func gammaBlend(gamma float64) func(a, b, ratio float64) float64 {
	return func(a, b, ratio float64) float64 {
		return math.Pow((1-ratio)*a+ratio*b, gamma)
	}
}

// splitSpeed 把速度选项分配到恰好一个目标：
// 优先入场目标，无入场内容时落在退场目标。
func splitSpeed(o *options, to anim.Attributable) (fromSpeed, toSpeed float64) {
	if o.speed == 0 {
		return 0, 0
	}
	if to != nil {
		return 0, o.speed
	}
	return o.speed, 0
}

// resetAttribute 返回把属性写回中性值的复位函数。
// 复位失败与动画期写入失败同级：契约错误，直接 panic。
func resetAttribute(attr string, value any) func(anim.Attributable) {
	return func(obj anim.Attributable) {
		if err := obj.SetAttributeValue(attr, value); err != nil {
			panic(fmt.Sprintf("transition: failed to reset attribute %q: %v", attr, err))
		}
	}
}
