// Package damped 提供阻尼谐振子动画
//
// 与基于比例的缓动动画不同，DampedAnimation 没有固定时长和缓动曲线：
// 给定目标值、阻尼比和回复力系数，它求出闭式的阻尼谐振解，
// 由 Step(dt) 推进的流逝时间驱动。适合"后坐力回弹"这类
// 没有明确缓动曲线语义的运动。
//
// 阻尼语义：damping=1 为临界阻尼（最快的无振荡趋近）；
// <1 欠阻尼（衰减振荡）；>1 过阻尼（更慢的无振荡趋近）。
//
// 任何参数变化（目标值、阻尼、力、当前值、速度）都会以当前的
// 值和速度为新初始条件重解闭式并把流逝时间清零——中途改目标
// 不会让位置跳变。
package damped

import (
	"fmt"
	"math"
)

// trajectory 是缓存的闭式轨迹：相对目标值的偏移及其导数
type trajectory func(t float64) (offset, velocity float64)

// DampedAnimation 是一个一维阻尼谐振子
type DampedAnimation struct {
	value       float64
	velocity    float64
	targetValue float64
	damping     float64
	force       float64

	elapsed float64
	solve   trajectory
}

// New 构造阻尼动画。damping 和 force 必须是有限正数。
//
// 参数：
//   - value: 初始值
//   - velocity: 初始速度
//   - targetValue: 趋近的目标值
//   - damping: 阻尼比（相对临界阻尼）
//   - force: 回复力系数，角频率 ω = √force
func New(value, velocity, targetValue, damping, force float64) (*DampedAnimation, error) {
	if math.IsNaN(damping) || math.IsInf(damping, 0) || damping <= 0 {
		return nil, fmt.Errorf("damped: damping ratio must be finite and positive, got %v", damping)
	}
	if math.IsNaN(force) || math.IsInf(force, 0) || force <= 0 {
		return nil, fmt.Errorf("damped: force must be finite and positive, got %v", force)
	}
	d := &DampedAnimation{
		value:       value,
		velocity:    velocity,
		targetValue: targetValue,
		damping:     damping,
		force:       force,
	}
	d.recompute()
	return d, nil
}

// Value 返回当前值
func (d *DampedAnimation) Value() float64 { return d.value }

// Velocity 返回当前速度
func (d *DampedAnimation) Velocity() float64 { return d.velocity }

// TargetValue 返回目标值
func (d *DampedAnimation) TargetValue() float64 { return d.targetValue }

// Damping 返回阻尼比
func (d *DampedAnimation) Damping() float64 { return d.damping }

// Force 返回回复力系数
func (d *DampedAnimation) Force() float64 { return d.force }

// ElapsedTime 返回自上次参数变化以来的流逝时间（秒）
func (d *DampedAnimation) ElapsedTime() float64 { return d.elapsed }

// SetValue 设置当前值并以此为新初始条件重解轨迹
func (d *DampedAnimation) SetValue(value float64) {
	d.value = value
	d.recompute()
}

// SetVelocity 设置当前速度并重解轨迹
func (d *DampedAnimation) SetVelocity(velocity float64) {
	d.velocity = velocity
	d.recompute()
}

// SetTargetValue 改变目标值。当前值与速度保持连续，不会跳变。
func (d *DampedAnimation) SetTargetValue(targetValue float64) {
	d.targetValue = targetValue
	d.recompute()
}

// SetDamping 改变阻尼比，必须是有限正数（契约错误直接 panic）
func (d *DampedAnimation) SetDamping(damping float64) {
	if math.IsNaN(damping) || math.IsInf(damping, 0) || damping <= 0 {
		panic(fmt.Sprintf("damped: damping ratio must be finite and positive, got %v", damping))
	}
	d.damping = damping
	d.recompute()
}

// SetForce 改变回复力系数，必须是有限正数
func (d *DampedAnimation) SetForce(force float64) {
	if math.IsNaN(force) || math.IsInf(force, 0) || force <= 0 {
		panic(fmt.Sprintf("damped: force must be finite and positive, got %v", force))
	}
	d.force = force
	d.recompute()
}

// Step 推进 dt 秒并按闭式轨迹更新值与速度。
// dt 必须是有限非负数；dt=0 只做一次重求值。
func (d *DampedAnimation) Step(dt float64) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		panic(fmt.Sprintf("damped: Step dt=%v must be finite and non-negative", dt))
	}
	d.elapsed += dt
	offset, velocity := d.solve(d.elapsed)
	d.value = d.targetValue + offset
	d.velocity = velocity
}

// AtRest 报告是否已收敛：与目标的偏差和速度都在给定阈值内
func (d *DampedAnimation) AtRest(valueEps, velocityEps float64) bool {
	return math.Abs(d.value-d.targetValue) <= valueEps && math.Abs(d.velocity) <= velocityEps
}

// recompute 以当前值与速度为初始条件求解闭式轨迹并清零流逝时间。
//
// 方程 y” + 2ζω·y' + ω²·y = 0，其中 y = value - targetValue，
// ω = √force，ζ = damping。按 ζ 与 1 的关系取三种解：
//   - ζ < 1 欠阻尼：y = e^(-ζωt)·(A·cos ω_d t + B·sin ω_d t)，ω_d = ω√(1-ζ²)
//   - ζ = 1 临界：y = (c₁ + c₂t)·e^(-ωt)
//   - ζ > 1 过阻尼：y = c₁·e^(r₁t) + c₂·e^(r₂t)，r₁,₂ = -ζω ± ω√(ζ²-1)
func (d *DampedAnimation) recompute() {
	d.elapsed = 0

	omega := math.Sqrt(d.force)
	zeta := d.damping
	y0 := d.value - d.targetValue
	v0 := d.velocity

	switch {
	case zeta < 1:
		omegaD := omega * math.Sqrt(1-zeta*zeta)
		a := y0
		b := (v0 + zeta*omega*y0) / omegaD
		d.solve = func(t float64) (float64, float64) {
			decay := math.Exp(-zeta * omega * t)
			sin, cos := math.Sincos(omegaD * t)
			offset := decay * (a*cos + b*sin)
			velocity := decay * ((b*omegaD-a*zeta*omega)*cos - (a*omegaD+b*zeta*omega)*sin)
			return offset, velocity
		}

	case zeta == 1:
		c1 := y0
		c2 := v0 + omega*y0
		d.solve = func(t float64) (float64, float64) {
			decay := math.Exp(-omega * t)
			offset := (c1 + c2*t) * decay
			velocity := (c2 - omega*(c1+c2*t)) * decay
			return offset, velocity
		}

	default: // zeta > 1
		disc := omega * math.Sqrt(zeta*zeta-1)
		r1 := -zeta*omega + disc
		r2 := -zeta*omega - disc
		c2 := (v0 - r1*y0) / (r2 - r1)
		c1 := y0 - c2
		d.solve = func(t float64) (float64, float64) {
			e1 := math.Exp(r1 * t)
			e2 := math.Exp(r2 * t)
			offset := c1*e1 + c2*e2
			velocity := c1*r1*e1 + c2*r2*e2
			return offset, velocity
		}
	}
}
