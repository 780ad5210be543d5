// Package easing 提供动画缓动曲线族（Easing Functions）
//
// 缓动曲线把归一化的时间比例 t ∈ [0, 1] 映射为取值比例 ∈ [0, 1]，
// 用于控制动画的速度感。与简单的缓动函数不同，本包的 Easing 同时
// 携带一阶导数和二阶导数，供需要速度/加速度信息的调用方使用
// （例如运动诊断、与物理模型的衔接）。
//
// 多项式族由实数次数 n 参数化（n 不要求是整数）：
//   - ease-in:     f(t) = tⁿ
//   - ease-out:    f(t) = 1-(1-t)ⁿ
//   - ease-in-out: t ≤ 0.5 时 f(t) = 0.5·(2t)ⁿ，t > 0.5 时 f(t) = 1-f(1-t)
//
// 参考：https://easings.net/
package easing

import (
	"fmt"
	"math"
)

// Easing 是一条不可变的缓动曲线：值函数及其一阶、二阶导数。
// 三个函数的定义域都是 [0, 1]，传入范围外的 t 属于调用方契约错误。
type Easing struct {
	// Value 把时间比例映射为取值比例
	Value func(t float64) float64
	// Derivative 是 Value 的一阶导数
	Derivative func(t float64) float64
	// SecondDerivative 是 Value 的二阶导数
	SecondDerivative func(t float64) float64
}

// New 用三个函数构造一条缓动曲线。
// 任意一个函数为 nil 都是契约错误。
func New(value, derivative, secondDerivative func(t float64) float64) Easing {
	if value == nil || derivative == nil || secondDerivative == nil {
		panic("easing: New requires three non-nil functions")
	}
	return Easing{
		Value:            value,
		Derivative:       derivative,
		SecondDerivative: secondDerivative,
	}
}

// IsZero 报告 e 是否为未初始化的零值曲线。
// 零值用于"未指定，使用默认曲线"的场合。
func (e Easing) IsZero() bool {
	return e.Value == nil && e.Derivative == nil && e.SecondDerivative == nil
}

// checkRatio 校验时间比例在 [0,1] 内且有限。
// 越界不是可恢复错误：静默钳制会破坏动画时序，所以直接 panic。
func checkRatio(t float64) {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 || t > 1 {
		panic(fmt.Sprintf("easing: time ratio t=%v out of [0,1]", t))
	}
}

// checkDegree 校验多项式次数为有限正数。
func checkDegree(n float64) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		panic(fmt.Sprintf("easing: polynomial degree n=%v must be finite and positive", n))
	}
}

// PolynomialEaseInValue 计算 tⁿ。
func PolynomialEaseInValue(n, t float64) float64 {
	checkDegree(n)
	checkRatio(t)
	return math.Pow(t, n)
}

// PolynomialEaseInDerivative 计算 n·tⁿ⁻¹。
func PolynomialEaseInDerivative(n, t float64) float64 {
	checkDegree(n)
	checkRatio(t)
	return n * math.Pow(t, n-1)
}

// PolynomialEaseInSecondDerivative 计算 (n-1)·n·tⁿ⁻²。
// n=1 时二阶导数恒为 0，避免 0·∞ 产生 NaN。
func PolynomialEaseInSecondDerivative(n, t float64) float64 {
	checkDegree(n)
	checkRatio(t)
	if n == 1 {
		return 0
	}
	return (n - 1) * n * math.Pow(t, n-2)
}

// PolynomialEaseOutValue 计算 1-(1-t)ⁿ。
func PolynomialEaseOutValue(n, t float64) float64 {
	checkDegree(n)
	checkRatio(t)
	return 1 - math.Pow(1-t, n)
}

// PolynomialEaseOutDerivative 计算 n·(1-t)ⁿ⁻¹。
func PolynomialEaseOutDerivative(n, t float64) float64 {
	checkDegree(n)
	checkRatio(t)
	return n * math.Pow(1-t, n-1)
}

// PolynomialEaseOutSecondDerivative 计算 -(n-1)·n·(1-t)ⁿ⁻²。
func PolynomialEaseOutSecondDerivative(n, t float64) float64 {
	checkDegree(n)
	checkRatio(t)
	if n == 1 {
		return 0
	}
	return -(n - 1) * n * math.Pow(1-t, n-2)
}

// PolynomialEaseInOutValue 计算分段自相似的 ease-in-out：
// t ≤ 0.5 时为 0.5·(2t)ⁿ，t > 0.5 时按 1-f(1-t) 反射。
// 对任意 n 都有 f(0.5) = 0.5（精确成立）。
func PolynomialEaseInOutValue(n, t float64) float64 {
	checkDegree(n)
	checkRatio(t)
	if t <= 0.5 {
		return 0.5 * math.Pow(2*t, n)
	}
	return 1 - PolynomialEaseInOutValue(n, 1-t)
}

// PolynomialEaseInOutDerivative 计算 ease-in-out 的一阶导数。
// 导数关于 t=0.5 偶对称：反射但不取负。
func PolynomialEaseInOutDerivative(n, t float64) float64 {
	checkDegree(n)
	checkRatio(t)
	if t <= 0.5 {
		return n * math.Pow(2*t, n-1)
	}
	return PolynomialEaseInOutDerivative(n, 1-t)
}

// PolynomialEaseInOutSecondDerivative 计算 ease-in-out 的二阶导数。
// 二阶导数关于 t=0.5 奇对称：反射并取负。
func PolynomialEaseInOutSecondDerivative(n, t float64) float64 {
	checkDegree(n)
	checkRatio(t)
	if n == 1 {
		return 0
	}
	if t <= 0.5 {
		return 2 * n * (n - 1) * math.Pow(2*t, n-2)
	}
	return -PolynomialEaseInOutSecondDerivative(n, 1-t)
}

// PolynomialEaseIn 构造次数为 n 的 ease-in 曲线。
func PolynomialEaseIn(n float64) Easing {
	checkDegree(n)
	return Easing{
		Value:            func(t float64) float64 { return PolynomialEaseInValue(n, t) },
		Derivative:       func(t float64) float64 { return PolynomialEaseInDerivative(n, t) },
		SecondDerivative: func(t float64) float64 { return PolynomialEaseInSecondDerivative(n, t) },
	}
}

// PolynomialEaseOut 构造次数为 n 的 ease-out 曲线。
func PolynomialEaseOut(n float64) Easing {
	checkDegree(n)
	return Easing{
		Value:            func(t float64) float64 { return PolynomialEaseOutValue(n, t) },
		Derivative:       func(t float64) float64 { return PolynomialEaseOutDerivative(n, t) },
		SecondDerivative: func(t float64) float64 { return PolynomialEaseOutSecondDerivative(n, t) },
	}
}

// PolynomialEaseInOut 构造次数为 n 的 ease-in-out 曲线。
func PolynomialEaseInOut(n float64) Easing {
	checkDegree(n)
	return Easing{
		Value:            func(t float64) float64 { return PolynomialEaseInOutValue(n, t) },
		Derivative:       func(t float64) float64 { return PolynomialEaseInOutDerivative(n, t) },
		SecondDerivative: func(t float64) float64 { return PolynomialEaseInOutSecondDerivative(n, t) },
	}
}

// 固定实例的多项式预设。
// Linear 三个变体等价，这里只保留一个。
var (
	// Linear 线性（无缓动），n=1
	Linear = PolynomialEaseIn(1)

	// QuadraticIn 二次缓入，n=2
	QuadraticIn = PolynomialEaseIn(2)
	// QuadraticOut 二次缓出
	QuadraticOut = PolynomialEaseOut(2)
	// QuadraticInOut 二次缓入缓出
	QuadraticInOut = PolynomialEaseInOut(2)

	// CubicIn 三次缓入，n=3
	CubicIn = PolynomialEaseIn(3)
	// CubicOut 三次缓出（推荐用于"飞向目标"类动画）
	CubicOut = PolynomialEaseOut(3)
	// CubicInOut 三次缓入缓出
	CubicInOut = PolynomialEaseInOut(3)

	// QuarticIn 四次缓入，n=4
	QuarticIn = PolynomialEaseIn(4)
	// QuarticOut 四次缓出
	QuarticOut = PolynomialEaseOut(4)
	// QuarticInOut 四次缓入缓出
	QuarticInOut = PolynomialEaseInOut(4)

	// QuinticIn 五次缓入，n=5
	QuinticIn = PolynomialEaseIn(5)
	// QuinticOut 五次缓出
	QuinticOut = PolynomialEaseOut(5)
	// QuinticInOut 五次缓入缓出
	QuinticInOut = PolynomialEaseInOut(5)
)
