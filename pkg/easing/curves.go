package easing

import "math"

// 补充曲线族：正弦、指数、回弹、弹跳。
// 多项式族覆盖不了的速度感（突然减速、过冲、落地弹跳）从这里取。
// 公式与 https://easings.net/ 一致，导数为对应的解析解。

const (
	halfPi = math.Pi / 2

	// backDefaultOvershoot 回弹曲线的默认过冲系数
	backDefaultOvershoot = 1.70158

	// 弹跳曲线的标准参数
	bounceStiffness = 7.5625
	bounceInterval  = 2.75
)

// SineIn 正弦缓入：f(t) = 1 - cos(t·π/2)
var SineIn = Easing{
	Value: func(t float64) float64 {
		checkRatio(t)
		return 1 - math.Cos(t*halfPi)
	},
	Derivative: func(t float64) float64 {
		checkRatio(t)
		return halfPi * math.Sin(t*halfPi)
	},
	SecondDerivative: func(t float64) float64 {
		checkRatio(t)
		return halfPi * halfPi * math.Cos(t*halfPi)
	},
}

// SineOut 正弦缓出：f(t) = sin(t·π/2)
var SineOut = Easing{
	Value: func(t float64) float64 {
		checkRatio(t)
		return math.Sin(t * halfPi)
	},
	Derivative: func(t float64) float64 {
		checkRatio(t)
		return halfPi * math.Cos(t*halfPi)
	},
	SecondDerivative: func(t float64) float64 {
		checkRatio(t)
		return -halfPi * halfPi * math.Sin(t*halfPi)
	},
}

// SineInOut 正弦缓入缓出：f(t) = (1 - cos(π·t)) / 2
var SineInOut = Easing{
	Value: func(t float64) float64 {
		checkRatio(t)
		return (1 - math.Cos(math.Pi*t)) / 2
	},
	Derivative: func(t float64) float64 {
		checkRatio(t)
		return halfPi * math.Sin(math.Pi*t)
	},
	SecondDerivative: func(t float64) float64 {
		checkRatio(t)
		return math.Pi * math.Pi / 2 * math.Cos(math.Pi*t)
	},
}

// ExpoOut 指数缓出：f(t) = 1 - 2^(-10t)，t=1 时取精确值 1。
// 开始非常快，结束非常慢，适合"急停"效果。
var ExpoOut = Easing{
	Value: func(t float64) float64 {
		checkRatio(t)
		if t >= 1 {
			return 1
		}
		return 1 - math.Pow(2, -10*t)
	},
	Derivative: func(t float64) float64 {
		checkRatio(t)
		return 10 * math.Ln2 * math.Pow(2, -10*t)
	},
	SecondDerivative: func(t float64) float64 {
		checkRatio(t)
		return -100 * math.Ln2 * math.Ln2 * math.Pow(2, -10*t)
	},
}

// BackOut 构造带过冲的回弹缓出曲线：
// f(t) = 1 + (s+1)·(t-1)³ + s·(t-1)²，s 为过冲系数。
// s 必须非负；s=0 退化为普通三次缓出（无过冲）。
func BackOut(overshoot float64) Easing {
	if math.IsNaN(overshoot) || math.IsInf(overshoot, 0) || overshoot < 0 {
		panic("easing: BackOut overshoot must be finite and non-negative")
	}
	c1 := overshoot
	c3 := overshoot + 1
	return Easing{
		Value: func(t float64) float64 {
			checkRatio(t)
			u := t - 1
			return 1 + c3*u*u*u + c1*u*u
		},
		Derivative: func(t float64) float64 {
			checkRatio(t)
			u := t - 1
			return 3*c3*u*u + 2*c1*u
		},
		SecondDerivative: func(t float64) float64 {
			checkRatio(t)
			u := t - 1
			return 6*c3*u + 2*c1
		},
	}
}

// bounceOutSegment 返回 t 所在弹跳分段的顶点偏移和基线高度。
func bounceOutSegment(t float64) (offset, base float64) {
	switch {
	case t < 1/bounceInterval:
		return 0, 0
	case t < 2/bounceInterval:
		return 1.5 / bounceInterval, 0.75
	case t < 2.5/bounceInterval:
		return 2.25 / bounceInterval, 0.9375
	default:
		return 2.625 / bounceInterval, 0.984375
	}
}

// BounceOut 弹跳缓出：四段抛物线模拟落地反弹。
// 分段连接处不可导，导数按所在段的抛物线计算。
var BounceOut = Easing{
	Value: func(t float64) float64 {
		checkRatio(t)
		offset, base := bounceOutSegment(t)
		u := t - offset
		return bounceStiffness*u*u + base
	},
	Derivative: func(t float64) float64 {
		checkRatio(t)
		offset, _ := bounceOutSegment(t)
		return 2 * bounceStiffness * (t - offset)
	},
	SecondDerivative: func(t float64) float64 {
		checkRatio(t)
		return 2 * bounceStiffness
	},
}
