package transition

import (
	"fmt"
	"image"
	"math"
)

// Rect 是浮点矩形区域，用作 wipe 过渡的裁剪值。
// 裁剪属性的值类型是 *Rect：nil 表示"无裁剪"（全部可见）。
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewRect 用左上角和宽高构造矩形
func NewRect(x, y, width, height float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + width, MaxY: y + height}
}

// Width 返回宽度
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height 返回高度
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Empty 报告矩形是否没有面积
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Lerp 对两个矩形的四条边做分量插值。
// 这是 wipe 裁剪属性的混合基础：结果不是数值，而是可渲染的区域。
func (r Rect) Lerp(other Rect, ratio float64) Rect {
	return Rect{
		MinX: r.MinX + (other.MinX-r.MinX)*ratio,
		MinY: r.MinY + (other.MinY-r.MinY)*ratio,
		MaxX: r.MaxX + (other.MaxX-r.MaxX)*ratio,
		MaxY: r.MaxY + (other.MaxY-r.MaxY)*ratio,
	}
}

// Distance 返回两个矩形对应边偏移的最大绝对值，
// 供速度推导时长使用（速度单位：像素/秒）。
func (r Rect) Distance(other Rect) float64 {
	d := math.Abs(other.MinX - r.MinX)
	if v := math.Abs(other.MinY - r.MinY); v > d {
		d = v
	}
	if v := math.Abs(other.MaxX - r.MaxX); v > d {
		d = v
	}
	if v := math.Abs(other.MaxY - r.MaxY); v > d {
		d = v
	}
	return d
}

// ToImageRect 转换为渲染层使用的整数矩形（边界四舍五入）
func (r Rect) ToImageRect() image.Rectangle {
	return image.Rect(
		int(math.Round(r.MinX)), int(math.Round(r.MinY)),
		int(math.Round(r.MaxX)), int(math.Round(r.MaxY)),
	)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.MinX, r.MinY, r.MaxX, r.MaxY)
}
