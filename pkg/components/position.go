package components

import "math"

// Position 二维坐标（游戏区域坐标系，y 轴向下增长）
type Position struct {
	X float64
	Y float64
}

// DistanceTo 返回两点间的欧氏距离
func (p Position) DistanceTo(q Position) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Velocity 每 tick 的位移量
type Velocity struct {
	VX float64 // 水平速度（像素/tick）
	VY float64 // 垂直速度（像素/tick），负值向上
}

// PlayArea 游戏区域尺寸，由外部帧源在启动或窗口缩放时提供
type PlayArea struct {
	Width  float64
	Height float64
}
