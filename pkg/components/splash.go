package components

// Splash 切中水果后的短暂飞溅效果
// 位置在命中时从水果复制，Remaining 每 tick 减 1，归零时移除
type Splash struct {
	Position
	Remaining int // 剩余 tick 数
}
