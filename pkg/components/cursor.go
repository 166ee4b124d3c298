package components

// Cursor 当前帧的输入点（指尖 / 鼠标 / 触摸）
//
// Present 为 false 表示本帧没有跟踪到输入点，此时不可能产生命中。
// 没有输入点不是错误，而是合法的输入值。
type Cursor struct {
	Position
	Present bool
}

// NoCursor 返回"本帧无输入点"
func NoCursor() Cursor {
	return Cursor{}
}

// CursorAt 返回位于 (x, y) 的输入点
func CursorAt(x, y float64) Cursor {
	return Cursor{Position: Position{X: x, Y: y}, Present: true}
}
