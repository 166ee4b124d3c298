package app

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fruitslice/pkg/components"
)

// PointerCursor 读取本帧的指针（触摸优先，其次鼠标左键）并转换为光标
// 只有按住时光标才存在，松开后视为手指离开画面
func PointerCursor() components.Cursor {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return CursorFromPointer(true, x, y)
	}

	x, y := ebiten.CursorPosition()
	return CursorFromPointer(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y)
}

// CursorFromPointer 将指针状态转换为光标
//
// 参数:
//   - pressed: 指针是否按下
//   - x, y: 指针位置（逻辑屏幕坐标）
func CursorFromPointer(pressed bool, x, y int) components.Cursor {
	if !pressed {
		return components.NoCursor()
	}
	return components.CursorAt(float64(x), float64(y))
}
