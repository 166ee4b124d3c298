// Package utils 提供前端共用的工具函数（不依赖具体图形库）
package utils

import (
	"math"

	"github.com/decker502/fruitslice/pkg/components"
)

// LandmarkToCursor 把手部追踪器输出的归一化关键点转换为游戏区域坐标
//
// 追踪器以 [0, 1] 表示关键点在画面中的相对位置（食指指尖）。
// 摄像头画面通常需要镜像翻转后才符合玩家的左右直觉，mirror 为 true 时水平翻转。
// 超出 [0, 1] 的值按原样映射（指尖可能略微出画），坐标为 NaN 或无穷时视为没有检测到手。
//
// 参数:
//   - nx, ny: 归一化坐标
//   - width, height: 游戏区域尺寸
//   - mirror: 是否水平镜像
//
// 返回:
//   - components.Cursor: 转换后的光标
func LandmarkToCursor(nx, ny, width, height float64, mirror bool) components.Cursor {
	if !isFinite(nx) || !isFinite(ny) {
		return components.NoCursor()
	}
	if mirror {
		nx = 1 - nx
	}
	return components.CursorAt(nx*width, ny*height)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
