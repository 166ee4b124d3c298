package systems

import (
	"github.com/decker502/fruitslice/pkg/components"
	"github.com/decker502/fruitslice/pkg/ecs"
)

// DetectHits 检测光标与水果的碰撞
//
// 纯函数，不保存任何历史：只比较本帧光标位置与每个水果的当前位置，
// 两帧之间"穿过"水果但没有采样点落在判定圈内的情况不会被检测到。
//
// 参数:
//   - cursor: 本帧光标，Present 为 false 时直接返回空
//   - fruits: 当前水果种群（值拷贝）
//   - hitRadius: 判定距离（光标半径 + 水果半径），距离严格小于该值才算命中
//
// 返回:
//   - []ecs.EntityID: 所有命中的水果ID，按种群顺序排列；同一帧可以命中多个
func DetectHits(cursor components.Cursor, fruits []ecs.Fruit, hitRadius float64) []ecs.EntityID {
	if !cursor.Present {
		return nil
	}

	var hits []ecs.EntityID
	for _, f := range fruits {
		if cursor.DistanceTo(f.Position) < hitRadius {
			hits = append(hits, f.ID)
		}
	}
	return hits
}
