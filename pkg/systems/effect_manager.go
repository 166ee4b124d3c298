package systems

import (
	"github.com/decker502/fruitslice/pkg/components"
)

// EffectManager 管理切中水果后的飞溅效果
//
// 生命周期以 tick 计数：本 tick 内 Spawn 的飞溅先进入 pending，
// 不参与当次 Tick 的衰减，Tick 结束时才并入活动列表。
// 因此寿命为 L 的飞溅恰好出现在 L 个连续快照中。
type EffectManager struct {
	lifetime int

	active  []components.Splash
	pending []components.Splash
}

// NewEffectManager 创建飞溅效果管理器
//
// 参数:
//   - lifetime: 每个飞溅持续的 tick 数（由配置校验保证为正）
func NewEffectManager(lifetime int) *EffectManager {
	return &EffectManager{
		lifetime: lifetime,
		active:   make([]components.Splash, 0, 8),
		pending:  make([]components.Splash, 0, 4),
	}
}

// Spawn 在指定位置添加一个飞溅
func (m *EffectManager) Spawn(pos components.Position) {
	m.pending = append(m.pending, components.Splash{Position: pos, Remaining: m.lifetime})
}

// Tick 推进一个 tick
// 每个活动飞溅剩余寿命减 1，归零的立即移除；随后接收本 tick 新生成的飞溅。
// 只应在 PLAYING 状态下调用，暂停时飞溅随画面一起冻结。
func (m *EffectManager) Tick() {
	kept := m.active[:0]
	for _, s := range m.active {
		s.Remaining--
		if s.Remaining > 0 {
			kept = append(kept, s)
		}
	}
	m.active = append(kept, m.pending...)
	m.pending = m.pending[:0]
}

// Splashes 返回所有飞溅的副本（包括本 tick 新生成的）
func (m *EffectManager) Splashes() []components.Splash {
	out := make([]components.Splash, 0, len(m.active)+len(m.pending))
	out = append(out, m.active...)
	out = append(out, m.pending...)
	return out
}

// Count 返回飞溅数量
func (m *EffectManager) Count() int {
	return len(m.active) + len(m.pending)
}

// Clear 清空所有飞溅
func (m *EffectManager) Clear() {
	m.active = m.active[:0]
	m.pending = m.pending[:0]
}
