package ecs

import (
	"math/rand"

	"github.com/decker502/fruitslice/pkg/components"
	"github.com/decker502/fruitslice/pkg/config"
)

// EntityID 是水果实体的唯一标识符
// 单调递增分配，永不复用（重开一局也不重置）
type EntityID uint64

// Fruit 一个飞行中的水果
type Fruit struct {
	ID EntityID
	components.Position
	components.Velocity
}

// Removal Prune 报告的一次移除
type Removal struct {
	ID       EntityID
	Outcome  components.Outcome
	Position components.Position // 移除时的最后位置
}

// EntityManager 管理所有活动中的水果
//
// 删除分两个阶段：MarkSliced 只做标记，Prune 统一压缩存活列表。
// 这样同一 tick 内 ID 保持稳定，碰撞检测看到的是完整的种群。
type EntityManager struct {
	nextID uint64
	rng    *rand.Rand

	spawn   config.SpawnConfig
	physics config.PhysicsConfig

	// 活动水果，保持生成顺序
	fruits []Fruit
	// 本 tick 被切中、待 Prune 移除的实体ID
	sliced map[EntityID]struct{}
}

// NewEntityManager 创建一个新的 EntityManager 实例
//
// 参数:
//   - rng: 随机数源，由调用者持有并播种，便于确定性回放
//   - spawn: 生成参数
//   - physics: 重力与出界缓冲
func NewEntityManager(rng *rand.Rand, spawn config.SpawnConfig, physics config.PhysicsConfig) *EntityManager {
	return &EntityManager{
		nextID:  1, // ID从1开始,0保留为无效ID
		rng:     rng,
		spawn:   spawn,
		physics: physics,
		fruits:  make([]Fruit, 0, 16),
		sliced:  make(map[EntityID]struct{}),
	}
}

// TrySpawn 每 tick 调用一次的伯努利试验
// 以 spawn.Probability 的概率生成一个水果，每 tick 至多一个
func (em *EntityManager) TrySpawn(area components.PlayArea) (EntityID, bool) {
	if em.rng.Float64() >= em.spawn.Probability {
		return 0, false
	}
	return em.Spawn(area), true
}

// Spawn 在游戏区域底边随机位置生成一个水果并返回其ID
//
// 水平位置在 [MarginX, Width-MarginX] 内均匀分布（区域过窄时取中点），
// 垂直位置为底边 y = Height，初速度在配置范围内均匀分布。
func (em *EntityManager) Spawn(area components.PlayArea) EntityID {
	minX := em.spawn.MarginX
	maxX := area.Width - em.spawn.MarginX
	var x float64
	if maxX < minX {
		x = area.Width / 2
	} else {
		x = em.uniform(minX, maxX)
	}

	vx := em.uniform(em.spawn.VelocityX.Min, em.spawn.VelocityX.Max)
	vy := em.uniform(em.spawn.VelocityY.Min, em.spawn.VelocityY.Max)

	return em.SpawnAt(
		components.Position{X: x, Y: area.Height},
		components.Velocity{VX: vx, VY: vy},
	)
}

// SpawnAt 在指定位置以指定速度生成水果
func (em *EntityManager) SpawnAt(pos components.Position, vel components.Velocity) EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.fruits = append(em.fruits, Fruit{ID: id, Position: pos, Velocity: vel})
	return id
}

// Integrate 对所有水果做一步显式欧拉积分
// 位置先按当前速度前进，然后 vy 叠加重力；单位均为每 tick
func (em *EntityManager) Integrate() {
	for i := range em.fruits {
		f := &em.fruits[i]
		f.X += f.VX
		f.Y += f.VY
		f.VY += em.physics.Gravity
	}
}

// MarkSliced 标记水果本 tick 被切中（不立即删除）
// 返回 false 表示该ID不在活动集合中
func (em *EntityManager) MarkSliced(id EntityID) bool {
	if _, ok := em.index(id); !ok {
		return false
	}
	em.sliced[id] = struct{}{}
	return true
}

// Prune 移除被切中或出界的水果并报告结果
//
// 每个水果至多报告一次；已标记切中的水果即使出界也只报告 sliced。
// 存活水果保持原有相对顺序和ID。
//
// 参数:
//   - area: 当前游戏区域，出界判定为 y >= Height + OverflowMargin
//
// 返回:
//   - []Removal: 按种群顺序排列的移除记录
func (em *EntityManager) Prune(area components.PlayArea) []Removal {
	bound := area.Height + em.physics.OverflowMargin

	var removals []Removal
	kept := em.fruits[:0]
	for _, f := range em.fruits {
		if _, ok := em.sliced[f.ID]; ok {
			removals = append(removals, Removal{ID: f.ID, Outcome: components.OutcomeSliced, Position: f.Position})
			continue
		}
		if f.Y >= bound {
			removals = append(removals, Removal{ID: f.ID, Outcome: components.OutcomeMissed, Position: f.Position})
			continue
		}
		kept = append(kept, f)
	}
	em.fruits = kept
	clear(em.sliced)

	return removals
}

// Get 返回指定水果的副本
func (em *EntityManager) Get(id EntityID) (Fruit, bool) {
	i, ok := em.index(id)
	if !ok {
		return Fruit{}, false
	}
	return em.fruits[i], true
}

// Fruits 返回所有活动水果的副本（按生成顺序）
func (em *EntityManager) Fruits() []Fruit {
	out := make([]Fruit, len(em.fruits))
	copy(out, em.fruits)
	return out
}

// Count 返回活动水果数量
func (em *EntityManager) Count() int {
	return len(em.fruits)
}

// Clear 清空所有水果（重开一局时调用）
// ID 计数器不重置，已分配的ID永不复用
func (em *EntityManager) Clear() {
	em.fruits = em.fruits[:0]
	clear(em.sliced)
}

func (em *EntityManager) index(id EntityID) (int, bool) {
	for i := range em.fruits {
		if em.fruits[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (em *EntityManager) uniform(lo, hi float64) float64 {
	return lo + em.rng.Float64()*(hi-lo)
}
