package game

import (
	"time"

	"github.com/decker502/fruitslice/pkg/components"
	"github.com/decker502/fruitslice/pkg/ecs"
)

// Snapshot 渲染用的只读状态投影
// 所有切片都是副本，渲染器可以随意持有
type Snapshot struct {
	State    GameState
	Fruits   []ecs.Fruit
	Splashes []components.Splash

	Score int
	Lives int
	Round int // 当前回合（从 1 开始，未开局为 0）

	// TimeLeft 计时状态的剩余时间：
	// COUNTDOWN 为倒计时剩余，RESULT 为结果展示剩余，
	// 回合模式下 PLAYING/PAUSED 为本回合剩余，其余情况为 0
	TimeLeft time.Duration

	PlayArea components.PlayArea
	Cursor   components.Cursor // 最近一次 Tick 收到的光标
}

// TickResult 单次 Tick 的结果，供前端触发音效等反馈
type TickResult struct {
	Sliced []ecs.EntityID // 本 tick 被切中的水果
	Missed []ecs.EntityID // 本 tick 漏掉的水果

	// Quit 收到退出指令，驱动方应停止调用 Tick
	Quit bool

	From GameState // Tick 开始时的状态
	To   GameState // Tick 结束时的状态
}

// Changed 返回本 tick 是否发生了状态切换
func (r TickResult) Changed() bool {
	return r.From != r.To
}
