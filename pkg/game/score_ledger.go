package game

// ScoreLedger 存储一局游戏的得分和剩余生命
//
// 得分只增不减（无上限），生命只减不增且不会低于 0，
// 只有 Reset 能让两者回到初始值。
type ScoreLedger struct {
	score        int
	lives        int
	pointsPerHit int
}

// NewScoreLedger 创建计分板
//
// 参数：
//   - initialLives: 初始生命数
//   - pointsPerHit: 每次切中的得分（默认 1）
func NewScoreLedger(initialLives, pointsPerHit int) *ScoreLedger {
	l := &ScoreLedger{pointsPerHit: pointsPerHit}
	l.Reset(initialLives)
	return l
}

// RecordHit 记录一次切中，得分增加固定值
func (l *ScoreLedger) RecordHit() {
	l.score += l.pointsPerHit
}

// RecordMiss 记录一次漏掉，生命减 1
// 只有本次调用让生命恰好归零时返回 true，这是进入 GAME_OVER 的唯一信号。
// 生命已经为 0 时不再递减，返回 false。
func (l *ScoreLedger) RecordMiss() bool {
	if l.lives <= 0 {
		return false
	}
	l.lives--
	return l.lives == 0
}

// Reset 开始新的一局：得分清零，生命恢复为 initialLives
func (l *ScoreLedger) Reset(initialLives int) {
	if initialLives < 0 {
		initialLives = 0
	}
	l.score = 0
	l.lives = initialLives
}

// Score 返回当前得分
func (l *ScoreLedger) Score() int {
	return l.score
}

// Lives 返回剩余生命
func (l *ScoreLedger) Lives() int {
	return l.lives
}
