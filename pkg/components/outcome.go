package components

// Outcome 水果被移除的原因
type Outcome int

const (
	// OutcomeSliced 本 tick 被光标切中
	OutcomeSliced Outcome = iota
	// OutcomeMissed 未被切中且落出游戏区域
	OutcomeMissed
)

// String 返回可读名称（用于日志）
func (o Outcome) String() string {
	switch o {
	case OutcomeSliced:
		return "sliced"
	case OutcomeMissed:
		return "missed"
	default:
		return "unknown"
	}
}
