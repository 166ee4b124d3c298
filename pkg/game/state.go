package game

// GameState 游戏状态机的状态
type GameState int

const (
	// StateTitle 标题画面，等待开始指令
	StateTitle GameState = iota
	// StateCountdown 开局倒计时
	StateCountdown
	// StatePlaying 游戏进行中，唯一会生成/移动水果和计分的状态
	StatePlaying
	// StatePaused 暂停，水果、飞溅、得分全部冻结
	StatePaused
	// StateResult 回合结束，展示本回合结果
	StateResult
	// StateGameOver 生命耗尽，等待重开或退出
	StateGameOver
)

// String 返回状态名称（用于日志和 HUD）
func (s GameState) String() string {
	switch s {
	case StateTitle:
		return "TITLE"
	case StateCountdown:
		return "COUNTDOWN"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateResult:
		return "RESULT"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Command 每帧由外部输入轮询得到的离散指令
type Command int

const (
	CommandNone Command = iota
	CommandPause
	CommandRestart
	CommandStart
	CommandQuit
)

// String 返回指令名称
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "NONE"
	case CommandPause:
		return "PAUSE"
	case CommandRestart:
		return "RESTART"
	case CommandStart:
		return "START"
	case CommandQuit:
		return "QUIT"
	default:
		return "UNKNOWN"
	}
}
