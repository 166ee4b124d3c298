package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/fruitslice/pkg/components"
	"github.com/decker502/fruitslice/pkg/config"
	"github.com/decker502/fruitslice/pkg/ecs"
	"github.com/decker502/fruitslice/pkg/systems"
)

// Clock 返回当前时间
// time.Now() 返回的 time.Time 自带单调时钟读数，两次采样相减不受系统时间调整影响
type Clock func() time.Time

// Option 状态机构造选项
type Option func(*GameStateMachine)

// WithClock 替换时钟（测试用）
func WithClock(clock Clock) Option {
	return func(m *GameStateMachine) {
		m.clock = clock
	}
}

// WithPlayArea 指定初始游戏区域，默认取配置中的窗口尺寸
func WithPlayArea(area components.PlayArea) Option {
	return func(m *GameStateMachine) {
		m.area = area
	}
}

// GameStateMachine 切水果玩法的顶层控制器
//
// 持有实体管理器、飞溅效果、计分板，解释每帧的指令和光标输入，
// 并按固定顺序编排一个 tick 内的更新。所有状态只在 Tick 路径上被修改，
// 不存在包级可变状态；同一时刻只能有一个 Tick 在执行。
type GameStateMachine struct {
	cfg   *config.GameConfig
	clock Clock
	area  components.PlayArea

	entities *ecs.EntityManager
	effects  *systems.EffectManager
	ledger   *ScoreLedger

	state     GameState
	enteredAt time.Time // 进入当前状态的时刻
	lastTick  time.Time // 最近一次 Tick 的时刻（快照据此计算剩余时间）

	round          int
	roundStartedAt time.Time // 本回合开始时刻（暂停时长会被顺延）
	pausedAt       time.Time

	cursor components.Cursor
}

// NewGameStateMachine 创建状态机，初始状态为 TITLE
//
// 参数:
//   - cfg: 玩法配置，构造时校验，非法时返回 *config.ConfigurationError
//   - rng: 随机数源（必须非 nil），由调用者播种以便确定性回放
//   - opts: 可选项（时钟、游戏区域）
//
// 返回:
//   - *GameStateMachine: 状态机实例
//   - error: 配置非法时返回错误，tick 过程中不会再产生错误
func NewGameStateMachine(cfg *config.GameConfig, rng *rand.Rand, opts ...Option) (*GameStateMachine, error) {
	if cfg == nil {
		return nil, &config.ConfigurationError{Field: "config", Reason: "must not be nil"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create game state machine: %w", err)
	}
	if rng == nil {
		return nil, &config.ConfigurationError{Field: "rng", Reason: "must not be nil"}
	}

	m := &GameStateMachine{
		cfg:   cfg,
		clock: time.Now,
		area: components.PlayArea{
			Width:  float64(cfg.Window.Width),
			Height: float64(cfg.Window.Height),
		},
		entities: ecs.NewEntityManager(rng, cfg.Spawn, cfg.Physics),
		effects:  systems.NewEffectManager(cfg.Effects.SplashLifetime),
		ledger:   NewScoreLedger(cfg.Session.InitialLives, cfg.Session.PointsPerHit),
		state:    StateTitle,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := validateArea(m.area); err != nil {
		return nil, err
	}

	now := m.clock()
	m.enteredAt = now
	m.lastTick = now

	log.Printf("[GameStateMachine] 初始化完成: 区域 %.0fx%.0f, 生命 %d",
		m.area.Width, m.area.Height, cfg.Session.InitialLives)
	return m, nil
}

// SetPlayArea 更新游戏区域（启动或窗口缩放时由帧源提供）
func (m *GameStateMachine) SetPlayArea(width, height float64) error {
	area := components.PlayArea{Width: width, Height: height}
	if err := validateArea(area); err != nil {
		return err
	}
	if area != m.area {
		log.Printf("[GameStateMachine] 游戏区域变更: %.0fx%.0f -> %.0fx%.0f",
			m.area.Width, m.area.Height, width, height)
	}
	m.area = area
	return nil
}

func validateArea(area components.PlayArea) error {
	if !(area.Width > 0) || !(area.Height > 0) {
		return &config.ConfigurationError{
			Field:  "playArea",
			Reason: fmt.Sprintf("size must be positive, got %vx%v", area.Width, area.Height),
		}
	}
	return nil
}

// Tick 推进一帧
//
// 处理顺序：
//  1. QUIT 直接返回 Quit=true，不修改任何状态
//  2. 处理指令（开始、暂停切换、重开）
//  3. 检查时间门限（倒计时结束、回合结束、结果展示结束）
//  4. 仅在 PLAYING 时执行模拟：生成 → 积分 → 碰撞 → 切中结算 → 剪枝 → 漏掉结算 → 飞溅衰减
//
// 参数:
//   - cursor: 本帧光标，可能不存在
//   - cmd: 本帧指令
//
// 返回:
//   - TickResult: 本帧切中/漏掉的水果ID和状态切换信息
func (m *GameStateMachine) Tick(cursor components.Cursor, cmd Command) TickResult {
	res := TickResult{From: m.state, To: m.state}
	if cmd == CommandQuit {
		log.Printf("[GameStateMachine] 收到退出指令 (状态: %s)", m.state)
		res.Quit = true
		return res
	}

	now := m.clock()
	m.lastTick = now
	m.cursor = cursor

	m.handleCommand(cmd, now)
	m.advanceTimers(now)

	if m.state == StatePlaying {
		m.simulate(now, &res)
	}

	res.To = m.state
	return res
}

// handleCommand 处理离散指令
func (m *GameStateMachine) handleCommand(cmd Command, now time.Time) {
	switch cmd {
	case CommandStart:
		if m.state == StateTitle {
			m.resetSession()
			m.enter(StateCountdown, now)
		}

	case CommandPause:
		switch m.state {
		case StatePlaying:
			m.pausedAt = now
			m.enter(StatePaused, now)
		case StatePaused:
			// 暂停期间不计入回合时长
			m.roundStartedAt = m.roundStartedAt.Add(now.Sub(m.pausedAt))
			m.enter(StatePlaying, now)
		}

	case CommandRestart:
		switch m.state {
		case StateGameOver, StatePlaying, StatePaused, StateResult:
			log.Printf("[GameStateMachine] 重新开始 (上一局得分: %d)", m.ledger.Score())
			m.resetSession()
			m.enter(StateCountdown, now)
		}
	}
}

// advanceTimers 处理基于经过时间的自动切换
func (m *GameStateMachine) advanceTimers(now time.Time) {
	switch m.state {
	case StateCountdown:
		if now.Sub(m.enteredAt) >= m.cfg.Timing.Countdown.Std() {
			m.round++
			m.roundStartedAt = now
			m.enter(StatePlaying, now)
		}

	case StatePlaying:
		round := m.cfg.Timing.Round.Std()
		if round > 0 && now.Sub(m.roundStartedAt) >= round {
			// 回合结束：剩余水果和飞溅直接丢弃，不扣生命
			m.entities.Clear()
			m.effects.Clear()
			m.enter(StateResult, now)
		}

	case StateResult:
		if now.Sub(m.enteredAt) >= m.cfg.Timing.ResultDisplay.Std() {
			m.enter(StateCountdown, now)
		}
	}
}

// simulate 执行一个 PLAYING tick 的完整编排
func (m *GameStateMachine) simulate(now time.Time, res *TickResult) {
	m.entities.TrySpawn(m.area)
	m.entities.Integrate()

	hits := systems.DetectHits(m.cursor, m.entities.Fruits(), m.cfg.Collision.HitRadius())
	for _, id := range hits {
		fruit, ok := m.entities.Get(id)
		if !ok || !m.entities.MarkSliced(id) {
			continue
		}
		m.ledger.RecordHit()
		m.effects.Spawn(fruit.Position)
	}

	gameOver := false
	for _, r := range m.entities.Prune(m.area) {
		switch r.Outcome {
		case components.OutcomeSliced:
			res.Sliced = append(res.Sliced, r.ID)
		case components.OutcomeMissed:
			res.Missed = append(res.Missed, r.ID)
			// GAME_OVER 之后本 tick 剩余的漏掉只移除，不再扣生命
			if !gameOver && m.ledger.RecordMiss() {
				gameOver = true
			}
		}
	}

	m.effects.Tick()

	if gameOver {
		log.Printf("[GameStateMachine] 生命耗尽，最终得分: %d", m.ledger.Score())
		m.enter(StateGameOver, now)
	}
}

// resetSession 开始新的一局：计分板复位，清空水果和飞溅
func (m *GameStateMachine) resetSession() {
	m.ledger.Reset(m.cfg.Session.InitialLives)
	m.entities.Clear()
	m.effects.Clear()
	m.round = 0
}

func (m *GameStateMachine) enter(state GameState, now time.Time) {
	log.Printf("[GameStateMachine] %s -> %s", m.state, state)
	m.state = state
	m.enteredAt = now
}

// State 返回当前状态
func (m *GameStateMachine) State() GameState {
	return m.state
}

// Score 返回当前得分
func (m *GameStateMachine) Score() int {
	return m.ledger.Score()
}

// Lives 返回剩余生命
func (m *GameStateMachine) Lives() int {
	return m.ledger.Lives()
}

// PlayArea 返回当前游戏区域
func (m *GameStateMachine) PlayArea() components.PlayArea {
	return m.area
}

// Config 返回构造时使用的配置
func (m *GameStateMachine) Config() *config.GameConfig {
	return m.cfg
}

// Snapshot 返回当前状态的只读投影，无副作用
func (m *GameStateMachine) Snapshot() Snapshot {
	return Snapshot{
		State:    m.state,
		Fruits:   m.entities.Fruits(),
		Splashes: m.effects.Splashes(),
		Score:    m.ledger.Score(),
		Lives:    m.ledger.Lives(),
		Round:    m.round,
		TimeLeft: m.timeLeft(),
		PlayArea: m.area,
		Cursor:   m.cursor,
	}
}

// timeLeft 以最近一次 Tick 的时刻计算计时状态的剩余时间
func (m *GameStateMachine) timeLeft() time.Duration {
	var left time.Duration
	switch m.state {
	case StateCountdown:
		left = m.cfg.Timing.Countdown.Std() - m.lastTick.Sub(m.enteredAt)
	case StateResult:
		left = m.cfg.Timing.ResultDisplay.Std() - m.lastTick.Sub(m.enteredAt)
	case StatePlaying:
		if round := m.cfg.Timing.Round.Std(); round > 0 {
			left = round - m.lastTick.Sub(m.roundStartedAt)
		}
	case StatePaused:
		if round := m.cfg.Timing.Round.Std(); round > 0 {
			left = round - m.pausedAt.Sub(m.roundStartedAt)
		}
	}
	if left < 0 {
		return 0
	}
	return left
}
