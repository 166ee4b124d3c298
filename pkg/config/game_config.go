package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// GameConfig 切水果玩法的全部常量配置
//
// 所有数值在构造时固定，运行期间不支持动态修改。
// 数值单位均为"每 tick"（模拟与外部帧源一一对应，而非按秒缩放）。
//
// 配置文件位置: data/fruit_slice.yaml
type GameConfig struct {
	// Spawn 水果生成参数
	Spawn SpawnConfig `yaml:"spawn"`

	// Physics 运动积分参数
	Physics PhysicsConfig `yaml:"physics"`

	// Collision 命中判定半径
	Collision CollisionConfig `yaml:"collision"`

	// Effects 视觉反馈（果汁飞溅）参数
	Effects EffectsConfig `yaml:"effects"`

	// Timing 状态机时间门限
	Timing TimingConfig `yaml:"timing"`

	// Session 单局参数（生命、得分）
	Session SessionConfig `yaml:"session"`

	// Window 游戏区域与帧率
	Window WindowConfig `yaml:"window"`
}

// SpawnConfig 水果生成配置
//
// 每个 tick 做一次伯努利试验，成功概率为 Probability，每 tick 至多生成一个水果。
type SpawnConfig struct {
	// Probability 每 tick 生成概率，范围 [0, 1]
	Probability float64 `yaml:"probability"`

	// MarginX 生成点距左右边缘的最小距离（像素）
	MarginX float64 `yaml:"marginX"`

	// VelocityX 初始水平速度范围（像素/tick）
	VelocityX Range `yaml:"velocityX"`

	// VelocityY 初始垂直速度范围（像素/tick，负值向上）
	VelocityY Range `yaml:"velocityY"`
}

// Range 闭区间 [Min, Max]，在此范围内均匀随机取值
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// PhysicsConfig 运动积分配置
type PhysicsConfig struct {
	// Gravity 每 tick 叠加到 vy 上的重力加速度
	Gravity float64 `yaml:"gravity"`

	// OverflowMargin 底边之下的缓冲距离，y >= 高度 + 缓冲 时判定为漏掉
	OverflowMargin float64 `yaml:"overflowMargin"`
}

// CollisionConfig 命中判定配置
type CollisionConfig struct {
	FruitRadius  float64 `yaml:"fruitRadius"`  // 水果半径
	CursorRadius float64 `yaml:"cursorRadius"` // 光标（指尖）代理半径
}

// HitRadius 返回命中判定距离：光标半径 + 水果半径
func (c CollisionConfig) HitRadius() float64 {
	return c.CursorRadius + c.FruitRadius
}

// EffectsConfig 飞溅效果配置
type EffectsConfig struct {
	// SplashLifetime 飞溅持续的 tick 数
	SplashLifetime int `yaml:"splashLifetime"`
}

// TimingConfig 状态机计时配置
type TimingConfig struct {
	// Countdown 倒计时时长（COUNTDOWN -> PLAYING）
	Countdown Duration `yaml:"countdown"`

	// ResultDisplay 回合结果展示时长（RESULT -> COUNTDOWN）
	ResultDisplay Duration `yaml:"resultDisplay"`

	// Round 回合时长，0 表示无限回合（不进入 RESULT）
	Round Duration `yaml:"round"`
}

// SessionConfig 单局配置
type SessionConfig struct {
	InitialLives int `yaml:"initialLives"` // 初始生命数
	PointsPerHit int `yaml:"pointsPerHit"` // 每次切中得分
}

// WindowConfig 游戏区域与帧率配置
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// TPS 每秒 tick 数，对应外部视频源帧率
	TPS int `yaml:"tps"`
}

// Duration 支持 YAML 中 "3s"、"1500ms" 形式的时长，纯数字按秒解析
type Duration time.Duration

// UnmarshalYAML 实现 yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode duration: %w", err)
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	var seconds float64
	if err := value.Decode(&seconds); err != nil {
		return fmt.Errorf("invalid duration %q", raw)
	}
	*d = Duration(seconds * float64(time.Second))
	return nil
}

// MarshalYAML 实现 yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std 返回标准库 time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// DefaultGameConfig 返回默认配置（30 TPS 下手感合适的一组参数）
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Spawn: SpawnConfig{
			Probability: 0.05,
			MarginX:     50,
			VelocityX:   Range{Min: -3, Max: 3},
			VelocityY:   Range{Min: -18, Max: -12},
		},
		Physics: PhysicsConfig{
			Gravity:        0.4,
			OverflowMargin: 50,
		},
		Collision: CollisionConfig{
			FruitRadius:  40,
			CursorRadius: 25,
		},
		Effects: EffectsConfig{
			SplashLifetime: 15,
		},
		Timing: TimingConfig{
			Countdown:     Duration(3 * time.Second),
			ResultDisplay: Duration(3 * time.Second),
			Round:         0,
		},
		Session: SessionConfig{
			InitialLives: 3,
			PointsPerHit: 1,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			TPS:    30,
		},
	}
}

// LoadGameConfig 加载切水果配置
//
// 从指定路径加载 YAML 配置文件，未出现的键保留默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/fruit_slice.yaml"）
//
// 返回:
//   - *GameConfig: 加载并验证成功后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 从 YAML 字节解析配置（用于嵌入的默认配置文件）
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查项：
//   - 生成概率位于 [0, 1]
//   - 速度范围 Min <= Max
//   - 重力为正（水果最终必须落出画面）
//   - 半径、缓冲距离非负
//   - 飞溅寿命、初始生命、每次得分为正
//   - 时长非负，窗口尺寸与 TPS 为正
//
// 返回:
//   - error: 第一个不合法的字段，类型为 *ConfigurationError；全部合法返回 nil
func (c *GameConfig) Validate() error {
	if !isFinite(c.Spawn.Probability) || c.Spawn.Probability < 0 || c.Spawn.Probability > 1 {
		return invalid("spawn.probability", "must be within [0, 1], got %v", c.Spawn.Probability)
	}
	if !isFinite(c.Spawn.MarginX) || c.Spawn.MarginX < 0 {
		return invalid("spawn.marginX", "must be >= 0, got %v", c.Spawn.MarginX)
	}
	if err := c.Spawn.VelocityX.validate("spawn.velocityX"); err != nil {
		return err
	}
	if err := c.Spawn.VelocityY.validate("spawn.velocityY"); err != nil {
		return err
	}

	if !isFinite(c.Physics.Gravity) || c.Physics.Gravity <= 0 {
		return invalid("physics.gravity", "must be > 0, got %v", c.Physics.Gravity)
	}
	if !isFinite(c.Physics.OverflowMargin) || c.Physics.OverflowMargin < 0 {
		return invalid("physics.overflowMargin", "must be >= 0, got %v", c.Physics.OverflowMargin)
	}

	if !isFinite(c.Collision.FruitRadius) || c.Collision.FruitRadius < 0 {
		return invalid("collision.fruitRadius", "must be >= 0, got %v", c.Collision.FruitRadius)
	}
	if !isFinite(c.Collision.CursorRadius) || c.Collision.CursorRadius < 0 {
		return invalid("collision.cursorRadius", "must be >= 0, got %v", c.Collision.CursorRadius)
	}

	if c.Effects.SplashLifetime <= 0 {
		return invalid("effects.splashLifetime", "must be > 0, got %d", c.Effects.SplashLifetime)
	}

	if c.Timing.Countdown < 0 {
		return invalid("timing.countdown", "must be >= 0, got %s", c.Timing.Countdown.Std())
	}
	if c.Timing.ResultDisplay < 0 {
		return invalid("timing.resultDisplay", "must be >= 0, got %s", c.Timing.ResultDisplay.Std())
	}
	if c.Timing.Round < 0 {
		return invalid("timing.round", "must be >= 0, got %s", c.Timing.Round.Std())
	}

	if c.Session.InitialLives <= 0 {
		return invalid("session.initialLives", "must be > 0, got %d", c.Session.InitialLives)
	}
	if c.Session.PointsPerHit <= 0 {
		return invalid("session.pointsPerHit", "must be > 0, got %d", c.Session.PointsPerHit)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window", "size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return invalid("window.tps", "must be > 0, got %d", c.Window.TPS)
	}

	return nil
}

func (r Range) validate(field string) error {
	if !isFinite(r.Min) || !isFinite(r.Max) {
		return invalid(field, "must be finite, got [%v, %v]", r.Min, r.Max)
	}
	if r.Min > r.Max {
		return invalid(field, "range invalid: min(%.1f) > max(%.1f)", r.Min, r.Max)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
