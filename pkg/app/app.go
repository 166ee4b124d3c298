// Package app 提供桌面端（Ebitengine）的切水果前端
//
// App 实现 ebiten.Game：每次 Update 读取键盘指令和指针光标并推进一个 tick，
// Draw 只读取快照进行绘制。Ebitengine 的 TPS 就是模拟的帧源。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/fruitslice/pkg/config"
	"github.com/decker502/fruitslice/pkg/game"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 玩法配置文件路径（为空时使用内置默认配置）
	ConfigPath string
	// Seed 随机种子，相同种子和输入得到相同的水果序列
	Seed int64
	// Mute 关闭音效
	Mute bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	machine  *game.GameStateMachine
	renderer *Renderer
	hud      *HUD
	audio    *AudioManager

	windowWidth              int
	windowHeight             int
	tps                      int
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}

	machine, err := game.NewGameStateMachine(gameCfg, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	log.Printf("[App] 随机种子: %d", cfg.Seed)

	a := &App{
		machine:      machine,
		renderer:     NewRenderer(gameCfg),
		hud:          NewHUD(),
		windowWidth:  gameCfg.Window.Width,
		windowHeight: gameCfg.Window.Height,
		tps:          gameCfg.Window.TPS,
	}
	if !cfg.Mute {
		a.audio = NewAudioManager(audio.NewContext(sampleRate), 0.5)
		log.Printf("[App] AudioManager initialized")
	}
	return a, nil
}

// Update 推进一个 tick
// 每秒调用次数由 ebiten.SetTPS 决定（配置 window.tps）
func (a *App) Update() error {
	a.handleFullscreen()

	cmd := pollCommand(a.machine.State())
	res := a.machine.Tick(PointerCursor(), cmd)
	if res.Quit {
		return ebiten.Termination
	}
	a.playFeedback(res)
	return nil
}

// handleFullscreen F11 切换全屏
func (a *App) handleFullscreen() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.windowWidth, a.windowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.windowWidth, a.windowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
}

// playFeedback 根据本 tick 的结果播放音效
func (a *App) playFeedback(res game.TickResult) {
	if res.Changed() && res.To == game.StateGameOver {
		a.audio.PlaySound(SoundGameOver)
		return
	}
	if len(res.Sliced) > 0 {
		a.audio.PlaySound(SoundSlice)
	}
	if len(res.Missed) > 0 {
		a.audio.PlaySound(SoundMiss)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	snap := a.machine.Snapshot()
	a.renderer.Draw(screen, snap)
	a.hud.Draw(screen, snap)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸跟随窗口，游戏区域随之变化
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return a.windowWidth, a.windowHeight
	}
	if err := a.machine.SetPlayArea(float64(outsideWidth), float64(outsideHeight)); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	return outsideWidth, outsideHeight
}

// TPS 返回配置的每秒 tick 数
func (a *App) TPS() int {
	return a.tps
}

// Run 设置窗口并运行游戏循环，直到窗口关闭或收到退出指令
func Run(a *App, title string, fullscreen bool) error {
	ebiten.SetWindowSize(a.windowWidth, a.windowHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(a.tps)
	ebiten.SetFullscreen(fullscreen)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("game loop failed: %w", err)
	}
	log.Printf("[App] 退出，最终得分: %d", a.machine.Score())
	return nil
}
