// fruitslice-tty 终端版切水果
//
// 按住鼠标左键拖动即为手指光标。固定频率的帧定时器充当帧源，每帧调用一次 Tick。
// 指定 --landmarks 时改由手部追踪器驱动光标：每行 "nx ny" 为归一化的指尖坐标，
// "-" 表示没有检测到手。
//
// 用法:
//
//	go run ./cmd/fruitslice-tty [--config path] [--seed n] [--verbose] [--mute]
//	hand-tracker | go run ./cmd/fruitslice-tty --landmarks - --mirror
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/fruitslice/pkg/components"
	"github.com/decker502/fruitslice/pkg/config"
	"github.com/decker502/fruitslice/pkg/game"
)

var (
	configPath = flag.String("config", "", "玩法配置文件路径（为空使用内置配置）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	verbose    = flag.Bool("verbose", false, "把详细日志写入 fruitslice-tty.log")
	mute       = flag.Bool("mute", false, "关闭音效")
	landmarks  = flag.String("landmarks", "", "手部关键点输入（文件或管道路径，\"-\" 为标准输入）")
	mirror     = flag.Bool("mirror", false, "关键点水平镜像")
)

func main() {
	flag.Parse()

	if err := setupLogging(*verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging 终端被 tcell 接管，日志只能写文件
func setupLogging(enabled bool) error {
	if !enabled {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile("fruitslice-tty.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	return nil
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	log.Printf("[Main] 随机种子: %d", s)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	machine, err := game.NewGameStateMachine(cfg, rand.New(rand.NewSource(s)),
		game.WithPlayArea(playAreaFor(screen.Size())))
	if err != nil {
		return err
	}

	sound := newSoundPlayer(*mute)
	defer sound.close()

	loop := &frameLoop{
		screen:  screen,
		machine: machine,
		sound:   sound,
		cursor:  components.NoCursor(),
		hand:    noHand,
		mirror:  *mirror,
	}

	if *landmarks != "" {
		src, err := openLandmarks(*landmarks)
		if err != nil {
			return err
		}
		defer src.Close()

		hands := make(chan landmark, 16)
		go readLandmarks(src, hands)
		loop.hands = hands
		log.Printf("[Main] 使用手部关键点输入: %s", *landmarks)
	}
	loop.run(time.Second / time.Duration(cfg.Window.TPS))

	log.Printf("[Main] 退出，最终得分: %d", machine.Score())
	return nil
}

// openLandmarks 打开关键点输入，"-" 为标准输入
// tcell 从 /dev/tty 读取按键，标准输入可以留给追踪器的管道
func openLandmarks(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open landmarks: %w", err)
	}
	return f, nil
}

// frameLoop 把终端事件汇总成每帧的光标和指令
type frameLoop struct {
	screen  tcell.Screen
	machine *game.GameStateMachine
	sound   *soundPlayer

	cursor  components.Cursor
	pending game.Command

	// hands 为 nil 时光标来自鼠标
	hands  <-chan landmark
	hand   landmark
	mirror bool
}

func (l *frameLoop) run(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := l.screen.PollEvent()
			if ev == nil {
				// Fini 之后 PollEvent 返回 nil
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			l.handleEvent(ev)

		case lm, ok := <-l.hands:
			l.handleLandmark(lm, ok)

		case <-ticker.C:
			cmd := l.pending
			l.pending = game.CommandNone

			res := l.machine.Tick(l.frameCursor(), cmd)
			if res.Quit {
				return
			}
			l.sound.feedback(res)
			render(l.screen, l.machine.Snapshot(), l.machine.Config().Collision.FruitRadius)
		}
	}
}

func (l *frameLoop) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		l.queue(keyCommand(ev.Key(), ev.Rune()))

	case *tcell.EventMouse:
		col, row := ev.Position()
		l.cursor = mouseCursor(ev.Buttons(), col, row)

	case *tcell.EventResize:
		l.screen.Sync()
		area := playAreaFor(l.screen.Size())
		if err := l.machine.SetPlayArea(area.Width, area.Height); err != nil {
			log.Printf("[Main] Warning: %v", err)
		}
	}
}

// handleLandmark 保存最新的关键点；输入结束后退回鼠标
func (l *frameLoop) handleLandmark(lm landmark, ok bool) {
	if !ok {
		log.Printf("[Main] 关键点输入结束，改用鼠标")
		l.hands = nil
		l.hand = noHand
		return
	}
	l.hand = lm
}

// frameCursor 本帧的光标
func (l *frameLoop) frameCursor() components.Cursor {
	if l.hands == nil {
		return l.cursor
	}
	return l.hand.cursor(l.machine.PlayArea(), l.mirror)
}

// queue 记录两帧之间的指令，退出指令不会被后续按键覆盖
func (l *frameLoop) queue(cmd game.Command) {
	if cmd == game.CommandNone || l.pending == game.CommandQuit {
		return
	}
	l.pending = cmd
}

// keyCommand 按键到指令的映射
func keyCommand(key tcell.Key, r rune) game.Command {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.CommandQuit
	case tcell.KeyEnter:
		return game.CommandStart
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return game.CommandQuit
		case 'r', 'R':
			return game.CommandRestart
		case 'p', 'P', ' ':
			return game.CommandPause
		case 's', 'S':
			return game.CommandStart
		}
	}
	return game.CommandNone
}

// mouseCursor 左键按住时光标位于字符格中心，否则不存在
func mouseCursor(buttons tcell.ButtonMask, col, row int) components.Cursor {
	if buttons&tcell.Button1 == 0 {
		return components.NoCursor()
	}
	p := cellToPoint(col, row)
	return components.CursorAt(p.X, p.Y)
}
