package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/fruitslice/pkg/game"
)

// keyBinding 按键到指令的映射
type keyBinding struct {
	key     ebiten.Key
	command game.Command
}

// keyBindings 按优先级排列：同一帧多个键按下时取排在前面的指令
var keyBindings = []keyBinding{
	{ebiten.KeyQ, game.CommandQuit},
	{ebiten.KeyEscape, game.CommandQuit},
	{ebiten.KeyR, game.CommandRestart},
	{ebiten.KeyP, game.CommandPause},
	{ebiten.KeySpace, game.CommandPause},
	{ebiten.KeyS, game.CommandStart},
	{ebiten.KeyEnter, game.CommandStart},
}

// CommandForKeys 根据本帧刚按下的键返回指令
//
// 参数:
//   - justPressed: 判断某个键是否在本帧刚按下（运行时为 inpututil.IsKeyJustPressed）
//
// 返回:
//   - game.Command: 没有绑定键按下时为 CommandNone
func CommandForKeys(justPressed func(ebiten.Key) bool) game.Command {
	for _, b := range keyBindings {
		if justPressed(b.key) {
			return b.command
		}
	}
	return game.CommandNone
}

// pollCommand 读取本帧指令
// 标题画面上点击或触摸也视为开始
func pollCommand(state game.GameState) game.Command {
	if cmd := CommandForKeys(inpututil.IsKeyJustPressed); cmd != game.CommandNone {
		return cmd
	}
	if state == game.StateTitle {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
			len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
			return game.CommandStart
		}
	}
	return game.CommandNone
}
