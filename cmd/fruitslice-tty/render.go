package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/fruitslice/pkg/components"
	"github.com/decker502/fruitslice/pkg/ecs"
	"github.com/decker502/fruitslice/pkg/game"
)

// 每个字符格对应的虚拟像素尺寸（字符格约为 1:2）
// 模拟仍以像素为单位运行，终端只是更粗的栅格
const (
	cellWidth  = 16.0
	cellHeight = 32.0
)

var (
	backgroundStyle = tcell.StyleDefault.Background(tcell.ColorBlack)
	hudStyle        = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	bannerStyle     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack).Bold(true)
	alertStyle      = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack).Bold(true)
	splashStyle     = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
	cursorStyle     = tcell.StyleDefault.Foreground(tcell.ColorAqua).Background(tcell.ColorBlack).Bold(true)

	fruitColors = []tcell.Color{
		tcell.ColorRed,
		tcell.ColorOrange,
		tcell.ColorLime,
		tcell.ColorYellow,
		tcell.ColorPurple,
	}
)

// playAreaFor 终端尺寸对应的游戏区域（虚拟像素）
func playAreaFor(cols, rows int) components.PlayArea {
	return components.PlayArea{Width: float64(cols) * cellWidth, Height: float64(rows) * cellHeight}
}

// cellToPoint 字符格中心的虚拟像素坐标
func cellToPoint(col, row int) components.Position {
	return components.Position{
		X: (float64(col) + 0.5) * cellWidth,
		Y: (float64(row) + 0.5) * cellHeight,
	}
}

// pointToCell 虚拟像素坐标所在的字符格
func pointToCell(p components.Position) (col, row int) {
	return floorDiv(p.X, cellWidth), floorDiv(p.Y, cellHeight)
}

func floorDiv(v, size float64) int {
	i := int(v / size)
	if v < 0 && float64(i)*size != v {
		i--
	}
	return i
}

// render 把快照绘制到终端
func render(screen tcell.Screen, snap game.Snapshot, fruitRadius float64) {
	screen.SetStyle(backgroundStyle)
	screen.Clear()
	cols, rows := screen.Size()

	for _, s := range snap.Splashes {
		drawDisk(screen, s.Position, fruitRadius, '*', splashStyle, cols, rows)
	}
	for _, f := range snap.Fruits {
		drawDisk(screen, f.Position, fruitRadius, '█', fruitStyle(f.ID), cols, rows)
	}
	if snap.Cursor.Present {
		col, row := pointToCell(snap.Cursor.Position)
		setCell(screen, col, row, '+', cursorStyle, cols, rows)
	}

	drawHUD(screen, snap, cols, rows)
	screen.Show()
}

func fruitStyle(id ecs.EntityID) tcell.Style {
	return tcell.StyleDefault.Foreground(fruitColors[int(uint64(id)%uint64(len(fruitColors)))]).Background(tcell.ColorBlack)
}

// drawDisk 填充圆心距离不超过半径的字符格
func drawDisk(screen tcell.Screen, center components.Position, radius float64, ch rune, style tcell.Style, cols, rows int) {
	minCol, minRow := pointToCell(components.Position{X: center.X - radius, Y: center.Y - radius})
	maxCol, maxRow := pointToCell(components.Position{X: center.X + radius, Y: center.Y + radius})

	drawn := false
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if cellToPoint(col, row).DistanceTo(center) <= radius {
				setCell(screen, col, row, ch, style, cols, rows)
				drawn = true
			}
		}
	}
	// 半径小于一个字符格时至少画出圆心
	if !drawn {
		col, row := pointToCell(center)
		setCell(screen, col, row, ch, style, cols, rows)
	}
}

func setCell(screen tcell.Screen, col, row int, ch rune, style tcell.Style, cols, rows int) {
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	screen.SetContent(col, row, ch, nil, style)
}

func drawString(screen tcell.Screen, col, row int, s string, style tcell.Style, cols, rows int) {
	for i, r := range []rune(s) {
		setCell(screen, col+i, row, r, style, cols, rows)
	}
}

func drawCentered(screen tcell.Screen, row int, s string, style tcell.Style, cols, rows int) {
	drawString(screen, (cols-len([]rune(s)))/2, row, s, style, cols, rows)
}

func drawHUD(screen tcell.Screen, snap game.Snapshot, cols, rows int) {
	if snap.State != game.StateTitle {
		status := fmt.Sprintf("Score: %d  Lives: %d", snap.Score, snap.Lives)
		if snap.State == game.StatePlaying && snap.TimeLeft > 0 {
			status += fmt.Sprintf("  Time: %.0fs", snap.TimeLeft.Seconds())
		}
		drawString(screen, 1, 0, status, hudStyle, cols, rows)
		drawString(screen, 1, rows-1, "P: Pause R: Restart Q: Quit", hudStyle, cols, rows)
	}

	mid := rows / 2
	switch snap.State {
	case game.StateTitle:
		drawCentered(screen, mid-1, "FRUIT SLICE", bannerStyle, cols, rows)
		drawCentered(screen, mid+1, "S: Start  Q: Quit  (drag with the mouse to slice)", hudStyle, cols, rows)
	case game.StateCountdown:
		drawCentered(screen, mid, fmt.Sprintf("%d", int(math.Ceil(snap.TimeLeft.Seconds()))), bannerStyle, cols, rows)
	case game.StatePaused:
		drawCentered(screen, mid, "PAUSED", bannerStyle, cols, rows)
	case game.StateResult:
		drawCentered(screen, mid-1, fmt.Sprintf("Round %d Over", snap.Round), bannerStyle, cols, rows)
		drawCentered(screen, mid+1, fmt.Sprintf("Score: %d", snap.Score), hudStyle, cols, rows)
	case game.StateGameOver:
		drawCentered(screen, mid-1, "Game Over!", alertStyle, cols, rows)
		drawCentered(screen, mid+1, fmt.Sprintf("Final Score: %d", snap.Score), hudStyle, cols, rows)
		drawCentered(screen, mid+2, "R: Restart | Q: Quit", hudStyle, cols, rows)
	}
}
