package app

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/fruitslice/pkg/game"
)

const (
	hudMargin       = 20.0
	hudScale        = 2.0
	bannerScale     = 5.0
	lineSpacing     = 16.0
	helpText        = "P: Pause R: Restart Q: Quit"
	gameOverHelp    = "R: Restart | Q: Quit"
	titleHelp       = "S / Click: Start   Q: Quit   F11: Fullscreen"
	countdownFormat = "%d"
)

var (
	hudColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	bannerColor = color.RGBA{R: 255, G: 220, B: 60, A: 255}
	alertColor  = color.RGBA{R: 255, G: 80, B: 80, A: 255}
)

// HUD 绘制分数、生命、倒计时和各状态的横幅
type HUD struct {
	face *text.GoXFace
}

// NewHUD 创建 HUD，使用 basicfont 位图字体
func NewHUD() *HUD {
	return &HUD{face: text.NewGoXFace(basicfont.Face7x13)}
}

// bannerText 状态对应的屏幕中央文字（主横幅 + 副标题）
type bannerText struct {
	title    string
	subtitle string
	color    color.Color
}

// bannerFor 根据快照计算中央横幅；PLAYING 时没有横幅
func bannerFor(snap game.Snapshot) (bannerText, bool) {
	switch snap.State {
	case game.StateTitle:
		return bannerText{title: "Fruit Slice", subtitle: titleHelp, color: bannerColor}, true
	case game.StateCountdown:
		return bannerText{
			title:    fmt.Sprintf(countdownFormat, countdownSeconds(snap.TimeLeft)),
			subtitle: fmt.Sprintf("Round %d", snap.Round+1),
			color:    bannerColor,
		}, true
	case game.StatePaused:
		return bannerText{title: "Paused", subtitle: "P: Resume", color: hudColor}, true
	case game.StateResult:
		return bannerText{
			title:    fmt.Sprintf("Round %d Over", snap.Round),
			subtitle: fmt.Sprintf("Score: %d", snap.Score),
			color:    bannerColor,
		}, true
	case game.StateGameOver:
		return bannerText{
			title:    "Game Over!",
			subtitle: fmt.Sprintf("Final Score: %d   %s", snap.Score, gameOverHelp),
			color:    alertColor,
		}, true
	}
	return bannerText{}, false
}

// countdownSeconds 向上取整的剩余秒数（3s 倒计时显示 3、2、1）
func countdownSeconds(left time.Duration) int {
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Seconds()))
}

// statusLine 左上角的分数和生命
func statusLine(snap game.Snapshot) string {
	line := fmt.Sprintf("Score: %d   Lives: %d", snap.Score, snap.Lives)
	if snap.State == game.StatePlaying && snap.TimeLeft > 0 {
		line += fmt.Sprintf("   Time: %d", countdownSeconds(snap.TimeLeft))
	}
	return line
}

// Draw 绘制 HUD
func (h *HUD) Draw(screen *ebiten.Image, snap game.Snapshot) {
	if snap.State != game.StateTitle {
		h.drawText(screen, statusLine(snap), hudMargin, hudMargin, hudScale, hudColor)
		h.drawText(screen, helpText, hudMargin, snap.PlayArea.Height-hudMargin-lineSpacing*hudScale, hudScale, hudColor)
	}

	banner, ok := bannerFor(snap)
	if !ok {
		return
	}
	cx, cy := snap.PlayArea.Width/2, snap.PlayArea.Height/2
	h.drawCentered(screen, banner.title, cx, cy-lineSpacing*bannerScale/2, bannerScale, banner.color)
	h.drawCentered(screen, banner.subtitle, cx, cy+lineSpacing*bannerScale/2, hudScale, hudColor)
}

func (h *HUD) drawCentered(screen *ebiten.Image, s string, cx, cy, scale float64, clr color.Color) {
	w, lh := text.Measure(s, h.face, lineSpacing)
	h.drawText(screen, s, cx-w*scale/2, cy-lh*scale/2, scale, clr)
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = lineSpacing
	text.Draw(screen, s, h.face, op)
}
