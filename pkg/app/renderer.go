package app

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/fruitslice/pkg/config"
	"github.com/decker502/fruitslice/pkg/ecs"
	"github.com/decker502/fruitslice/pkg/game"
	"github.com/decker502/fruitslice/pkg/utils"
)

var (
	backgroundColor = color.RGBA{R: 40, G: 28, B: 22, A: 255}
	splashColor     = color.RGBA{R: 230, G: 40, B: 60, A: 255}
	cursorColor     = color.RGBA{R: 80, G: 200, B: 255, A: 255}

	// fruitPalette 按水果 ID 轮换颜色
	fruitPalette = []color.RGBA{
		{R: 255, G: 60, B: 60, A: 255},  // 苹果
		{R: 255, G: 165, B: 0, A: 255},  // 橙子
		{R: 120, G: 220, B: 60, A: 255}, // 青柠
		{R: 250, G: 230, B: 70, A: 255}, // 香蕉
		{R: 160, G: 80, B: 200, A: 255}, // 葡萄
	}
)

// Renderer 用纯色圆形绘制快照
type Renderer struct {
	collision config.CollisionConfig
	lifetime  int
}

// NewRenderer 创建渲染器
func NewRenderer(cfg *config.GameConfig) *Renderer {
	return &Renderer{
		collision: cfg.Collision,
		lifetime:  cfg.Effects.SplashLifetime,
	}
}

// Draw 按 背景 → 飞溅 → 水果 → 光标 的顺序绘制
func (r *Renderer) Draw(screen *ebiten.Image, snap game.Snapshot) {
	screen.Fill(backgroundColor)

	for _, s := range snap.Splashes {
		// 飞溅随剩余寿命扩散并淡出
		p := utils.Progress(s.Remaining, r.lifetime)
		radius := utils.Lerp(r.collision.FruitRadius*0.6, r.collision.FruitRadius*1.4, utils.EaseOutQuad(p))
		clr := splashColor
		clr.A = uint8(255 * (1 - utils.EaseInQuad(p)))
		vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(radius), premultiply(clr), true)
	}

	for _, f := range snap.Fruits {
		vector.DrawFilledCircle(screen, float32(f.X), float32(f.Y), float32(r.collision.FruitRadius), fruitColor(f.ID), true)
		vector.StrokeCircle(screen, float32(f.X), float32(f.Y), float32(r.collision.FruitRadius), 2, color.Black, true)
	}

	if snap.Cursor.Present {
		vector.StrokeCircle(screen, float32(snap.Cursor.X), float32(snap.Cursor.Y), float32(r.collision.CursorRadius), 3, cursorColor, true)
	}
}

func fruitColor(id ecs.EntityID) color.RGBA {
	return fruitPalette[int(uint64(id)%uint64(len(fruitPalette)))]
}

// premultiply ebiten 使用预乘 alpha 的颜色
func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}
