package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/decker502/fruitslice/pkg/game"
)

const sampleRate = beep.SampleRate(44100)

// soundPlayer 用正弦波提示切中、漏掉和游戏结束
// 扬声器初始化失败时静默运行
type soundPlayer struct {
	enabled bool
}

func newSoundPlayer(mute bool) *soundPlayer {
	if mute {
		return &soundPlayer{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("[Sound] Audio initialization failed: %v", err)
		return &soundPlayer{}
	}
	return &soundPlayer{enabled: true}
}

// feedback 根据 tick 结果选择音效
func (s *soundPlayer) feedback(res game.TickResult) {
	if res.Changed() && res.To == game.StateGameOver {
		s.play(tone(440, 120*time.Millisecond), tone(330, 120*time.Millisecond), tone(220, 300*time.Millisecond))
		return
	}
	if len(res.Sliced) > 0 {
		s.play(tone(880, 50*time.Millisecond))
	}
	if len(res.Missed) > 0 {
		s.play(tone(196, 150*time.Millisecond))
	}
}

// tone 指定频率和时长的正弦波，生成失败时返回 nil
func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		log.Printf("[Sound] Failed to create tone %.0fHz: %v", freq, err)
		return nil
	}
	return beep.Take(sampleRate.N(d), sine)
}

func (s *soundPlayer) play(streamers ...beep.Streamer) {
	if !s.enabled {
		return
	}
	seq := make([]beep.Streamer, 0, len(streamers))
	for _, st := range streamers {
		if st != nil {
			seq = append(seq, st)
		}
	}
	if len(seq) == 0 {
		return
	}
	speaker.Play(beep.Seq(seq...))
}

func (s *soundPlayer) close() {
	if s.enabled {
		speaker.Close()
	}
}
