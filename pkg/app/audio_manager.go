package app

import (
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 48000

// pcmFormat ebiten audio.Context 要求的 PCM 格式：16-bit 有符号小端，双声道
var pcmFormat = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// SoundID 音效标识
type SoundID int

const (
	SoundSlice SoundID = iota
	SoundMiss
	SoundGameOver
)

// note 单个音符
type note struct {
	freq     float64
	duration time.Duration
}

// tone 合成音效参数：依次播放的音符加整体指数衰减
type tone struct {
	notes []note
	decay float64 // 每秒衰减系数，越大消失越快
	gain  float64 // 峰值振幅 (0, 1]
}

var tones = map[SoundID]tone{
	SoundSlice: {
		notes: []note{{880, 40 * time.Millisecond}, {1320, 40 * time.Millisecond}},
		decay: 30, gain: 0.8,
	},
	SoundMiss: {
		notes: []note{{220, 180 * time.Millisecond}},
		decay: 12, gain: 0.8,
	},
	SoundGameOver: {
		notes: []note{{440, 150 * time.Millisecond}, {330, 150 * time.Millisecond}, {220, 300 * time.Millisecond}},
		decay: 4, gain: 0.8,
	},
}

// AudioManager 播放程序合成的音效
//
// 没有音频资源文件：每个音效在创建时合成为 PCM，之后重复使用同一个播放器。
type AudioManager struct {
	players map[SoundID]*audio.Player
	volume  float64
}

// NewAudioManager 创建音频管理器并预先合成所有音效
//
// 参数：
//   - ctx: 音频上下文（进程内只能创建一个）
//   - volume: 音量 [0, 1]
func NewAudioManager(ctx *audio.Context, volume float64) *AudioManager {
	am := &AudioManager{
		players: make(map[SoundID]*audio.Player, len(tones)),
		volume:  volume,
	}
	for id, t := range tones {
		pcm, err := synthTone(t, pcmFormat)
		if err != nil {
			log.Printf("[AudioManager] Warning: Failed to synthesise sound %d: %v", id, err)
			continue
		}
		am.players[id] = ctx.NewPlayerFromBytes(pcm)
	}
	log.Printf("[AudioManager] 合成 %d 个音效", len(am.players))
	return am
}

// PlaySound 从头播放音效
func (am *AudioManager) PlaySound(id SoundID) bool {
	if am == nil {
		return false
	}
	player, ok := am.players[id]
	if !ok {
		return false
	}
	player.SetVolume(am.volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %d: %v", id, err)
	}
	player.Play()
	return true
}

// toneStreamer 把音符串成正弦波序列，再叠加衰减包络和增益
func toneStreamer(t tone, rate beep.SampleRate) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(t.notes))
	for _, n := range t.notes {
		sine, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(rate.N(n.duration), sine))
	}
	return &effects.Volume{
		Streamer: decayEnvelope(beep.Seq(parts...), t.decay, rate),
		Base:     2,
		Volume:   math.Log2(t.gain),
	}, nil
}

// decayEnvelope 按 exp(-decay*t) 衰减振幅
func decayEnvelope(s beep.Streamer, decay float64, rate beep.SampleRate) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			env := math.Exp(-decay * rate.D(pos).Seconds())
			samples[i][0] *= env
			samples[i][1] *= env
			pos++
		}
		return n, ok
	})
}

// synthTone 把音效流完整渲染为 PCM 字节
func synthTone(t tone, format beep.Format) ([]byte, error) {
	s, err := toneStreamer(t, format.SampleRate)
	if err != nil {
		return nil, err
	}

	var pcm []byte
	frame := make([]byte, format.Width())
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, sample := range buf[:n] {
			format.EncodeSigned(frame, sample)
			pcm = append(pcm, frame...)
		}
		if !ok {
			break
		}
	}
	return pcm, nil
}
