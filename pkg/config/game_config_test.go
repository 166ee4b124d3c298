package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultGameConfigIsValid(t *testing.T) {
	cfg := DefaultGameConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid, got %v", err)
	}

	if cfg.Collision.HitRadius() != 65 {
		t.Errorf("expected hit radius 65 (25 + 40), got %f", cfg.Collision.HitRadius())
	}
}

func TestLoadGameConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errField    string
		validate    func(*testing.T, *GameConfig)
	}{
		{
			name: "full config",
			yamlContent: `
spawn:
  probability: 0.1
  marginX: 30
  velocityX:
    min: -2
    max: 2
  velocityY:
    min: -20
    max: -10
physics:
  gravity: 0.5
  overflowMargin: 60
collision:
  fruitRadius: 30
  cursorRadius: 20
effects:
  splashLifetime: 10
timing:
  countdown: 2s
  resultDisplay: 1500ms
  round: 60s
session:
  initialLives: 5
  pointsPerHit: 2
window:
  width: 640
  height: 480
  tps: 60
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Spawn.Probability != 0.1 {
					t.Errorf("expected probability 0.1, got %f", cfg.Spawn.Probability)
				}
				if cfg.Spawn.VelocityY.Min != -20 || cfg.Spawn.VelocityY.Max != -10 {
					t.Errorf("unexpected velocityY %+v", cfg.Spawn.VelocityY)
				}
				if cfg.Collision.HitRadius() != 50 {
					t.Errorf("expected hit radius 50, got %f", cfg.Collision.HitRadius())
				}
				if cfg.Timing.ResultDisplay.Std() != 1500*time.Millisecond {
					t.Errorf("expected resultDisplay 1.5s, got %s", cfg.Timing.ResultDisplay.Std())
				}
				if cfg.Timing.Round.Std() != time.Minute {
					t.Errorf("expected round 60s, got %s", cfg.Timing.Round.Std())
				}
				if cfg.Session.InitialLives != 5 {
					t.Errorf("expected 5 lives, got %d", cfg.Session.InitialLives)
				}
			},
		},
		{
			name: "partial config keeps defaults",
			yamlContent: `
session:
  initialLives: 1
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Session.InitialLives != 1 {
					t.Errorf("expected 1 life, got %d", cfg.Session.InitialLives)
				}
				if cfg.Spawn.Probability != 0.05 {
					t.Errorf("expected default probability 0.05, got %f", cfg.Spawn.Probability)
				}
				if cfg.Effects.SplashLifetime != 15 {
					t.Errorf("expected default splash lifetime 15, got %d", cfg.Effects.SplashLifetime)
				}
			},
		},
		{
			name: "numeric duration is seconds",
			yamlContent: `
timing:
  countdown: 2
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Timing.Countdown.Std() != 2*time.Second {
					t.Errorf("expected 2s, got %s", cfg.Timing.Countdown.Std())
				}
			},
		},
		{
			name: "negative hit radius",
			yamlContent: `
collision:
  fruitRadius: -1
`,
			wantErr:  true,
			errField: "collision.fruitRadius",
		},
		{
			name: "non-positive splash lifetime",
			yamlContent: `
effects:
  splashLifetime: 0
`,
			wantErr:  true,
			errField: "effects.splashLifetime",
		},
		{
			name: "probability above one",
			yamlContent: `
spawn:
  probability: 1.5
`,
			wantErr:  true,
			errField: "spawn.probability",
		},
		{
			name: "inverted velocity range",
			yamlContent: `
spawn:
  velocityY:
    min: -10
    max: -20
`,
			wantErr:  true,
			errField: "spawn.velocityY",
		},
		{
			name: "malformed duration",
			yamlContent: `
timing:
  countdown: soon
`,
			wantErr: true,
		},
		{
			name:        "invalid yaml",
			yamlContent: "spawn: [unclosed",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "fruit_slice.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}

			cfg, err := LoadGameConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errField != "" {
					var cfgErr *ConfigurationError
					if !errors.As(err, &cfgErr) {
						t.Fatalf("expected ConfigurationError, got %T: %v", err, err)
					}
					if cfgErr.Field != tt.errField {
						t.Errorf("expected field %q, got %q", tt.errField, cfgErr.Field)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadGameConfigMissingFile(t *testing.T) {
	_, err := LoadGameConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read game config") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
		field  string
	}{
		{"negative cursor radius", func(c *GameConfig) { c.Collision.CursorRadius = -5 }, "collision.cursorRadius"},
		{"zero gravity", func(c *GameConfig) { c.Physics.Gravity = 0 }, "physics.gravity"},
		{"negative overflow margin", func(c *GameConfig) { c.Physics.OverflowMargin = -1 }, "physics.overflowMargin"},
		{"negative probability", func(c *GameConfig) { c.Spawn.Probability = -0.1 }, "spawn.probability"},
		{"negative margin", func(c *GameConfig) { c.Spawn.MarginX = -1 }, "spawn.marginX"},
		{"zero lives", func(c *GameConfig) { c.Session.InitialLives = 0 }, "session.initialLives"},
		{"zero points", func(c *GameConfig) { c.Session.PointsPerHit = 0 }, "session.pointsPerHit"},
		{"negative countdown", func(c *GameConfig) { c.Timing.Countdown = Duration(-time.Second) }, "timing.countdown"},
		{"negative result display", func(c *GameConfig) { c.Timing.ResultDisplay = Duration(-time.Second) }, "timing.resultDisplay"},
		{"negative round", func(c *GameConfig) { c.Timing.Round = Duration(-time.Second) }, "timing.round"},
		{"zero width", func(c *GameConfig) { c.Window.Width = 0 }, "window"},
		{"zero tps", func(c *GameConfig) { c.Window.TPS = 0 }, "window.tps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestLoadUsesEmbeddedDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	want := DefaultGameConfig()
	if cfg.Spawn != want.Spawn {
		t.Errorf("embedded spawn config %+v differs from defaults %+v", cfg.Spawn, want.Spawn)
	}
	if cfg.Timing != want.Timing {
		t.Errorf("embedded timing config %+v differs from defaults %+v", cfg.Timing, want.Timing)
	}
	if cfg.Window != want.Window {
		t.Errorf("embedded window config %+v differs from defaults %+v", cfg.Window, want.Window)
	}
}
