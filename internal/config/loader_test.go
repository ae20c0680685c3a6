package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRunnerEmbeddedDefaults(t *testing.T) {
	cfg, err := LoadRunner("")
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}

	want := DefaultRunnerConfig()
	if cfg.Physics != want.Physics {
		t.Errorf("Physics = %+v, expected %+v", cfg.Physics, want.Physics)
	}
	if cfg.Obstacles != want.Obstacles {
		t.Errorf("Obstacles = %+v, expected %+v", cfg.Obstacles, want.Obstacles)
	}
	if cfg.Goal != want.Goal {
		t.Errorf("Goal = %+v, expected %+v", cfg.Goal, want.Goal)
	}
	if cfg.Difficulty != want.Difficulty {
		t.Errorf("Difficulty = %+v, expected %+v", cfg.Difficulty, want.Difficulty)
	}
}

func TestLoadRacingEmbeddedDefaults(t *testing.T) {
	cfg, err := LoadRacing("")
	if err != nil {
		t.Fatalf("LoadRacing() failed: %v", err)
	}

	want := DefaultRacingConfig()
	if cfg.Speed != want.Speed {
		t.Errorf("Speed = %+v, expected %+v", cfg.Speed, want.Speed)
	}
	if cfg.Track != want.Track {
		t.Errorf("Track = %+v, expected %+v", cfg.Track, want.Track)
	}
}

func TestLoadServerEmbeddedDefaults(t *testing.T) {
	cfg, err := LoadServer("")
	if err != nil {
		t.Fatalf("LoadServer() failed: %v", err)
	}

	if cfg.Listen != ":8080" {
		t.Errorf("Listen = %q, expected :8080", cfg.Listen)
	}
	if cfg.Redis.TTLSeconds != 300 {
		t.Errorf("Redis.TTLSeconds = %d, expected 300", cfg.Redis.TTLSeconds)
	}
}

func TestLoadRunnerCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	content := `
physics:
  gravity: 0.5
  launch_velocity: 12
  clearance: 25
obstacles:
  base_speed: 3.0
  spawn_chance: 0.05
goal:
  finish_distance: 1000
  completion_score: 50
difficulty:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner(custom) failed: %v", err)
	}

	if cfg.Physics.Gravity != 0.5 || cfg.Physics.LaunchVelocity != 12 {
		t.Errorf("Physics = %+v", cfg.Physics)
	}
	if cfg.Goal.CompletionScore != 50 {
		t.Errorf("CompletionScore = %d, expected 50", cfg.Goal.CompletionScore)
	}
	if cfg.Difficulty.Enabled {
		t.Error("difficulty should be disabled by the custom config")
	}
}

func TestLoadRunnerMissingCustomPath(t *testing.T) {
	if _, err := LoadRunner(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing explicit config path")
	}
}

func TestLoadRunnerMalformedCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRunner(path); err == nil {
		t.Error("expected a parse error for malformed YAML")
	}
}

func TestGetDefaultYAML(t *testing.T) {
	for _, mode := range []string{"runner", "racing", "server"} {
		if len(GetDefaultYAML(mode)) == 0 {
			t.Errorf("GetDefaultYAML(%q) is empty", mode)
		}
	}
	if GetDefaultYAML("pinball") != nil {
		t.Error("GetDefaultYAML(unknown) should return nil")
	}
}
