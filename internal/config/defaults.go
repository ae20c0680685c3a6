package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

//go:embed defaults/racing.yaml
var defaultRacingYAML []byte

//go:embed defaults/server.yaml
var defaultServerYAML []byte

// DefaultRunnerConfig returns the default Grammar Runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: RunnerPhysics{
			Gravity:        0.25,
			LaunchVelocity: 10.0,
			Clearance:      30.0,
		},
		Obstacles: RunnerObstacles{
			BaseSpeed:   2.5,
			SpawnChance: 0.02,
		},
		Goal: RunnerGoal{
			FinishDistance:  3000.0,
			CompletionScore: 100,
		},
		Difficulty: DifficultyConfig{
			Enabled:   true,
			Step:      50,
			Increment: 0.25,
		},
	}
}

// DefaultRacingConfig returns the default Grammar Racing configuration.
func DefaultRacingConfig() RacingConfig {
	return RacingConfig{
		Speed: RacingSpeed{
			Start: 100.0,
			Step:  10.0,
			Floor: 50.0,
		},
		Track: RacingTrack{
			FinishLine:     700.0,
			ProgressFactor: 0.01,
		},
	}
}

// DefaultServerConfig returns the default HTTP server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Listen: ":8080",
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Redis: RedisConfig{
			TTLSeconds: 300,
		},
		DB: DBConfig{
			SQLitePath: "~/.grammar-arcade/arcade.db",
		},
		Chat: ChatConfig{
			UpstreamURL: "https://api.openai.com/v1/chat/completions",
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a mode.
func GetDefaultYAML(mode string) []byte {
	switch mode {
	case "runner":
		return defaultRunnerYAML
	case "racing":
		return defaultRacingYAML
	case "server":
		return defaultServerYAML
	default:
		return nil
	}
}
