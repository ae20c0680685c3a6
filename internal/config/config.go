// Package config provides YAML-based configuration loading for the
// game modes and the HTTP server, with embedded defaults.
package config

// RunnerConfig contains all configuration for the Grammar Runner mode.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Obstacles  RunnerObstacles  `yaml:"obstacles"`
	Goal       RunnerGoal       `yaml:"goal"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines jump physics parameters.
type RunnerPhysics struct {
	Gravity        float64 `yaml:"gravity"`
	LaunchVelocity float64 `yaml:"launch_velocity"`
	Clearance      float64 `yaml:"clearance"`
}

// RunnerObstacles defines obstacle movement and spawn parameters.
type RunnerObstacles struct {
	BaseSpeed   float64 `yaml:"base_speed"`
	SpawnChance float64 `yaml:"spawn_chance"`
}

// RunnerGoal defines the win and completion thresholds.
type RunnerGoal struct {
	FinishDistance  float64 `yaml:"finish_distance"`
	CompletionScore int     `yaml:"completion_score"`
}

// RacingConfig contains all configuration for the Grammar Racing mode.
type RacingConfig struct {
	Speed RacingSpeed `yaml:"speed"`
	Track RacingTrack `yaml:"track"`
}

// RacingSpeed defines the speed model for both cars.
type RacingSpeed struct {
	Start float64 `yaml:"start"`
	Step  float64 `yaml:"step"`
	Floor float64 `yaml:"floor"`
}

// RacingTrack defines track length and progress accrual.
type RacingTrack struct {
	FinishLine     float64 `yaml:"finish_line"`
	ProgressFactor float64 `yaml:"progress_factor"`
}

// DifficultyConfig tunes the score-stepped speed progression.
// The multiplier applied to obstacle speed is
// 1 + floor(score/step) * increment.
type DifficultyConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Step      int     `yaml:"step"`
	Increment float64 `yaml:"increment"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Listen string      `yaml:"listen"`
	CORS   CORSConfig  `yaml:"cors"`
	Redis  RedisConfig `yaml:"redis"`
	DB     DBConfig    `yaml:"db"`
	Chat   ChatConfig  `yaml:"chat"`
}

// CORSConfig configures cross-origin access for the browser clients.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RedisConfig configures the optional question cache.
// An empty Addr disables caching.
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// DBConfig configures question/progress storage for the server.
// PostgresURL takes precedence over the sqlite path when set.
type DBConfig struct {
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresURL string `yaml:"postgres_url"`
}

// ChatConfig configures the language-model chat proxy.
// The API key is read from the environment variable named by APIKeyEnv.
type ChatConfig struct {
	UpstreamURL string `yaml:"upstream_url"`
	Model       string `yaml:"model"`
	APIKeyEnv   string `yaml:"api_key_env"`
}
