package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Auth         AuthConfig         `yaml:"auth"`
	Scoring      ScoringConfig      `yaml:"scoring"`
	Breaks       BreaksConfig       `yaml:"breaks"`
	Integrations IntegrationsConfig `yaml:"integrations"`
	Log          LogConfig          `yaml:"log"`
	CORS         CORSConfig         `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min" env:"SERVER_RATE_LIMIT_PER_MIN" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"touchgrass"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"15m"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl"  env:"AUTH_REFRESH_TOKEN_TTL"  env-default:"720h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"12"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ScoringConfig holds burnout risk model parameters. The six source
// weights must sum to 1; weight of missing sources is redistributed at
// computation time, not here.
type ScoringConfig struct {
	WeightVelocity   float64 `yaml:"weight_velocity"    env:"SCORING_WEIGHT_VELOCITY"    env-default:"0.15"`
	WeightMood       float64 `yaml:"weight_mood"        env:"SCORING_WEIGHT_MOOD"        env-default:"0.30"`
	WeightWorkHours  float64 `yaml:"weight_work_hours"  env:"SCORING_WEIGHT_WORK_HOURS"  env-default:"0.15"`
	WeightBreaks     float64 `yaml:"weight_breaks"      env:"SCORING_WEIGHT_BREAKS"      env-default:"0.10"`
	WeightCommits    float64 `yaml:"weight_commits"     env:"SCORING_WEIGHT_COMMITS"     env-default:"0.15"`
	WeightCodingTime float64 `yaml:"weight_coding_time" env:"SCORING_WEIGHT_CODING_TIME" env-default:"0.15"`

	TrendWindowDays    int `yaml:"trend_window_days"    env:"SCORING_TREND_WINDOW_DAYS"    env-default:"7"`
	TrendMinSamples    int `yaml:"trend_min_samples"    env:"SCORING_TREND_MIN_SAMPLES"    env-default:"3"`
	HistoryDefaultDays int `yaml:"history_default_days" env:"SCORING_HISTORY_DEFAULT_DAYS" env-default:"30"`
	HistoryMaxDays     int `yaml:"history_max_days"     env:"SCORING_HISTORY_MAX_DAYS"     env-default:"365"`

	// ComputeInterval enables the in-process periodic recompute job
	// when set to a positive duration.
	ComputeInterval time.Duration `yaml:"compute_interval" env:"SCORING_COMPUTE_INTERVAL" env-default:"0"`
}

// Weights returns the configured base weights in source order:
// velocity, mood, work hours, breaks, commits, coding time.
func (s ScoringConfig) Weights() [6]float64 {
	return [6]float64{
		s.WeightVelocity,
		s.WeightMood,
		s.WeightWorkHours,
		s.WeightBreaks,
		s.WeightCommits,
		s.WeightCodingTime,
	}
}

// BreaksConfig holds break tracking parameters.
type BreaksConfig struct {
	MinValidDuration   time.Duration `yaml:"min_valid_duration"   env:"BREAKS_MIN_VALID_DURATION"   env-default:"60s"`
	ShortBreakDuration time.Duration `yaml:"short_break_duration" env:"BREAKS_SHORT_BREAK_DURATION" env-default:"120s"`
	OrphanCutoff       time.Duration `yaml:"orphan_cutoff"        env:"BREAKS_ORPHAN_CUTOFF"        env-default:"1h"`
	ReconcileInterval  time.Duration `yaml:"reconcile_interval"   env:"BREAKS_RECONCILE_INTERVAL"   env-default:"15m"`
}

// IntegrationsConfig holds external provider settings. Per-user credentials
// arrive with each sync request; these are transport-level knobs.
type IntegrationsConfig struct {
	GitHubBaseURL    string        `yaml:"github_base_url"    env:"INTEGRATIONS_GITHUB_BASE_URL"    env-default:"https://api.github.com"`
	WakaTimeBaseURL  string        `yaml:"wakatime_base_url"  env:"INTEGRATIONS_WAKATIME_BASE_URL"  env-default:"https://wakatime.com/api/v1"`
	RequestTimeout   time.Duration `yaml:"request_timeout"    env:"INTEGRATIONS_REQUEST_TIMEOUT"    env-default:"10s"`
	CommitWindowDays int           `yaml:"commit_window_days" env:"INTEGRATIONS_COMMIT_WINDOW_DAYS" env-default:"30"`
	CodingWindowDays int           `yaml:"coding_window_days" env:"INTEGRATIONS_CODING_WINDOW_DAYS" env-default:"14"`
}
