package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Provider struct {
		// Base URL of the hosted auth/data provider, e.g. https://xyz.supabase.co
		URL        string `env:"PROVIDER_URL,required"`
		AnonKey    string `env:"PROVIDER_ANON_KEY,required"`
		ServiceKey string `env:"PROVIDER_SERVICE_KEY"`

		Timeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Session struct {
		// TTL of persisted session records; matches the provider refresh
		// token lifetime by default.
		TTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

		// How long before access token expiry a refresh is scheduled.
		RefreshLeeway time.Duration `env:"SESSION_REFRESH_LEEWAY" envDefault:"60s"`
	}

	Referral struct {
		MemberBonus     int64 `env:"REFERRAL_MEMBER_BONUS" envDefault:"10"`
		WinningBonus    int64 `env:"REFERRAL_WINNING_BONUS" envDefault:"100"`
		MinimumWithdraw int64 `env:"REFERRAL_MIN_WITHDRAW" envDefault:"500"`
	}
}

func Load() *Config {
	// .env is optional; in production variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
