package db

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type PostgresConfig struct {
	Host     string `koanf:"host" validate:"required"`
	Port     int    `koanf:"port" validate:"gt=0,lte=65535"`
	User     string `koanf:"user" validate:"required"`
	Password string `koanf:"password"`
	DBName   string `koanf:"name" validate:"required"`
	SSLMode  string `koanf:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
}

// LoadPostgresConfig reads DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME and DB_SSLMODE.
func LoadPostgresConfig() (PostgresConfig, error) {
	k := koanf.New(".")

	defaults := PostgresConfig{Host: "localhost", Port: 5432, SSLMode: "disable"}
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return PostgresConfig{}, fmt.Errorf("load db defaults: %w", err)
	}
	if err := k.Load(env.Provider("DB_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DB_"))
	}), nil); err != nil {
		return PostgresConfig{}, fmt.Errorf("load db env: %w", err)
	}

	var cfg PostgresConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return PostgresConfig{}, fmt.Errorf("unmarshal db config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return PostgresConfig{}, fmt.Errorf("invalid db config: %w", err)
	}
	return cfg, nil
}

func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}
