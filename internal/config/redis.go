package config

import (
	"crypto/tls"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	redisAddrEnv          = "REDIS_ADDR"
	redisPasswordEnv      = "REDIS_PASSWORD"
	redisDBEnv            = "REDIS_DB"
	redisTLSEnv           = "REDIS_TLS"
	redisTLSServerNameEnv = "REDIS_TLS_SERVER_NAME"

	defaultRedisAddr = "localhost:6379"
)

// RedisConfig locates the redis instance backing the notification center.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// TLS enables TLS 1.2+ to the server. ServerName overrides the name
	// verified against the certificate, for proxies reached by IP.
	TLS        bool
	ServerName string
}

func LoadRedisConfig() (*RedisConfig, error) {
	cfg := &RedisConfig{
		Addr:       os.Getenv(redisAddrEnv),
		Password:   os.Getenv(redisPasswordEnv),
		ServerName: os.Getenv(redisTLSServerNameEnv),
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultRedisAddr
	}

	if raw := os.Getenv(redisDBEnv); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return nil, ErrInvalidRedisDB
		}
		cfg.DB = db
	}

	if raw := os.Getenv(redisTLSEnv); raw != "" {
		useTLS, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, ErrInvalidRedisTLS
		}
		cfg.TLS = useTLS
	}

	return cfg, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	return nil
}

// Options builds the go-redis client options.
func (c *RedisConfig) Options() *redis.Options {
	opts := &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	}
	if c.TLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: c.ServerName,
		}
	}
	return opts
}
