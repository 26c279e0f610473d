package main

import (
	"time"

	"github.com/dmitrymomot/costcache/pkg/file"
	"github.com/dmitrymomot/costcache/pkg/httpserver"
	"github.com/dmitrymomot/costcache/pkg/redis"
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	backendLocal  = "local"
	backendMemory = "memory"
	backendS3     = "s3"
	backendRedis  = "redis"
)

// Config is the process configuration read from the environment and .env.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	Capacity  int           `env:"CACHE_CAPACITY" envDefault:"4"`
	Backend   string        `env:"STORAGE_BACKEND" envDefault:"local"`
	FilesDir  string        `env:"FILES_DIR" envDefault:"Files"`
	S3Timeout time.Duration `env:"S3_TIMEOUT" envDefault:"10s"`

	HTTP  httpserver.Config
	S3    file.S3Config
	Redis redis.Config
}
