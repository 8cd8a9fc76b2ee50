package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	MCP     MCPConfig
	Dataset DatasetConfig
	Cache   CacheConfig
	Valkey  ValkeyConfig
	MinIO   MinIOConfig
	S3      S3Config
	Worker  WorkerConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MCPConfig struct {
	Addr string
}

// Dataset sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceMinIO    = "minio"
	SourceS3       = "s3"
)

type DatasetConfig struct {
	Source string // DATASET_SOURCE: embedded, file, minio, s3
	Path   string // DATASET_PATH (file source)
	Object string // DATASET_OBJECT (object key for minio/s3)
}

type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type ValkeyConfig struct {
	Addr     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type S3Config struct {
	Region   string // S3_REGION
	Bucket   string // S3_BUCKET
	Endpoint string // S3_ENDPOINT (for MinIO/LocalStack compatibility)
}

type WorkerConfig struct {
	Concurrency int // WORKER_CONCURRENCY: parallel cache-warming searches
}

type LogConfig struct {
	Level slog.Level
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT_SECS", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT_SECS", 60)) * time.Second,
		},
		MCP: MCPConfig{
			Addr: getEnv("MCP_ADDR", ":8081"),
		},
		Dataset: DatasetConfig{
			Source: strings.ToLower(getEnv("DATASET_SOURCE", SourceEmbedded)),
			Path:   getEnv("DATASET_PATH", ""),
			Object: getEnv("DATASET_OBJECT", "pals.json"),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", true),
			TTL:     time.Duration(getEnvInt("CACHE_TTL_SECS", 3600)) * time.Second,
		},
		Valkey: ValkeyConfig{
			Addr:     getEnv("VALKEY_ADDR", "localhost:6379"),
			Password: getEnv("VALKEY_PASSWORD", ""),
			DB:       getEnvInt("VALKEY_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "paleasy"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "paleasy123"),
			Bucket:    getEnv("MINIO_BUCKET", "paleasy"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		S3: S3Config{
			Region:   getEnv("S3_REGION", ""),
			Bucket:   getEnv("S3_BUCKET", ""),
			Endpoint: getEnv("S3_ENDPOINT", ""),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvInt("WORKER_CONCURRENCY", 4),
		},
		Log: LogConfig{
			Level: getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		},
	}

	switch cfg.Dataset.Source {
	case SourceEmbedded, SourceMinIO:
	case SourceFile:
		if cfg.Dataset.Path == "" {
			return nil, fmt.Errorf("DATASET_SOURCE=file requires DATASET_PATH")
		}
	case SourceS3:
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("DATASET_SOURCE=s3 requires S3_BUCKET")
		}
	default:
		return nil, fmt.Errorf("unknown DATASET_SOURCE %q", cfg.Dataset.Source)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
