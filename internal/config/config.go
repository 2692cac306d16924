// Package config loads runtime settings from an optional YAML file and DOPPEL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/farcloser/doppel/internal/integration/ffmpeg"
	"github.com/farcloser/doppel/internal/types"
)

const envPrefix = "DOPPEL"

var (
	errInvalidWorkers = errors.New("run.workers must be positive")
	errInvalidTimeout = errors.New("ffmpeg.timeout must be positive")
	errInvalidEncoder = errors.New("run.encoder must be standin or ffmpeg")
	errIncompleteS3   = errors.New("s3.endpoint and s3.bucket are both required")
)

// Config holds every runtime setting.
type Config struct {
	Output OutputParams
	Run    RunParams
	FFmpeg FFmpegParams
	Log    LogParams
	S3     S3Params
}

type OutputParams struct {
	Dir      string
	Sidecars bool
}

type RunParams struct {
	Workers  int
	Encoder  types.EncoderKind
	Fallback bool
}

type FFmpegParams struct {
	Timeout time.Duration
}

type LogParams struct {
	Level string
}

// S3Params select the bucket sink. An empty endpoint means the local directory sink.
type S3Params struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// Enabled reports whether the S3 sink is configured.
func (p S3Params) Enabled() bool {
	return p.Endpoint != ""
}

// Load reads settings. An empty path skips the file; environment variables always apply
// (eg: DOPPEL_RUN_WORKERS for run.workers).
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Output: OutputParams{
			Dir:      v.GetString("output.dir"),
			Sidecars: v.GetBool("output.sidecars"),
		},
		Run: RunParams{
			Workers:  v.GetInt("run.workers"),
			Encoder:  types.EncoderKind(v.GetString("run.encoder")),
			Fallback: v.GetBool("run.fallback"),
		},
		FFmpeg: FFmpegParams{
			Timeout: v.GetDuration("ffmpeg.timeout"),
		},
		Log: LogParams{
			Level: v.GetString("log.level"),
		},
		S3: S3Params{
			Endpoint:  v.GetString("s3.endpoint"),
			AccessKey: v.GetString("s3.access_key"),
			SecretKey: v.GetString("s3.secret_key"),
			Bucket:    v.GetString("s3.bucket"),
			Prefix:    v.GetString("s3.prefix"),
			UseSSL:    v.GetBool("s3.use_ssl"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", "test_corpus")
	v.SetDefault("output.sidecars", true)
	v.SetDefault("run.workers", runtime.NumCPU())
	v.SetDefault("run.encoder", "")
	v.SetDefault("run.fallback", false)
	v.SetDefault("ffmpeg.timeout", ffmpeg.DefaultTimeout)
	v.SetDefault("log.level", "info")
	// Registered so that AutomaticEnv resolves them without a file.
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.use_ssl", true)
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Run.Workers <= 0 {
		return errInvalidWorkers
	}

	if c.FFmpeg.Timeout <= 0 {
		return errInvalidTimeout
	}

	switch c.Run.Encoder {
	case "", types.EncoderStandIn, types.EncoderFFmpeg:
	default:
		return fmt.Errorf("%w: %q", errInvalidEncoder, c.Run.Encoder)
	}

	if c.S3.Enabled() && c.S3.Bucket == "" {
		return errIncompleteS3
	}

	return nil
}
