package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/mcwire/internal/blocklist"
	"github.com/danmuck/mcwire/internal/logging"
	"github.com/danmuck/mcwire/internal/protocol/frame"
)

const (
	DefaultProtocolVersion  = 766
	DefaultBlocklistURL     = blocklist.DefaultURL
	DefaultBlocklistTimeout = blocklist.DefaultTimeout
)

// Config is the mcwire CLI configuration.
type Config struct {
	LogLevel         string
	ProtocolVersion  int32
	MaxFrameBytes    int
	BlocklistURL     string
	BlocklistTimeout time.Duration
}

type fileConfig struct {
	LogLevel         string `toml:"log_level"`
	ProtocolVersion  int32  `toml:"protocol_version"`
	MaxFrameBytes    int    `toml:"max_frame_bytes"`
	BlocklistURL     string `toml:"blocklist_url"`
	BlocklistTimeout string `toml:"blocklist_timeout"`
}

func Default() Config {
	return Config{
		LogLevel:         "info",
		ProtocolVersion:  DefaultProtocolVersion,
		MaxFrameBytes:    frame.DefaultMaxFrameLen,
		BlocklistURL:     DefaultBlocklistURL,
		BlocklistTimeout: DefaultBlocklistTimeout,
	}
}

// Load reads path on top of Default. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("protocol_version") {
		cfg.ProtocolVersion = raw.ProtocolVersion
	}
	if meta.IsDefined("max_frame_bytes") {
		cfg.MaxFrameBytes = raw.MaxFrameBytes
	}
	if meta.IsDefined("blocklist_url") {
		cfg.BlocklistURL = strings.TrimSpace(raw.BlocklistURL)
	}
	if meta.IsDefined("blocklist_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.BlocklistTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse blocklist_timeout: %w", err)
		}
		cfg.BlocklistTimeout = d
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	if cfg.ProtocolVersion <= 0 {
		return fmt.Errorf("protocol_version must be positive, got %d", cfg.ProtocolVersion)
	}
	if cfg.MaxFrameBytes <= 0 {
		return fmt.Errorf("max_frame_bytes must be positive, got %d", cfg.MaxFrameBytes)
	}
	if cfg.MaxFrameBytes > frame.DefaultMaxFrameLen {
		return fmt.Errorf("max_frame_bytes %d exceeds %d", cfg.MaxFrameBytes, frame.DefaultMaxFrameLen)
	}
	if cfg.BlocklistURL == "" {
		return fmt.Errorf("blocklist_url is required")
	}
	u, err := url.Parse(cfg.BlocklistURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("blocklist_url %q is not an absolute url", cfg.BlocklistURL)
	}
	if cfg.BlocklistTimeout <= 0 {
		return fmt.Errorf("blocklist_timeout must be positive, got %s", cfg.BlocklistTimeout)
	}
	return nil
}

func (c Config) FrameLimits() frame.Limits {
	return frame.Limits{MaxFrameLen: c.MaxFrameBytes}
}

func (c Config) FetcherConfig() blocklist.FetcherConfig {
	return blocklist.FetcherConfig{URL: c.BlocklistURL, Timeout: c.BlocklistTimeout}
}
