package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"presence-analyzer/internal/platform/db"
)

const (
	DefaultPath = "config/config.yaml"
	// 環境変数での上書きは PRESENCE_ 始まり（例: PRESENCE_SOURCE_DATA_CSV）
	EnvPrefix = "PRESENCE"

	ModeDev     = "dev"
	ModeRelease = "release"

	SourceCSV   = "csv"
	SourceMySQL = "mysql"
)

type ServerConfig struct {
	Addr string `yaml:"addr" envconfig:"ADDR"`
}

type SourceConfig struct {
	Kind     string `yaml:"kind" envconfig:"KIND"`         // csv | mysql
	Path     string `yaml:"path" envconfig:"DATA_CSV"`     // csv のパス
	Encoding string `yaml:"encoding" envconfig:"ENCODING"` // utf-8 | shift_jis
	Table    string `yaml:"table" envconfig:"TABLE"`       // mysql のテーブル名
}

type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds" envconfig:"TTL_SECONDS"`
}

type DirectoryConfig struct {
	URL            string `yaml:"url" envconfig:"URL"`
	TTLSeconds     int    `yaml:"ttl_seconds" envconfig:"TTL_SECONDS"`
	TimeoutSeconds int    `yaml:"timeout_seconds" envconfig:"TIMEOUT_SECONDS"`
}

type LogConfig struct {
	Level string `yaml:"level" envconfig:"LEVEL"`
}

type Certs struct {
	Cert string `yaml:"cert" envconfig:"CERT"`
	Key  string `yaml:"key" envconfig:"KEY"`
}

type Config struct {
	Version     string            `yaml:"version" ignored:"true"`
	Mode        string            `yaml:"mode" envconfig:"MODE"`
	Server      ServerConfig      `yaml:"server" envconfig:"SERVER"`
	Source      SourceConfig      `yaml:"source" envconfig:"SOURCE"`
	Cache       CacheConfig       `yaml:"cache" envconfig:"CACHE"`
	Directory   DirectoryConfig   `yaml:"directory" envconfig:"DIRECTORY"`
	DB          db.DatabaseConfig `yaml:"database" envconfig:"DB"`
	Certificate Certs             `yaml:"certificate" envconfig:"TLS"`
	Log         LogConfig         `yaml:"log" envconfig:"LOG"`
}

func (c *Config) CacheWindow() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c *Config) DirectoryWindow() time.Duration {
	return time.Duration(c.Directory.TTLSeconds) * time.Second
}

func (c *Config) DirectoryTimeout() time.Duration {
	return time.Duration(c.Directory.TimeoutSeconds) * time.Second
}

func (c *Config) TLSEnabled() bool {
	return c.Certificate.Cert != "" && c.Certificate.Key != ""
}

// Load: yaml を読み、環境変数で上書きし、未設定項目を既定値で埋める。
// ファイルが無い場合は環境変数と既定値だけで組み立てる
func Load(path string) (*Config, error) {
	var cfg Config
	buf, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return nil, fmt.Errorf("設定ファイルのパース失敗: %w", err)
		}
	case os.IsNotExist(err):
		// 既定値で続行
	default:
		return nil, fmt.Errorf("設定ファイルの読み込み失敗: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("環境変数の読み込み失敗: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeDev
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Source.Kind == "" {
		c.Source.Kind = SourceCSV
	}
	if c.Source.Path == "" {
		c.Source.Path = "runtime/data/sample_data.csv"
	}
	if c.Source.Encoding == "" {
		c.Source.Encoding = "utf-8"
	}
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = 600
	}
	if c.Directory.TTLSeconds <= 0 {
		c.Directory.TTLSeconds = 600
	}
	if c.Directory.TimeoutSeconds <= 0 {
		c.Directory.TimeoutSeconds = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Mode != ModeDev && c.Mode != ModeRelease {
		return fmt.Errorf("mode must be %q or %q: got %q", ModeDev, ModeRelease, c.Mode)
	}
	if c.Source.Kind != SourceCSV && c.Source.Kind != SourceMySQL {
		return fmt.Errorf("source.kind must be %q or %q: got %q", SourceCSV, SourceMySQL, c.Source.Kind)
	}
	return nil
}
