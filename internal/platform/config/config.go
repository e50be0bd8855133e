package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type DatabaseConfig struct {
	Driver      string `yaml:"driver"` // mysql | sqlite3
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Username    string `yaml:"user"`
	Password    string `yaml:"password"`
	DBName      string `yaml:"dbname"`
	Path        string `yaml:"path"` // sqlite3 のみ
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Certs struct {
	Dir  string `yaml:"dir"`
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	Header   string        `yaml:"header"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

type LendingConfig struct {
	LoanDays          int  `yaml:"loan_days"`
	RequirePrivileges bool `yaml:"require_privileges"`
}

type CacheConfig struct {
	Driver string        `yaml:"driver"` // memory | bolt | none
	Path   string        `yaml:"path"`
	TTL    time.Duration `yaml:"ttl"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type Config struct {
	Version     string         `yaml:"version"`
	Mode        string         `yaml:"mode"`
	Server      ServerConfig   `yaml:"server"`
	DB          DatabaseConfig `yaml:"database"`
	Certificate Certs          `yaml:"certificate"`
	Auth        AuthConfig     `yaml:"auth"`
	Lending     LendingConfig  `yaml:"lending"`
	Cache       CacheConfig    `yaml:"cache"`
	CORS        CORSConfig     `yaml:"cors"`
}

// Load は .env を環境変数へ取り込んだうえで YAML を読み、環境変数で上書きする。
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(buf)
}

func Parse(buf []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Mode: "dev",
		Server: ServerConfig{
			Addr:            ":8443",
			ShutdownTimeout: 10 * time.Second,
		},
		DB: DatabaseConfig{
			Driver: "mysql",
			Host:   "127.0.0.1",
			Port:   3306,
		},
		Auth: AuthConfig{
			Header:   "X-Library-Token",
			TokenTTL: 10 * time.Hour,
		},
		Lending: LendingConfig{
			LoanDays:          14,
			RequirePrivileges: true,
		},
		Cache: CacheConfig{
			Driver: "memory",
			TTL:    60 * time.Second,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LIBRARY_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("LIBRARY_DB_PASSWORD"); v != "" {
		cfg.DB.Password = v
	}
	if v := os.Getenv("LIBRARY_DB_PATH"); v != "" {
		cfg.DB.Path = v
	}
	if v := os.Getenv("LIBRARY_JWT_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
}

func (c *Config) Validate() error {
	if c.Mode != "dev" && c.Mode != "release" {
		return fmt.Errorf("mode must be dev or release: %q", c.Mode)
	}
	switch c.DB.Driver {
	case "mysql":
		if c.DB.DBName == "" {
			return errors.New("database.dbname is required for mysql")
		}
	case "sqlite3":
		if c.DB.Path == "" {
			return errors.New("database.path is required for sqlite3")
		}
	default:
		return fmt.Errorf("unsupported database driver: %q", c.DB.Driver)
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret is empty (set LIBRARY_JWT_SECRET)")
	}
	if c.Lending.LoanDays <= 0 {
		return fmt.Errorf("lending.loan_days must be > 0: %d", c.Lending.LoanDays)
	}
	switch c.Cache.Driver {
	case "memory", "none", "":
	case "bolt":
		if c.Cache.Path == "" {
			return errors.New("cache.path is required for bolt")
		}
	default:
		return fmt.Errorf("unsupported cache driver: %q", c.Cache.Driver)
	}
	return nil
}

// TLSFiles は証明書が設定されていれば cert/key のパスを返す。
func (c *Config) TLSFiles() (certFile, keyFile string, ok bool) {
	if c.Certificate.Cert == "" || c.Certificate.Key == "" {
		return "", "", false
	}
	dir := c.Certificate.Dir
	if dir == "" {
		dir = "config/tls/" + c.Mode
	}
	return dir + "/" + c.Certificate.Cert, dir + "/" + c.Certificate.Key, true
}
