package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	LogLevel string  `yaml:"log_level"`
	LogJSON  bool    `yaml:"log_json"`
	Http     Http    `yaml:"http"`
	Storage  Storage `yaml:"storage" validate:"required"`
	Assets   Assets  `yaml:"assets" validate:"required"`
	Backup   Backup  `yaml:"backup"`
}

type Http struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

type Storage struct {
	Driver     string `yaml:"driver" validate:"required,oneof=sqlite postgres"`
	SqlitePath string `yaml:"sqlite_path" validate:"required_if=Driver sqlite"`
}

type Assets struct {
	Dir           string `yaml:"dir" validate:"required"`
	MaxUploadSize int64  `yaml:"max_upload_size"` // bytes, per uploaded file
}

type Backup struct {
	Prefix       string `yaml:"prefix"`
	ScratchDir   string `yaml:"scratch_dir"`   // parent of per-backup temp dirs, os.TempDir() when empty
	DatabaseFile string `yaml:"database_file"` // archived as database/app.db, defaults to storage.sqlite_path
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Private struct {
	Pg Pg `yaml:"pg"`
}

const (
	defaultPort          = 5001
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 5 * time.Minute // backups stream large archives
	defaultMaxUploadSize = 32 << 20
	defaultBackupPrefix  = "minds_eye_backup"
)

// BackupDatabaseFile returns the database file that backups include, if any.
func (c *Config) BackupDatabaseFile() string {
	if c.Public.Backup.DatabaseFile != "" {
		return c.Public.Backup.DatabaseFile
	}
	if c.Public.Storage.Driver == DriverSQLite {
		return c.Public.Storage.SqlitePath
	}
	return ""
}

func (c *Config) applyDefaults() {
	if c.Public.Http.Port == 0 {
		c.Public.Http.Port = defaultPort
	}
	if c.Public.Http.ReadTimeout == 0 {
		c.Public.Http.ReadTimeout = defaultReadTimeout
	}
	if c.Public.Http.WriteTimeout == 0 {
		c.Public.Http.WriteTimeout = defaultWriteTimeout
	}
	if c.Public.Assets.MaxUploadSize == 0 {
		c.Public.Assets.MaxUploadSize = defaultMaxUploadSize
	}
	if c.Public.Backup.Prefix == "" {
		c.Public.Backup.Prefix = defaultBackupPrefix
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
}

func loadPath(configPath string, output interface{}) error {
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("can't read config file %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		return fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
	}
	return nil
}

// Load reads public.yaml and, when present, private.yaml from configFolder.
// private.yaml is mandatory for the postgres driver.
func Load(configFolder string) (*Config, error) {
	var cfg Config
	if err := loadPath(path.Join(configFolder, "public.yaml"), &cfg.Public); err != nil {
		return nil, err
	}

	privatePath := path.Join(configFolder, "private.yaml")
	if _, err := os.Stat(privatePath); err == nil {
		if err := loadPath(privatePath, &cfg.Private); err != nil {
			return nil, err
		}
	} else if cfg.Public.Storage.Driver == DriverPostgres {
		return nil, fmt.Errorf("config file does not exist: %s", privatePath)
	}

	cfg.applyDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg.Public); err != nil {
		return nil, fmt.Errorf("invalid public config: %w", err)
	}
	if cfg.Public.Storage.Driver == DriverPostgres {
		if err := validate.Struct(cfg.Private.Pg); err != nil {
			return nil, fmt.Errorf("invalid private config: %w", err)
		}
	}
	return &cfg, nil
}

func MustLoad(configFolder string) *Config {
	cfg, err := Load(configFolder)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}
