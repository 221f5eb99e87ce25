package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ariebrainware/hms-portal/util"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `mapstructure:"APPNAME"`
	AppEnv  string `mapstructure:"APPENV"`
	AppPort uint16 `mapstructure:"APPPORT"`
	GinMode string `mapstructure:"GINMODE"`

	DBDriver string `mapstructure:"DBDRIVER"`
	DBHost   string `mapstructure:"DBHOST"`
	DBPort   uint16 `mapstructure:"DBPORT"`
	DBName   string `mapstructure:"DBNAME"`
	DBUser   string `mapstructure:"DBUSER"`
	DBPass   string `mapstructure:"DBPASS"`

	StoreDriver string `mapstructure:"STORE_DRIVER"`
	RedisAddr   string `mapstructure:"REDIS_ADDR"`
	RedisPass   string `mapstructure:"REDIS_PASS"`
	RedisDB     int    `mapstructure:"REDIS_DB"`

	JWTSecret            string        `mapstructure:"JWTSECRET"`
	SessionTTL           time.Duration `mapstructure:"SESSION_TTL"`
	SessionPurgeSchedule string        `mapstructure:"SESSION_PURGE_SCHEDULE"`
	LoginRateLimit       int           `mapstructure:"LOGIN_RATE_LIMIT"`
	LoginRateWindow      time.Duration `mapstructure:"LOGIN_RATE_WINDOW"`

	SimulatedLatency time.Duration `mapstructure:"SIMULATED_LATENCY"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	LogPretty        bool          `mapstructure:"LOG_PRETTY"`
	CORSOrigins      []string      `mapstructure:"CORS_ORIGINS"`
	GeoIPDBPath      string        `mapstructure:"GEOIP_DB_PATH"`
}

var defaults = map[string]any{
	"APPNAME":                "hms-portal",
	"APPENV":                 "development",
	"APPPORT":                8080,
	"GINMODE":                "release",
	"DBDRIVER":               "mysql",
	"DBHOST":                 "localhost",
	"DBPORT":                 3306,
	"DBNAME":                 "hms",
	"DBUSER":                 "",
	"DBPASS":                 "",
	"STORE_DRIVER":           "memory",
	"REDIS_ADDR":             "localhost:6379",
	"REDIS_PASS":             "",
	"REDIS_DB":               0,
	"JWTSECRET":              "",
	"SESSION_TTL":            "0s",
	"SESSION_PURGE_SCHEDULE": "@every 10m",
	"LOGIN_RATE_LIMIT":       5,
	"LOGIN_RATE_WINDOW":      "15m",
	"SIMULATED_LATENCY":      "0s",
	"LOG_LEVEL":              "info",
	"LOG_PRETTY":             false,
	"CORS_ORIGINS":           "*",
	"GEOIP_DB_PATH":          "",
}

var config *Config
var once sync.Once

// LoadConfig reads an optional .env file, layers the environment over the
// defaults and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		v := viper.New()
		for key, def := range defaults {
			v.SetDefault(key, def)
			_ = v.BindEnv(key)
		}
		v.AutomaticEnv()

		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			panic(fmt.Sprintf("config: %v", err))
		}
		cfg.CORSOrigins = splitList(cfg.CORSOrigins)
		util.SetJWTSecret(cfg.JWTSecret)
		config = cfg
	})
	return config
}

// ResetForTest drops the cached Config so the next LoadConfig re-reads the
// environment.
func ResetForTest() {
	config = nil
	once = sync.Once{}
}

// ErrMissingJWTSecret is returned by Validate when no signing secret is set.
var ErrMissingJWTSecret = errors.New("config: JWTSECRET must be set")

// Validate checks settings the server cannot run without. Test runs are
// exempt so suites can inject their own secret.
func (c *Config) Validate() error {
	if !c.IsTest() && strings.TrimSpace(c.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

// IsTest reports whether the application runs under APPENV=test.
func (c *Config) IsTest() bool {
	return c.AppEnv == "test"
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ConnectDB opens the SQL database selected by DBDRIVER. Under APPENV=test a
// private in-memory sqlite database is used.
func ConnectDB() (*gorm.DB, error) {
	cfg := LoadConfig()
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	if cfg.IsTest() {
		dsn := fmt.Sprintf("file:hms_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
		return gorm.Open(sqlite.Open(dsn), gormCfg)
	}

	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return gorm.Open(mysql.Open(dsn), gormCfg)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable", cfg.DBHost, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBPort)
		return gorm.Open(postgres.Open(dsn), gormCfg)
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBName), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported DBDRIVER %q", cfg.DBDriver)
	}
}
