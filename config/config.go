package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

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
	DBPath   string `mapstructure:"DBPATH"`
	DBHost   string `mapstructure:"DBHOST"`
	DBPort   uint16 `mapstructure:"DBPORT"`
	DBName   string `mapstructure:"DBNAME"`
	DBUser   string `mapstructure:"DBUSER"`
	DBPass   string `mapstructure:"DBPASS"`

	UploadDir   string `mapstructure:"UPLOAD_DIR"`
	ModelPath   string `mapstructure:"MODEL_PATH"`
	ONNXLib     string `mapstructure:"ONNX_LIB"`
	ModelInput  string `mapstructure:"MODEL_INPUT"`
	ModelOutput string `mapstructure:"MODEL_OUTPUT"`

	JWTSecret     string `mapstructure:"JWTSECRET"`
	APIToken      string `mapstructure:"APITOKEN"`
	ResetPassword string `mapstructure:"RESET_PASSWORD"`
	CORSOrigins   string `mapstructure:"CORS_ORIGINS"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	GeoIPDBPath   string `mapstructure:"GEOIP_DB_PATH"`
	UserCacheSize int    `mapstructure:"USER_CACHE_SIZE"`

	RedisAddr string `mapstructure:"REDIS_ADDR"`
	RedisPass string `mapstructure:"REDIS_PASS"`
	RedisDB   int    `mapstructure:"REDIS_DB"`
}

var (
	config *Config
	once   sync.Once
)

var defaults = map[string]interface{}{
	"APPNAME":         "Embryo AI",
	"APPENV":          "development",
	"APPPORT":         5000,
	"GINMODE":         "debug",
	"DBDRIVER":        "sqlite",
	"DBPATH":          "embryo_ai.db",
	"DBHOST":          "localhost",
	"DBPORT":          3306,
	"UPLOAD_DIR":      "uploads",
	"MODEL_PATH":      "best_resnet50_clean.onnx",
	"MODEL_INPUT":     "input",
	"MODEL_OUTPUT":    "output",
	"RESET_PASSWORD":  "123456",
	"CORS_ORIGINS":    "*",
	"LOG_LEVEL":       "info",
	"USER_CACHE_SIZE": 1000,
}

// LoadConfig reads the optional .env file and the environment once, and returns the singleton Config.
func LoadConfig() *Config {
	once.Do(func() {
		// A missing .env is fine, the process environment still applies.
		_ = godotenv.Load()

		v := viper.New()
		v.AutomaticEnv()
		for key, value := range defaults {
			v.SetDefault(key, value)
		}
		for _, key := range envKeys() {
			_ = v.BindEnv(key)
		}

		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			panic(fmt.Sprintf("unmarshal config: %v", err))
		}
		config = cfg
	})
	return config
}

// ResetForTest drops the cached Config so the next LoadConfig call reads the environment again.
func ResetForTest() {
	config = nil
	once = sync.Once{}
}

func envKeys() []string {
	return []string{
		"APPNAME", "APPENV", "APPPORT", "GINMODE",
		"DBDRIVER", "DBPATH", "DBHOST", "DBPORT", "DBNAME", "DBUSER", "DBPASS",
		"UPLOAD_DIR", "MODEL_PATH", "ONNX_LIB", "MODEL_INPUT", "MODEL_OUTPUT",
		"JWTSECRET", "APITOKEN", "RESET_PASSWORD", "CORS_ORIGINS", "LOG_LEVEL",
		"GEOIP_DB_PATH", "USER_CACHE_SIZE", "REDIS_ADDR", "REDIS_PASS", "REDIS_DB",
	}
}

// IsTest reports whether the process runs the test environment.
func (c *Config) IsTest() bool {
	return c.AppEnv == "test"
}

// IsProduction reports whether the process runs in production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// ConnectDatabase opens the database selected by DBDRIVER. The test environment always
// gets its own in-memory sqlite database.
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true}

	if cfg.IsTest() {
		dsn := fmt.Sprintf("file:embryo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
		return openSQLite(dsn, gormCfg)
	}

	switch cfg.DBDriver {
	case "", "sqlite":
		return openSQLite(cfg.DBPath+"?_foreign_keys=on", gormCfg)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return gorm.Open(mysql.Open(dsn), gormCfg)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName)
		return gorm.Open(postgres.Open(dsn), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported DBDRIVER %q", cfg.DBDriver)
	}
}

func openSQLite(dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers; a single connection avoids "database is locked".
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
