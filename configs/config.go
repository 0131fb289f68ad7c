package configs

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// AppConfig holds the application configuration.
// It's populated once by LoadConfig.
var AppConfig Configuration
var once sync.Once

// Configuration defines the structure for application settings.
// yaml 标签用于可选的 CONFIG_FILE，环境变量优先级更高。
type Configuration struct {
	ServerPort string `yaml:"server_port"`
	GinMode    string `yaml:"gin_mode"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`

	DatabaseURL  string `yaml:"database_url"`
	SQLiteDBPath string `yaml:"sqlite_db_path"`

	UploadFolder string `yaml:"upload_folder"`
	StorageType  string `yaml:"storage_type"`
	S3Bucket     string `yaml:"s3_bucket"`
	S3Region     string `yaml:"s3_region"`
	S3Endpoint   string `yaml:"s3_endpoint"`
	S3AccessKey  string `yaml:"s3_access_key"`
	S3SecretKey  string `yaml:"s3_secret_key"`
	MaxUploadMB  int64  `yaml:"max_upload_mb"`

	SessionSecret   string `yaml:"session_secret"`
	SessionTTLHours int    `yaml:"session_ttl_hours"`
	SessionStore    string `yaml:"session_store"`
	CookieSecure    bool   `yaml:"cookie_secure"`
	RedisAddr       string `yaml:"redis_addr"`
	RedisPassword   string `yaml:"redis_password"`
	RedisDB         int    `yaml:"redis_db"`

	CORSOrigins []string `yaml:"cors_origins"`

	DefaultAdminUsername string `yaml:"default_admin_username"`
	DefaultAdminPassword string `yaml:"default_admin_password"`
}

const (
	defaultSessionSecret = "dashboard_app_secret_key" // Default signing secret, used if env var is not set.
	envSessionSecretKey  = "SESSION_SECRET"           // Environment variable name for the session secret.
	defaultServerPort    = "8080"                     // Default server port.
	envServerPortKey     = "SERVER_PORT"              // Environment variable name for the server port.
	envConfigFileKey     = "CONFIG_FILE"              // 可选 YAML 配置文件路径
)

// SessionTTL 返回会话有效期
func (c Configuration) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// MaxUploadBytes 返回请求体大小上限（字节）
func (c Configuration) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

// Defaults returns the built-in configuration used before any file or env override.
func Defaults() Configuration {
	return Configuration{
		ServerPort:           defaultServerPort,
		GinMode:              "debug",
		LogLevel:             "info",
		LogFormat:            "text",
		SQLiteDBPath:         "data/dashboard.db",
		UploadFolder:         "uploads",
		StorageType:          "local",
		MaxUploadMB:          500,
		SessionSecret:        defaultSessionSecret,
		SessionTTLHours:      24,
		SessionStore:         "memory",
		CORSOrigins:          []string{"*"},
		DefaultAdminUsername: "Admin",
		DefaultAdminPassword: "Admin",
	}
}

// LoadConfig loads configuration from defaults, an optional YAML file, .env and environment variables.
// It should be called once at application startup.
func LoadConfig() {
	once.Do(func() {
		_ = godotenv.Load() // .env 不存在时忽略

		cfg := Defaults()
		if path := os.Getenv(envConfigFileKey); path != "" {
			if err := loadYAML(path, &cfg); err != nil {
				logrus.Warnf("无法读取配置文件 %s: %v，继续使用默认值和环境变量", path, err)
			}
		}
		applyEnv(&cfg)

		if os.Getenv(envSessionSecretKey) == "" && cfg.SessionSecret == defaultSessionSecret {
			logrus.Warnf("警告: %s 环境变量未设置。正在使用默认的会话签名密钥。请在生产环境中设置此变量以保证安全。", envSessionSecretKey)
		}
		if cfg.DefaultAdminPassword == "Admin" {
			logrus.Warn("警告: 默认管理员密码仍为 Admin，请在首次登录后修改。")
		}

		AppConfig = cfg
		logrus.Info("应用配置已加载。")
	})
}

func loadYAML(path string, cfg *Configuration) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnv 用环境变量覆盖配置项，未设置的保持原值
func applyEnv(cfg *Configuration) {
	setString(&cfg.ServerPort, envServerPortKey)
	setString(&cfg.GinMode, "GIN_MODE")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.SQLiteDBPath, "SQLITE_DB_PATH")
	setString(&cfg.UploadFolder, "UPLOAD_FOLDER")
	setString(&cfg.StorageType, "STORAGE_TYPE")
	setString(&cfg.S3Bucket, "S3_BUCKET")
	setString(&cfg.S3Region, "S3_REGION")
	setString(&cfg.S3Endpoint, "S3_ENDPOINT")
	setString(&cfg.S3AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.S3SecretKey, "S3_SECRET_KEY")
	setString(&cfg.SessionSecret, envSessionSecretKey)
	setString(&cfg.SessionStore, "SESSION_STORE")
	setString(&cfg.RedisAddr, "REDIS_ADDR")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.DefaultAdminUsername, "DEFAULT_ADMIN_USERNAME")
	setString(&cfg.DefaultAdminPassword, "DEFAULT_ADMIN_PASSWORD")

	setInt(&cfg.SessionTTLHours, "SESSION_TTL_HOURS")
	setInt(&cfg.RedisDB, "REDIS_DB")
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadMB = n
		} else {
			logrus.Warnf("信息: MAX_UPLOAD_MB=%q 无效，使用 %d", v, cfg.MaxUploadMB)
		}
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		cfg.CookieSecure = v == "true" || v == "1"
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitNonEmpty(v)
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("信息: %s=%q 不是整数，使用 %d", key, v, *dst)
		return
	}
	*dst = n
}

func splitNonEmpty(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
