package config

import (
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// EnvPrefix 环境变量前缀, 如 PINWALL_DATABASE_DSN 覆盖 database.dsn
const EnvPrefix = "PINWALL"

// LoadConfig 从文件与环境变量加载配置并填充到 Cfg
func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "err", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		log.Warn("config file not found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

// Default 返回只包含默认值的配置, 测试与工具使用
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("server.trusted_proxies", []string{"127.0.0.1"})

	v.SetDefault("log.level", "info")

	// 仅存在默认值的键才能被 AutomaticEnv 覆盖到 Unmarshal 结果中
	v.SetDefault("database.dsn", "")
	v.SetDefault("oauth.client_id", "")
	v.SetDefault("oauth.client_secret", "")
	v.SetDefault("oauth.redirect_url", "")
	v.SetDefault("oauth.state_secret", "")
	v.SetDefault("share.mask_ids", false)
	v.SetDefault("share.mask_keys", []string{})
	v.SetDefault("kafka.enabled", false)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 30)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.pool_size", 20)

	v.SetDefault("mongo.url", "mongodb://127.0.0.1:27017")
	v.SetDefault("mongo.database", "pinwall")

	v.SetDefault("upload.driver", "local")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.url_prefix", "/uploads")

	v.SetDefault("oauth.scopes", []string{"openid", "email", "profile"})
	v.SetDefault("oauth.post_login_redirect", "/")
	v.SetDefault("oauth.state_cookie", "pinwall.oauth_state")

	v.SetDefault("session.cookie_name", "pinwall.sid")
	v.SetDefault("session.ttl_hours", 24*7)

	v.SetDefault("share.ref_tag", "growcampaign")
	v.SetDefault("share.default_type", "copy_link")

	v.SetDefault("kafka.topic", "pinwall.engagement")
	v.SetDefault("kafka.group_id", "pinwall-notifications")
	v.SetDefault("kafka.consumer.session_timeout", 30)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("kafka.consumer.max_processing_time", 10)

	v.SetDefault("cron.trending", "@every 5m")
	v.SetDefault("cron.session_cleanup", "@hourly")
}
