package config

import "time"

// Config 配置主体
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"database"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	MinIO   MinIOConfig   `mapstructure:"minio"`
	Upload  UploadConfig  `mapstructure:"upload"`
	OAuth   OAuthConfig   `mapstructure:"oauth"`
	Session SessionConfig `mapstructure:"session"`
	Share   ShareConfig   `mapstructure:"share"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Cron    CronConfig    `mapstructure:"cron"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	PublicURL      string   `mapstructure:"public_url"`
	CookieSecure   bool     `mapstructure:"cookie_secure"`
	MaxUploadMB    int64    `mapstructure:"max_upload_mb"`
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// MaxUploadBytes 单张图片上传上限
func (s ServerConfig) MaxUploadBytes() int64 {
	if s.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return s.MaxUploadMB << 20
}

type LogConfig struct {
	Level           string `mapstructure:"level"`
	LogstashAddress string `mapstructure:"logstash_address"`
	LogstashIndex   string `mapstructure:"logstash_index"`
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver      string `mapstructure:"driver"` // postgres | mysql
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	ExternalUseSSL   bool   `mapstructure:"external_use_ssl"`
}

// UploadConfig 图片存储配置, driver 为 local 或 minio
type UploadConfig struct {
	Driver    string `mapstructure:"driver"`
	Dir       string `mapstructure:"dir"`
	URLPrefix string `mapstructure:"url_prefix"`
}

// OAuthConfig Google 登录配置
type OAuthConfig struct {
	ClientID          string   `mapstructure:"client_id"`
	ClientSecret      string   `mapstructure:"client_secret"`
	RedirectURL       string   `mapstructure:"redirect_url"`
	Scopes            []string `mapstructure:"scopes"`
	StateSecret       string   `mapstructure:"state_secret"`
	StateCookie       string   `mapstructure:"state_cookie"`
	PostLoginRedirect string   `mapstructure:"post_login_redirect"`
}

// SessionConfig 服务端会话配置
type SessionConfig struct {
	CookieName string `mapstructure:"cookie_name"`
	TTLHours   int    `mapstructure:"ttl_hours"`
}

func (s SessionConfig) TTL() time.Duration {
	if s.TTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(s.TTLHours) * time.Hour
}

// ShareConfig 分享链接配置
type ShareConfig struct {
	RefTag      string   `mapstructure:"ref_tag"`
	DefaultType string   `mapstructure:"default_type"`
	MaskIDs     bool     `mapstructure:"mask_ids"`
	MaskKeys    []string `mapstructure:"mask_keys"` // 第一个用于加密, 其余仅用于解密
}

type KafkaConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Brokers  []string       `mapstructure:"brokers"`
	Topic    string         `mapstructure:"topic"`
	GroupID  string         `mapstructure:"group_id"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

// CronConfig 定时任务表达式
type CronConfig struct {
	Trending       string `mapstructure:"trending"`
	SessionCleanup string `mapstructure:"session_cleanup"`
}
