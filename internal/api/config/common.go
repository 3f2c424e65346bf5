package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Quota     QuotaConfig     `mapstructure:"quota"`
	Logstash  LogstashConfig  `mapstructure:"logstash"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig 原始快照归档库配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type KafkaConfig struct {
	Brokers      []string   `mapstructure:"brokers"`
	Sasl         SaslConfig `mapstructure:"sasl"`
	RefreshTopic string     `mapstructure:"refresh_topic"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ProvidersConfig 上游数据提供方配置
type ProvidersConfig struct {
	Instagram ProviderConfig `mapstructure:"instagram"`
	TikTok    ProviderConfig `mapstructure:"tiktok"`
}

type ProviderConfig struct {
	BaseURL string `mapstructure:"base_url"`
	ApiKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"`
}

// CacheConfig 新鲜度缓存配置
type CacheConfig struct {
	Dir        string `mapstructure:"dir"`
	TTLMinutes int    `mapstructure:"ttl_minutes"`
}

// QuotaConfig 配额配置
type QuotaConfig struct {
	RetentionDays int `mapstructure:"retention_days"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}
