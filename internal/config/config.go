package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string

	// 结果链接的根地址与搜索页地址
	SiteOrigin    string
	SearchOrigins []string
	SearchParams  string

	RecencyWindow time.Duration

	FetchBackend string
	FetchTimeout time.Duration
	MaxBodyBytes int
	UserAgent    string

	// RedisAddr 为空时不启用缓存
	RedisAddr string
	CacheTTL  time.Duration

	WarmTopics   []string
	WarmCronSpec string

	LogLevel  string
	LogFormat string

	BasicAuthUser string
	BasicAuthPass string
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8000")
	v.SetDefault("SITE_ORIGIN", "https://news.google.com/")
	v.SetDefault("SEARCH_ORIGINS", "https://news.google.com")
	v.SetDefault("SEARCH_PARAMS", "")
	v.SetDefault("RECENCY_WINDOW", "23h59m")
	v.SetDefault("FETCH_BACKEND", "resty")
	v.SetDefault("FETCH_TIMEOUT", "20s")
	v.SetDefault("MAX_BODY_BYTES", 4<<20)
	v.SetDefault("USER_AGENT", "NewsRadarBot/1.0")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("WARM_TOPICS", "")
	v.SetDefault("WARM_CRON_SPEC", "*/30 * * * *")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("APP_BASIC_USER", "")
	v.SetDefault("APP_BASIC_PASS", "")
}

// Load 读取环境变量（可选 .env 文件），未设置时使用默认值
func Load() *Config {
	// .env 不存在时忽略，进程环境变量优先
	_ = godotenv.Load()

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	return &Config{
		AppPort:       v.GetString("APP_PORT"),
		SiteOrigin:    v.GetString("SITE_ORIGIN"),
		SearchOrigins: splitList(v.GetString("SEARCH_ORIGINS")),
		SearchParams:  v.GetString("SEARCH_PARAMS"),
		RecencyWindow: v.GetDuration("RECENCY_WINDOW"),
		FetchBackend:  v.GetString("FETCH_BACKEND"),
		FetchTimeout:  v.GetDuration("FETCH_TIMEOUT"),
		MaxBodyBytes:  v.GetInt("MAX_BODY_BYTES"),
		UserAgent:     v.GetString("USER_AGENT"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		CacheTTL:      v.GetDuration("CACHE_TTL"),
		WarmTopics:    splitList(v.GetString("WARM_TOPICS")),
		WarmCronSpec:  v.GetString("WARM_CRON_SPEC"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		BasicAuthUser: v.GetString("APP_BASIC_USER"),
		BasicAuthPass: v.GetString("APP_BASIC_PASS"),
	}
}

// splitList 解析逗号分隔的列表，忽略空项
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
