package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

var (
	config *viper.Viper
	once   sync.Once
)

// Init 初始化配置
func Init(configFiles ...string) error {
	var err error
	once.Do(func() {
		config = viper.New()
		configFile := "config.yaml"
		if len(configFiles) > 0 {
			configFile = configFiles[0]
		}
		config.SetConfigFile(configFile)

		// 设置默认值
		setDefaults()

		// 读取配置文件
		if err = config.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config file failed: %v", err)
			return
		}

		// 监听配置文件变化
		config.WatchConfig()
	})
	return err
}

// setDefaults 设置默认值
func setDefaults() {
	config.SetDefault("server.port", 8080)
	config.SetDefault("server.host", "")
	config.SetDefault("server.app_name", "slidegen")
	config.SetDefault("server.node_id", 1)
	config.SetDefault("server.print_routes", false)

	config.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	config.SetDefault("gemini.model", "gemini-2.0-flash")
	config.SetDefault("gemini.api_key", "")
	config.SetDefault("gemini.timeout", 120)

	config.SetDefault("output.dir", "generated_presentations")

	config.SetDefault("templates.widescreen", "./assets/templates/template_16_9.pptx")
	config.SetDefault("templates.standard", "./assets/templates/template_4_3.pptx")

	config.SetDefault("cache.max_size", 100)

	config.SetDefault("render.max_concurrent", 4)

	config.SetDefault("log.filename", "logs/app.log")
	config.SetDefault("log.level", "info")
	config.SetDefault("log.max_size", 100)
	config.SetDefault("log.max_backups", 3)
	config.SetDefault("log.max_age", 28)
	config.SetDefault("log.compress", true)

	config.SetDefault("security.allowed_origins", "*")

	config.SetDefault("rate_limit.enabled", true)
	config.SetDefault("rate_limit.max_requests", 5)
	config.SetDefault("rate_limit.duration", 60)
}

// Get 获取配置值
func Get(key string) interface{} {
	return config.Get(key)
}

// GetString 获取字符串配置值
func GetString(key string) string {
	return config.GetString(key)
}

// GetInt 获取整数配置值
func GetInt(key string) int {
	return config.GetInt(key)
}

// GetInt64 获取64位整数配置值
func GetInt64(key string) int64 {
	return config.GetInt64(key)
}

// GetUint64 获取64位无符号整数配置值
func GetUint64(key string) uint64 {
	return config.GetUint64(key)
}

// GetBool 获取布尔配置值
func GetBool(key string) bool {
	return config.GetBool(key)
}

// GetStringSlice 获取字符串切片配置值
func GetStringSlice(key string) []string {
	return config.GetStringSlice(key)
}

// Set 设置配置值
func Set(key string, value interface{}) {
	config.Set(key, value)
}

// IsSet 检查配置值是否已设置
func IsSet(key string) bool {
	return config.IsSet(key)
}

// GetServerAddress 获取服务器地址
func GetServerAddress() string {
	return fmt.Sprintf("%s:%d", GetString("server.host"), GetInt("server.port"))
}
