package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Upscayl    UpscaylConfig    `mapstructure:"upscayl"`
	Rembg      RembgConfig      `mapstructure:"rembg"`
	Processing ProcessingConfig `mapstructure:"processing"`
	Cleanup    CleanupConfig    `mapstructure:"cleanup"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type UpscaylConfig struct {
	BinaryPath     string `mapstructure:"binary_path"`
	Model          string `mapstructure:"model"`
	OutputFormat   string `mapstructure:"output_format"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // 外部进程最长运行时间，默认600秒
	DefaultScale   int    `mapstructure:"default_scale"`
	MaxScale       int    `mapstructure:"max_scale"`
}

type RembgConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BinaryPath     string `mapstructure:"binary_path"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // rembg进程最长运行时间，默认600秒
}

type ProcessingConfig struct {
	TempDir           string `mapstructure:"temp_dir"`
	MaxUploadMB       int64  `mapstructure:"max_upload_mb"`
	QPS               int    `mapstructure:"qps"`                 // 每秒允许启动的外部处理数，0表示不限制
	MaxInputDimension int    `mapstructure:"max_input_dimension"` // 输入图片最大边长，超出时先缩小，0表示不限制
}

type CleanupConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	IntervalMinutes int  `mapstructure:"interval_minutes"`
	MaxAgeMinutes   int  `mapstructure:"max_age_minutes"`
}

type TelegramConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	BotToken string  `mapstructure:"bot_token"`
	ChatIDs  []int64 `mapstructure:"chat_ids"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	Output    string `mapstructure:"output"`
	FilePath  string `mapstructure:"file_path"`
	Colorize  bool   `mapstructure:"colorize"`
	AddSource bool   `mapstructure:"add_source"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// 设置默认值
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "5001")
	viper.SetDefault("server.mode", "debug")

	// 外部放大工具默认值
	viper.SetDefault("upscayl.binary_path", "/opt/upscayl/upscayl-bin")
	viper.SetDefault("upscayl.model", "realesrgan-x4plus")
	viper.SetDefault("upscayl.output_format", "png")
	viper.SetDefault("upscayl.timeout_seconds", 600)
	viper.SetDefault("upscayl.default_scale", 4)
	viper.SetDefault("upscayl.max_scale", 16)

	// 背景去除工具默认值
	viper.SetDefault("rembg.enabled", true)
	viper.SetDefault("rembg.binary_path", "rembg")
	viper.SetDefault("rembg.timeout_seconds", 600)

	// 处理流程默认值
	viper.SetDefault("processing.temp_dir", "/tmp/upscayl")
	viper.SetDefault("processing.max_upload_mb", 32)
	viper.SetDefault("processing.qps", 0)
	viper.SetDefault("processing.max_input_dimension", 0)

	// 临时文件清理默认值
	viper.SetDefault("cleanup.enabled", true)
	viper.SetDefault("cleanup.interval_minutes", 10)
	viper.SetDefault("cleanup.max_age_minutes", 60)

	// 通知默认值
	viper.SetDefault("telegram.enabled", false)

	// 日志默认值
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("log.output", "console")
	viper.SetDefault("log.colorize", true)
	viper.SetDefault("log.add_source", false)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
