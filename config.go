package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ===============================
// 配置加载模块
// ===============================

// 默认值
const (
	defaultUserAgent      = "curl/7.58.0"
	defaultConnectTimeout = 5 * time.Second
	defaultReadTimeout    = 3 * time.Second
	defaultWriteTimeout   = 3 * time.Second
	defaultOutputDir      = "./output"
)

// Config 运行时配置
type Config struct {
	UserAgent      string        // 请求使用的 User-Agent
	ConnectTimeout time.Duration // 单个候选地址的连接超时
	ReadTimeout    time.Duration // 建连后的读超时
	WriteTimeout   time.Duration // 建连后的写超时
	Interval       time.Duration // 两次请求之间的间隔

	// 输出配置
	OutputDir  string // 输出目录
	EnableLog  bool   // 是否写日志文件
	EnableJSON bool   // 是否生成 JSON 报告
}

// ===============================
// YAML 配置结构
// ===============================

type yamlConfig struct {
	UserAgent      string `yaml:"user_agent"`
	ConnectTimeout string `yaml:"connect_timeout"`
	ReadTimeout    string `yaml:"read_timeout"`
	WriteTimeout   string `yaml:"write_timeout"`
	Interval       string `yaml:"interval"`
	Output         struct {
		Dir        string `yaml:"dir"`
		EnableLog  bool   `yaml:"enable_log"`
		EnableJSON bool   `yaml:"enable_json"`
	} `yaml:"output"`
}

// DefaultConfig 返回全部默认值的配置
func DefaultConfig() *Config {
	return &Config{
		UserAgent:      defaultUserAgent,
		ConnectTimeout: defaultConnectTimeout,
		ReadTimeout:    defaultReadTimeout,
		WriteTimeout:   defaultWriteTimeout,
		OutputDir:      defaultOutputDir,
	}
}

// LoadConfig 从 YAML 文件加载配置；path 为空时直接使用默认值
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if yc.UserAgent != "" {
		cfg.UserAgent = yc.UserAgent
	}

	// 时长字段解析失败时保留默认值
	if d, err := time.ParseDuration(yc.ConnectTimeout); err == nil {
		cfg.ConnectTimeout = d
	}
	if d, err := time.ParseDuration(yc.ReadTimeout); err == nil {
		cfg.ReadTimeout = d
	}
	if d, err := time.ParseDuration(yc.WriteTimeout); err == nil {
		cfg.WriteTimeout = d
	}
	if d, err := time.ParseDuration(yc.Interval); err == nil {
		cfg.Interval = d
	}

	if yc.Output.Dir != "" {
		cfg.OutputDir = yc.Output.Dir
	}
	cfg.EnableLog = yc.Output.EnableLog
	cfg.EnableJSON = yc.Output.EnableJSON

	return cfg, nil
}
