package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/multi"
	"github.com/apex/log/handlers/text"
)

// ===============================
// 日志模块
// ===============================

// setupLogger 初始化日志：始终输出到控制台，
// 启用文件日志时同时写入 <输出目录>/logs/<时间戳>.log。
// 返回的函数用于在退出前关闭日志文件。
func setupLogger(cfg *Config, verbose bool) (func(), error) {
	handlers := []log.Handler{cli.New(os.Stderr)}
	closer := func() {}

	if cfg.EnableLog {
		logDir := filepath.Join(cfg.OutputDir, "logs")
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("创建日志目录失败: %w", err)
		}

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		logPath := filepath.Join(logDir, fmt.Sprintf("%s.log", timestamp))
		file, err := os.Create(logPath)
		if err != nil {
			return nil, fmt.Errorf("创建日志文件失败: %w", err)
		}

		handlers = append(handlers, text.New(file))
		closer = func() { file.Close() }
	}

	log.SetHandler(multi.New(handlers...))
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	return closer, nil
}
