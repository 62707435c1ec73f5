package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
)

// ===============================
// 主函数
// ===============================

var (
	urlFlag     = kingpin.Flag("url", "要测量的URL").Short('u').Required().String()
	profileFlag = kingpin.Flag("profile", "请求次数（无法解析时按 1 处理）").Short('p').Default("1").String()
	configFlag  = kingpin.Flag("config", "YAML 配置文件路径").Short('c').String()
	verboseFlag = kingpin.Flag("verbose", "输出调试日志").Short('v').Bool()
)

func main() {
	kingpin.Parse()

	// 无法解析为整数时退回默认值 1，非正数直接拒绝
	numberOfRequests, err := strconv.Atoi(*profileFlag)
	if err != nil {
		numberOfRequests = 1
	}
	if numberOfRequests <= 0 {
		fmt.Println("--profile 的值必须大于 0")
		os.Exit(1)
	}

	target, err := url.Parse(*urlFlag)
	if err != nil {
		fmt.Printf("URL 无效: %v\n", err)
		os.Exit(1)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		fmt.Println("只支持 HTTP 和 HTTPS")
		os.Exit(1)
	}
	if target.Hostname() == "" {
		fmt.Println("URL 缺少主机名")
		os.Exit(1)
	}

	config, err := LoadConfig(*configFlag)
	if err != nil {
		fmt.Printf("❌ 加载配置失败: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogger(config, *verboseFlag)
	if err != nil {
		fmt.Printf("❌ 初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	startTime := time.Now()

	profiler, err := NewProfiler(target, numberOfRequests, config)
	if err != nil {
		log.WithError(err).Error("无法创建测量会话")
		os.Exit(1)
	}

	log.Infof("🚀 开始测量 %s（%d 次请求）", target, numberOfRequests)

	// 唯一的致命错误出口：主机不可达等环境性问题在这里终止进程，
	// 单次请求的失败只会出现在最终报告里
	if err := profiler.Run(); err != nil {
		log.WithError(err).Error("遇到无法恢复的连接错误")
		os.Exit(1)
	}

	summary := calculateSummary(profiler.Successes, profiler.Failures)
	printDetailTable(profiler.Successes, profiler.Failures)
	publishReport(summary, profiler.Failures)

	if config.EnableJSON {
		report := NewTestReport(startTime, target, config, profiler, summary)
		jsonPath, err := ExportJSON(report, config.OutputDir)
		if err != nil {
			log.WithError(err).Error("导出 JSON 报告失败")
		} else {
			fmt.Printf("\n📄 JSON 报告: %s\n", jsonPath)
		}
	}

	fmt.Println("\n✅ 测量完成!")
}
