package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// ===============================
// 报告导出模块
// ===============================

// TestReport 完整测量报告（用于 JSON 导出）
type TestReport struct {
	StartTime        time.Time       `json:"start_time"` // 测量开始时间
	EndTime          time.Time       `json:"end_time"`   // 测量结束时间
	Duration         time.Duration   `json:"duration"`   // 总耗时
	Target           string          `json:"target"`     // 目标 URL
	NumberOfRequests int             `json:"number_of_requests"`
	Config           ReportConfig    `json:"config"`   // 配置快照
	Results          []ResultRecord  `json:"results"`  // 按完成顺序的成功记录
	Failures         []FailureRecord `json:"failures"` // 按完成顺序的失败记录
	Summary          Summary         `json:"summary"`  // 汇总统计
}

// ReportConfig 配置快照（用于报告）
type ReportConfig struct {
	UserAgent      string `json:"user_agent"`
	ConnectTimeout string `json:"connect_timeout"`
	ReadTimeout    string `json:"read_timeout"`
	WriteTimeout   string `json:"write_timeout"`
	Interval       string `json:"interval"`
}

// ResultRecord 单次成功请求的导出记录
type ResultRecord struct {
	Index      int     `json:"index"`
	TimeMs     float64 `json:"time_ms"`
	StatusCode int     `json:"status_code"`
	SizeBytes  int     `json:"size_bytes"`
}

// FailureRecord 单次失败请求的导出记录
type FailureRecord struct {
	Index   int    `json:"index"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewTestReport 由完成的测量会话生成报告
func NewTestReport(startTime time.Time, target *url.URL, cfg *Config, p *Profiler, summary Summary) *TestReport {
	report := &TestReport{
		StartTime:        startTime,
		EndTime:          time.Now(),
		Target:           target.String(),
		NumberOfRequests: p.NumberOfRequests,
		Config: ReportConfig{
			UserAgent:      cfg.UserAgent,
			ConnectTimeout: cfg.ConnectTimeout.String(),
			ReadTimeout:    cfg.ReadTimeout.String(),
			WriteTimeout:   cfg.WriteTimeout.String(),
			Interval:       cfg.Interval.String(),
		},
		Results:          make([]ResultRecord, 0, len(p.Successes)),
		Failures:         make([]FailureRecord, 0, len(p.Failures)),
		Summary:          summary,
	}
	report.Duration = report.EndTime.Sub(startTime)

	for _, r := range p.Successes {
		report.Results = append(report.Results, ResultRecord{
			Index:      r.Index,
			TimeMs:     float64(r.TimeTaken.Microseconds()) / 1000.0,
			StatusCode: r.StatusCode,
			SizeBytes:  len(r.Document),
		})
	}
	for _, f := range p.Failures {
		report.Failures = append(report.Failures, FailureRecord{
			Index:   f.Index,
			Kind:    f.Kind.String(),
			Message: f.Error(),
		})
	}

	return report
}

// ExportJSON 导出 JSON 格式报告，返回写入的文件路径
func ExportJSON(report *TestReport, outputDir string) (string, error) {
	reportDir := filepath.Join(outputDir, "reports")
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("创建报告目录失败: %w", err)
	}

	timestamp := report.StartTime.Format("2006-01-02_15-04-05")
	filePath := filepath.Join(reportDir, fmt.Sprintf("%s.json", timestamp))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("JSON 序列化失败: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("写入 JSON 文件失败: %w", err)
	}

	return filePath, nil
}
