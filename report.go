package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
)

// ===============================
// 统计计算
// ===============================

// Summary 汇总统计。没有成功响应时各统计项各自标记为不可用，
// 不会出现除零或 NaN。
type Summary struct {
	TotalAttempts  int     `json:"total_attempts"`
	SuccessCount   int     `json:"success_count"`
	FailureCount   int     `json:"failure_count"`
	SuccessPercent float64 `json:"success_percent"`

	// 成功响应中状态码非 200 的部分
	Non200Count   int     `json:"non_200_count"`
	Non200Percent float64 `json:"non_200_percent"`
	Non200Codes   []int   `json:"non_200_codes"` // 去重后升序

	// 响应耗时统计
	HasLatency    bool          `json:"has_latency"`
	LatencyMin    time.Duration `json:"latency_min"`
	LatencyMean   time.Duration `json:"latency_mean"`
	LatencyMedian time.Duration `json:"latency_median"`
	LatencyMax    time.Duration `json:"latency_max"`

	// 正文大小统计（字节）
	HasSize bool `json:"has_size"`
	SizeMin int  `json:"size_min"`
	SizeMax int  `json:"size_max"`

	// 最长的响应正文，作为代表性内容展示
	HasRepresentative bool   `json:"-"`
	Representative    string `json:"-"`
}

// calculateSummary 对完成的成功/失败列表计算汇总统计。
// 中位数用标准定义（偶数个取中间两个的平均值）。
func calculateSummary(successes []ResponseProperties, failures []AttemptError) Summary {
	s := Summary{
		TotalAttempts: len(successes) + len(failures),
		SuccessCount:  len(successes),
		FailureCount:  len(failures),
	}
	if s.TotalAttempts > 0 {
		s.SuccessPercent = float64(s.SuccessCount) / float64(s.TotalAttempts) * 100
	}

	codeSet := make(map[int]struct{})
	durations := make([]float64, 0, len(successes))
	sizes := make([]float64, 0, len(successes))
	repIndex := -1

	for i, r := range successes {
		durations = append(durations, float64(r.TimeTaken))
		sizes = append(sizes, float64(len(r.Document)))

		if r.StatusCode != 200 {
			s.Non200Count++
			codeSet[r.StatusCode] = struct{}{}
		}
		if repIndex < 0 || len(r.Document) > len(successes[repIndex].Document) {
			repIndex = i
		}
	}

	if s.SuccessCount > 0 {
		s.Non200Percent = float64(s.Non200Count) / float64(s.SuccessCount) * 100
	}
	for code := range codeSet {
		s.Non200Codes = append(s.Non200Codes, code)
	}
	sort.Ints(s.Non200Codes)

	// stats 对空输入返回 EmptyInputErr，正好对应"该项统计不可用"
	if min, err := stats.Min(durations); err == nil {
		mean, _ := stats.Mean(durations)
		median, _ := stats.Median(durations)
		max, _ := stats.Max(durations)
		s.LatencyMin = time.Duration(min)
		s.LatencyMean = time.Duration(mean)
		s.LatencyMedian = time.Duration(median)
		s.LatencyMax = time.Duration(max)
		s.HasLatency = true
	}
	if min, err := stats.Min(sizes); err == nil {
		max, _ := stats.Max(sizes)
		s.SizeMin = int(min)
		s.SizeMax = int(max)
		s.HasSize = true
	}
	if repIndex >= 0 {
		s.Representative = successes[repIndex].Document
		s.HasRepresentative = true
	}

	return s
}

// ===============================
// 输出
// ===============================

func durationMs(d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d.Microseconds())/1000.0)
}

// printDetailTable 按请求序号打印每次请求的明细
func printDetailTable(successes []ResponseProperties, failures []AttemptError) {
	fmt.Println("\n📊 请求明细:")

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"序号", "状态码", "耗时(ms)", "正文大小(B)", "错误"}),
	)

	rows := make(map[int][]string, len(successes)+len(failures))
	indexes := make([]int, 0, len(successes)+len(failures))
	for _, r := range successes {
		rows[r.Index] = []string{
			fmt.Sprintf("%d", r.Index),
			fmt.Sprintf("%d", r.StatusCode),
			durationMs(r.TimeTaken),
			fmt.Sprintf("%d", len(r.Document)),
			"",
		}
		indexes = append(indexes, r.Index)
	}
	for _, f := range failures {
		rows[f.Index] = []string{
			fmt.Sprintf("%d", f.Index), "-", "-", "-", f.Error(),
		}
		indexes = append(indexes, f.Index)
	}
	sort.Ints(indexes)

	for _, idx := range indexes {
		table.Append(rows[idx])
	}

	table.Render()
}

// publishReport 输出最终统计报告
func publishReport(s Summary, failures []AttemptError) {
	if s.HasRepresentative {
		fmt.Printf("\n以下是收到的最长响应正文，视为代表性内容:\n\n%q\n", s.Representative)
	} else {
		fmt.Println("\n无法展示代表性响应正文（没有成功的响应）")
	}

	fmt.Println("\n📈 汇总统计:")

	// 各项统计独立退化：没有成功响应时对应行显示 "-"
	na := "-"
	non200Percent := na
	if s.SuccessCount > 0 {
		non200Percent = fmt.Sprintf("%.2f%%", s.Non200Percent)
	}
	latencyMin, latencyMean, latencyMedian, latencyMax := na, na, na, na
	if s.HasLatency {
		latencyMin = durationMs(s.LatencyMin)
		latencyMean = durationMs(s.LatencyMean)
		latencyMedian = durationMs(s.LatencyMedian)
		latencyMax = durationMs(s.LatencyMax)
	}
	sizeMin, sizeMax := na, na
	if s.HasSize {
		sizeMin = fmt.Sprintf("%d", s.SizeMin)
		sizeMax = fmt.Sprintf("%d", s.SizeMax)
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"指标", "值"}),
	)
	table.Append([]string{"请求总数", fmt.Sprintf("%d", s.TotalAttempts)})
	table.Append([]string{"连接成功率", fmt.Sprintf("%.2f%%", s.SuccessPercent)})
	table.Append([]string{"成功响应中非200的比例（含重定向等）", non200Percent})
	table.Append([]string{"出现过的非200状态码", fmt.Sprintf("%v", s.Non200Codes)})
	table.Append([]string{"最快响应(ms)", latencyMin})
	table.Append([]string{"平均响应(ms)", latencyMean})
	table.Append([]string{"中位响应(ms)", latencyMedian})
	table.Append([]string{"最慢响应(ms)", latencyMax})
	table.Append([]string{"最小正文(B)", sizeMin})
	table.Append([]string{"最大正文(B)", sizeMax})
	table.Render()

	if !s.HasLatency {
		fmt.Println("💡 说明: 没有成功的响应，时间与大小统计不可用")
	}

	if len(failures) > 0 {
		fmt.Println("\n遇到的连接错误:")
		for _, f := range failures {
			fmt.Printf("  - [第 %d 次] %s\n", f.Index, f.Error())
		}
	} else {
		fmt.Println("\n没有遇到连接错误")
	}
}
