package main

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func successWith(index int, ms int, code int, doc string) ResponseProperties {
	return ResponseProperties{
		Index:      index,
		TimeTaken:  time.Duration(ms) * time.Millisecond,
		StatusCode: code,
		Document:   doc,
	}
}

func TestCalculateSummaryOrdering(t *testing.T) {
	successes := []ResponseProperties{
		successWith(1, 30, 200, "aa"),
		successWith(2, 10, 200, "a"),
		successWith(3, 20, 200, "aaa"),
	}

	s := calculateSummary(successes, nil)

	if !s.HasLatency {
		t.Fatal("应当有时间统计")
	}
	if s.LatencyMin != 10*time.Millisecond {
		t.Fatalf("最快响应应为 10ms，实际 %v", s.LatencyMin)
	}
	if s.LatencyMedian != 20*time.Millisecond {
		t.Fatalf("中位响应应为 20ms，实际 %v", s.LatencyMedian)
	}
	if s.LatencyMax != 30*time.Millisecond {
		t.Fatalf("最慢响应应为 30ms，实际 %v", s.LatencyMax)
	}
	// min ≤ median ≤ max，均值落在 [min, max] 内
	if s.LatencyMin > s.LatencyMedian || s.LatencyMedian > s.LatencyMax {
		t.Fatal("统计顺序被破坏: min ≤ median ≤ max 不成立")
	}
	if s.LatencyMean < s.LatencyMin || s.LatencyMean > s.LatencyMax {
		t.Fatalf("均值 %v 超出 [%v, %v]", s.LatencyMean, s.LatencyMin, s.LatencyMax)
	}

	if !s.HasSize || s.SizeMin != 1 || s.SizeMax != 3 {
		t.Fatalf("大小统计应为 [1, 3]，实际 [%d, %d]", s.SizeMin, s.SizeMax)
	}
	if !s.HasRepresentative || s.Representative != "aaa" {
		t.Fatalf("代表性正文应为最长的 aaa，实际 %q", s.Representative)
	}
}

func TestCalculateSummaryMedianEven(t *testing.T) {
	// 偶数个样本时取中间两个的平均值（标准中位数定义）
	successes := []ResponseProperties{
		successWith(1, 10, 200, ""),
		successWith(2, 20, 200, ""),
		successWith(3, 30, 200, ""),
		successWith(4, 40, 200, ""),
	}

	s := calculateSummary(successes, nil)
	if s.LatencyMedian != 25*time.Millisecond {
		t.Fatalf("中位响应应为 25ms，实际 %v", s.LatencyMedian)
	}
}

func TestCalculateSummaryEmpty(t *testing.T) {
	// 没有成功响应时各项统计独立退化为不可用，不能出现除零或 NaN
	failures := []AttemptError{
		{Index: 1, Kind: FailureIO, Err: errors.New("读取响应失败")},
		{Index: 2, Kind: FailureParse, Err: errors.New("响应缺少 HTTP/1.1 状态行")},
	}

	s := calculateSummary(nil, failures)

	if s.TotalAttempts != 2 || s.SuccessCount != 0 || s.FailureCount != 2 {
		t.Fatalf("计数不符: %+v", s)
	}
	if s.SuccessPercent != 0 {
		t.Fatalf("成功率应为 0，实际 %v", s.SuccessPercent)
	}
	if s.Non200Percent != 0 {
		t.Fatalf("非200比例应为 0，实际 %v", s.Non200Percent)
	}
	if s.HasLatency || s.HasSize || s.HasRepresentative {
		t.Fatal("没有成功响应时不应有时间/大小/代表性统计")
	}
}

func TestCalculateSummaryAll404(t *testing.T) {
	successes := []ResponseProperties{
		successWith(1, 10, 404, "not found"),
		successWith(2, 12, 404, "not found"),
		successWith(3, 11, 404, "not found"),
	}

	s := calculateSummary(successes, nil)

	if s.TotalAttempts != 3 {
		t.Fatalf("请求总数应为 3，实际 %d", s.TotalAttempts)
	}
	if s.SuccessPercent != 100 {
		t.Fatalf("成功率应为 100%%，实际 %v", s.SuccessPercent)
	}
	if s.Non200Percent != 100 {
		t.Fatalf("非200比例应为 100%%，实际 %v", s.Non200Percent)
	}
	if diff := cmp.Diff([]int{404}, s.Non200Codes); diff != "" {
		t.Fatalf("非200状态码集合不符 (-want +got):\n%s", diff)
	}
}

func TestCalculateSummaryDistinctCodes(t *testing.T) {
	successes := []ResponseProperties{
		successWith(1, 10, 301, ""),
		successWith(2, 10, 404, ""),
		successWith(3, 10, 301, ""),
		successWith(4, 10, 200, ""),
	}

	s := calculateSummary(successes, nil)

	if s.Non200Count != 3 {
		t.Fatalf("非200响应数应为 3，实际 %d", s.Non200Count)
	}
	if s.Non200Percent != 75 {
		t.Fatalf("非200比例应为 75%%，实际 %v", s.Non200Percent)
	}
	if diff := cmp.Diff([]int{301, 404}, s.Non200Codes); diff != "" {
		t.Fatalf("非200状态码集合应去重并升序 (-want +got):\n%s", diff)
	}
}

func TestCalculateSummaryMixed(t *testing.T) {
	successes := []ResponseProperties{successWith(1, 10, 200, "ok")}
	failures := []AttemptError{{Index: 2, Kind: FailureIO, Err: errors.New("读取响应失败")}}

	s := calculateSummary(successes, failures)

	if s.TotalAttempts != 2 {
		t.Fatalf("请求总数应为 2，实际 %d", s.TotalAttempts)
	}
	if s.SuccessPercent != 50 {
		t.Fatalf("成功率应为 50%%，实际 %v", s.SuccessPercent)
	}
	if len(s.Non200Codes) != 0 {
		t.Fatalf("不应有非200状态码，实际 %v", s.Non200Codes)
	}
}
