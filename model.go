package main

import (
	"errors"
	"fmt"
	"time"
)

// ===============================
// 数据模型
// ===============================

// 所有候选地址都连不上时返回的致命错误
var ErrNotReachable = errors.New("无法连接到URL: 没有可达的主机")

// ResponseProperties 单次成功请求的测量结果
type ResponseProperties struct {
	Index      int           // 请求序号（从 1 开始）
	TimeTaken  time.Duration // 读取完整响应的耗时（不含写请求）
	StatusCode int           // HTTP状态码（无法解析数字时为 0）
	Document   string        // 响应正文（按 UTF-8 有损解码）
}

// FailureKind 失败类别。用封闭枚举代替开放式的错误多态，
// 已知的失败类型一目了然，报告时也好归类。
type FailureKind int

const (
	FailureConnect   FailureKind = iota // 连接阶段失败
	FailureHandshake                    // TLS 握手失败
	FailureIO                           // 读写失败
	FailureParse                        // 状态行解析失败
)

func (k FailureKind) String() string {
	switch k {
	case FailureConnect:
		return "连接失败"
	case FailureHandshake:
		return "TLS握手失败"
	case FailureIO:
		return "读写失败"
	case FailureParse:
		return "解析失败"
	default:
		return "未知失败"
	}
}

// AttemptError 单次失败请求的记录。只影响当次请求，
// 测量循环会把它计入失败列表然后继续下一次。
type AttemptError struct {
	Index int // 请求序号（从 1 开始）
	Kind  FailureKind
	Err   error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}
