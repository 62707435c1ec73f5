package main

import (
	"errors"
	"net/url"
	"time"

	"github.com/apex/log"
)

// ===============================
// 测量循环
// ===============================

// Profiler 一次完整的测量会话：串行执行指定次数的请求，
// 把结果按完成顺序归入成功和失败两个列表。
type Profiler struct {
	Target           *url.URL
	NumberOfRequests int

	dialer           *Dialer
	interval         time.Duration
	formattedRequest string

	Successes []ResponseProperties
	Failures  []AttemptError
}

// NewProfiler 创建测量会话。目标 URL 和请求次数由调用方校验；
// TLS 信任库初始化失败在这里直接返回致命错误。
func NewProfiler(target *url.URL, numberOfRequests int, cfg *Config) (*Profiler, error) {
	dialer, err := NewDialer(cfg, target.Scheme)
	if err != nil {
		return nil, err
	}

	return &Profiler{
		Target:           target,
		NumberOfRequests: numberOfRequests,
		dialer:           dialer,
		interval:         cfg.Interval,
		formattedRequest: formatRequest(target, cfg.UserAgent),
	}, nil
}

// Run 串行执行全部请求，每次都建立全新连接，互不影响。
// 返回非 nil 错误表示环境已经不支持任何请求（如主机完全不可达），
// 调用方应当终止会话；单次请求的失败不会中断循环。
func (p *Profiler) Run() error {
	for i := 1; i <= p.NumberOfRequests; i++ {
		if i > 1 && p.interval > 0 {
			time.Sleep(p.interval)
		}
		if err := p.attempt(i); err != nil {
			return err
		}
	}
	return nil
}

// attempt 执行单次请求。连接无论成败都在本次请求结束时关闭。
func (p *Profiler) attempt(index int) error {
	conn, err := p.dialer.Dial(p.Target)
	if err != nil {
		return p.record(index, err)
	}
	defer conn.Close()

	resp, err := fetch(conn, p.formattedRequest)
	if err != nil {
		return p.record(index, err)
	}

	resp.Index = index
	p.Successes = append(p.Successes, *resp)
	log.Debugf("第 %d 次请求完成: 状态码 %d, 耗时 %s, %d 字节",
		index, resp.StatusCode, resp.TimeTaken, len(resp.Document))
	return nil
}

// record 区分两类错误：AttemptError 只计入失败列表，
// 其余错误（主机不可达、解析失败等环境性问题）原样上抛，
// 由顶层统一决定是否终止进程。
func (p *Profiler) record(index int, err error) error {
	var ae *AttemptError
	if !errors.As(err, &ae) {
		return err
	}

	ae.Index = index
	p.Failures = append(p.Failures, *ae)
	log.WithError(ae.Err).Debugf("第 %d 次请求失败: %s", index, ae.Kind)
	return nil
}
