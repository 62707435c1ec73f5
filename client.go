package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ===============================
// 请求与响应处理
// ===============================

// 状态行匹配：只提取状态码，响应头本来就不需要捕获
var statusLineRe = regexp.MustCompile(`^HTTP/1\.1 (.*?) `)

// formatRequest 渲染固定格式的 HTTP/1.1 GET 请求。
// 路径和主机在整个会话中不变，所以只计算一次、每次请求复用。
func formatRequest(target *url.URL, userAgent string) string {
	return fmt.Sprintf(
		"GET %s HTTP/1.1\r\nHost: %s\r\nUser-Agent: %s\r\nAccept: */*\r\nConnection: close\r\n\r\n",
		target.RequestURI(), target.Hostname(), userAgent,
	)
}

// fetch 写入完整请求，然后读取响应直到对端关闭连接
// （请求带 Connection: close，对端读完必然关闭）。
// 计时只覆盖读取阶段，写请求的耗时刻意不计入测量。
func fetch(conn io.ReadWriter, request string) (*ResponseProperties, error) {
	if _, err := io.WriteString(conn, request); err != nil {
		return nil, &AttemptError{Kind: FailureIO, Err: fmt.Errorf("写入请求失败: %w", err)}
	}

	before := time.Now()
	raw, err := io.ReadAll(conn)
	elapsed := time.Since(before)
	if err != nil {
		return nil, &AttemptError{Kind: FailureIO, Err: fmt.Errorf("读取响应失败: %w", err)}
	}

	code, page, err := parseStatusCodeAndPage(raw)
	if err != nil {
		return nil, err
	}

	return &ResponseProperties{
		TimeTaken:  elapsed,
		StatusCode: code,
		Document:   page,
	}, nil
}

// parseStatusCodeAndPage 从原始字节中提取状态码和正文。
// 非法字节序列按 UTF-8 有损替换而不是报错；空响应不算错误，
// 返回状态码 0 和空正文。状态行整体缺失才算解析失败，
// 只有状态码字段本身不是整数时才退化为 0。
func parseStatusCodeAndPage(raw []byte) (int, string, error) {
	text := strings.ToValidUTF8(string(raw), "�")
	if len(text) == 0 {
		return 0, "", nil
	}

	m := statusLineRe.FindStringSubmatch(text)
	if m == nil {
		return 0, "", &AttemptError{Kind: FailureParse, Err: errors.New("响应缺少 HTTP/1.1 状态行")}
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		code = 0
	}

	// 去掉响应头：在第一个空行处切开，保留其后的全部内容；
	// 没有空行时整段文本都当作正文
	parts := strings.SplitN(text, "\r\n\r\n", 2)
	page := parts[len(parts)-1]

	return code, page, nil
}
