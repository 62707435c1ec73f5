package main

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/apex/log"
)

// ===============================
// 连接建立模块
// ===============================

// Dialer 负责为每次请求建立全新的连接。
// 超时参数来自配置而不是全局常量，测试时可以随意调小。
type Dialer struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	roots *x509.CertPool // https 目标的证书信任库，整个会话只初始化一次
}

// NewDialer 创建连接器。https 目标需要加载系统证书信任库，
// 加载失败意味着后续所有请求都无法校验证书，属于致命错误。
func NewDialer(cfg *Config, scheme string) (*Dialer, error) {
	d := &Dialer{
		ConnectTimeout: cfg.ConnectTimeout,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
	}

	if scheme == "https" {
		roots, err := x509.SystemCertPool()
		if err != nil {
			return nil, fmt.Errorf("初始化TLS信任库失败: %w", err)
		}
		d.roots = roots
	}

	return d, nil
}

// Dial 按 scheme 建立本次请求的连接。每次都新建，不做任何复用。
func (d *Dialer) Dial(target *url.URL) (net.Conn, error) {
	if target.Scheme == "https" {
		return d.DialTLS(target)
	}
	return d.DialRegular(target)
}

// DialRegular 依次尝试每个候选地址。net.DialTimeout 不会自动
// 遍历多个解析结果，所以这里自己做回退循环：单个地址失败只记日志，
// 继续尝试下一个；全部失败才返回 ErrNotReachable。
func (d *Dialer) DialRegular(target *url.URL) (net.Conn, error) {
	addrs, err := resolveAddresses(target)
	if err != nil {
		return nil, err
	}

	for _, addr := range addrs {
		conn, err := net.DialTimeout("tcp", addr, d.ConnectTimeout)
		if err != nil {
			log.WithError(err).Warnf("连接 %s 失败", addr)
			continue
		}

		// 建连成功后立刻限定读写时间，避免对端无响应时无限挂起
		if err := conn.SetReadDeadline(time.Now().Add(d.ReadTimeout)); err != nil {
			conn.Close()
			return nil, fmt.Errorf("设置读超时失败: %w", err)
		}
		if err := conn.SetWriteDeadline(time.Now().Add(d.WriteTimeout)); err != nil {
			conn.Close()
			return nil, fmt.Errorf("设置写超时失败: %w", err)
		}

		return conn, nil
	}

	return nil, ErrNotReachable
}

// DialTLS 在普通连接之上协商 TLS 会话，用目标主机名做证书校验。
// 握手失败只影响本次请求，以 AttemptError 返回。
func (d *Dialer) DialTLS(target *url.URL) (net.Conn, error) {
	conn, err := d.DialRegular(target)
	if err != nil {
		return nil, err
	}

	tlsConn := tls.Client(conn, &tls.Config{
		ServerName: target.Hostname(),
		RootCAs:    d.roots,
	})
	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, &AttemptError{Kind: FailureHandshake, Err: err}
	}

	return tlsConn, nil
}

// resolveAddresses 把目标解析成候选地址列表，保持解析器返回的顺序。
// 未显式指定端口时按 scheme 补默认端口。
func resolveAddresses(target *url.URL) ([]string, error) {
	port := target.Port()
	if port == "" {
		if target.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	ips, err := net.LookupIP(target.Hostname())
	if err != nil {
		return nil, fmt.Errorf("解析主机地址失败: %w", err)
	}

	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, net.JoinHostPort(ip.String(), port))
	}

	return addrs, nil
}
