package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

type Mailer interface {
	SendHTML(to, subject, htmlTpl string, data any) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string        // "Name <no-reply@corpsite.local>" или просто "no-reply@corpsite.local"
	UseTLS   bool          // true = SMTPS (465) или явный TLS-туннель; false = обычный TCP без AUTH
	Timeout  time.Duration // ограничивает dial и IO, вызывающий не виснет на SMTP
}

type mailer struct {
	cfg *Config
}

func New(cfg *Config) Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &mailer{cfg: cfg}
}

func (m *mailer) SendHTML(to, subject, htmlTpl string, data any) error {
	t, err := template.New("email").Parse(htmlTpl)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("exec template: %w", err)
	}

	msg := buildMessage(m.cfg.From, to, subject, body.String())
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	from := parseFromEmail(m.cfg.From)

	// AUTH используем ТОЛЬКО если TLS включен и заданы креды
	var auth smtp.Auth
	if m.cfg.UseTLS && m.cfg.Username != "" && m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if m.cfg.UseTLS {
		return m.sendTLS(addr, auth, from, to, msg)
	}

	return m.sendPlain(addr, from, to, msg)
}

func buildMessage(from, to, subject, htmlBody string) string {
	headers := []string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody
}

func parseFromEmail(from string) string {
	if i := strings.Index(from, "<"); i >= 0 {
		if j := strings.Index(from[i:], ">"); j > 0 {
			return strings.TrimSpace(from[i+1 : i+j])
		}
	}
	return strings.TrimSpace(from)
}

func (m *mailer) sendPlain(addr, from, to, msg string) error {
	conn, err := net.DialTimeout("tcp", addr, m.cfg.Timeout)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(m.cfg.Timeout)); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("new client: %w", err)
	}

	// Без TLS auth не передаём, иначе PlainAuth взорвётся "unencrypted connection"
	return m.transact(c, nil, from, to, msg)
}

func (m *mailer) sendTLS(addr string, auth smtp.Auth, from, to, msg string) error {
	dialer := &net.Dialer{Timeout: m.cfg.Timeout}

	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return fmt.Errorf("dial tls: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(m.cfg.Timeout)); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("new client: %w", err)
	}

	return m.transact(c, auth, from, to, msg)
}

func (m *mailer) transact(c *smtp.Client, auth smtp.Auth, from, to, msg string) error {
	defer func() {
		_ = c.Close()
	}()

	// AUTH только если задан
	if auth != nil {
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return w.Close()
}
