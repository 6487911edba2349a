package action

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

const (
	// DefaultSMTPHost is the mail relay used when none is configured
	DefaultSMTPHost = "email.stocks.com"
	// DefaultSMTPPort is the SMTP port used when none is configured
	DefaultSMTPPort = 25
	// DefaultFromAddress is the sender address of alert emails
	DefaultFromAddress = "alerts@stocks.com"

	emailSubject = "New Stock Alert"
)

// SMTPConfig holds the mail relay settings for EmailAction
type SMTPConfig struct {
	Host string
	Port int
	From string
}

// SendFunc delivers a raw message. It has the shape of smtp.SendMail without
// authentication.
type SendFunc func(addr, from string, to []string, msg []byte) error

// EmailAction sends the alert content by email
type EmailAction struct {
	to   string
	cfg  SMTPConfig
	send SendFunc
}

// NewEmailAction creates an email action delivering to the given recipient
func NewEmailAction(to string, cfg SMTPConfig) *EmailAction {
	if cfg.Host == "" {
		cfg.Host = DefaultSMTPHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultSMTPPort
	}
	if cfg.From == "" {
		cfg.From = DefaultFromAddress
	}

	return &EmailAction{
		to:   to,
		cfg:  cfg,
		send: sendMail,
	}
}

// WithSender replaces the delivery function, e.g. with a fake in tests
func (a *EmailAction) WithSender(send SendFunc) *EmailAction {
	a.send = send
	return a
}

func (a *EmailAction) Execute(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(a.cfg.Host, strconv.Itoa(a.cfg.Port))
	if err := a.send(addr, a.cfg.From, []string{a.to}, a.message(content)); err != nil {
		return fmt.Errorf("failed to send alert email to %s via %s: %w", a.to, addr, err)
	}
	return nil
}

func (a *EmailAction) Name() string {
	return "email"
}

// message renders a plain text email with the standard alert subject
func (a *EmailAction) message(content string) []byte {
	var b strings.Builder
	b.WriteString("Subject: " + emailSubject + "\r\n")
	b.WriteString("From: " + a.cfg.From + "\r\n")
	b.WriteString("To: " + a.to + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(content)
	b.WriteString("\r\n")
	return []byte(b.String())
}

func sendMail(addr, from string, to []string, msg []byte) error {
	return smtp.SendMail(addr, nil, from, to, msg)
}
