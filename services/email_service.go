package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"

	"github.com/Dosada05/hackathon-platform/config"
)

const teamInvitationTemplate = "templates/emails/team_invitation.html"

// InvitationMailer delivers team invitations to people who may not have an account yet.
type InvitationMailer interface {
	SendTeamInvitation(ctx context.Context, msg TeamInvitationEmail) error
}

type TeamInvitationEmail struct {
	To            string
	TeamName      string
	HackathonName string
	InviterName   string
	Message       string
	InviteLink    string
}

type EmailService struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

func NewEmailService(cfg config.SMTPConfig, logger *slog.Logger) *EmailService {
	return &EmailService{cfg: cfg, logger: logger}
}

func (s *EmailService) SendEmail(to []string, subject string, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}
	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + from + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	tlsconfig := &tls.Config{ServerName: s.cfg.Host}

	var client *smtp.Client
	if s.cfg.Port == 465 {
		// Прямое TLS-соединение
		conn, err := tls.Dial("tcp", addr, tlsconfig)
		if err != nil {
			return fmt.Errorf("ошибка TLS соединения: %w", err)
		}
		client, err = smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return fmt.Errorf("ошибка создания SMTP клиента: %w", err)
		}
	} else {
		// STARTTLS (обычно порт 587)
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("ошибка соединения SMTP: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsconfig); err != nil {
			client.Close()
			return fmt.Errorf("ошибка команды STARTTLS: %w", err)
		}
	}
	defer client.Quit()

	if s.cfg.Username != "" {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("ошибка аутентификации SMTP: %w", err)
		}
	}
	if err := client.Mail(s.cfg.FromEmail); err != nil {
		return fmt.Errorf("ошибка MAIL FROM: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("ошибка RCPT TO: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("ошибка команды DATA: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("ошибка записи сообщения: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия DATA: %w", err)
	}
	return nil
}

func (s *EmailService) GenerateEmailBody(templatePath string, data any) (string, error) {
	t, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("ошибка парсинга шаблона %s: %w", templatePath, err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("ошибка выполнения шаблона %s: %w", templatePath, err)
	}
	return body.String(), nil
}

func (s *EmailService) SendTeamInvitation(ctx context.Context, msg TeamInvitationEmail) error {
	subject := fmt.Sprintf("You're invited to join %s", msg.TeamName)
	htmlBody, err := s.GenerateEmailBody(teamInvitationTemplate, msg)
	if err != nil {
		return fmt.Errorf("ошибка генерации тела письма-приглашения: %w", err)
	}
	if err := s.SendEmail([]string{msg.To}, subject, htmlBody); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "team invitation email sent", slog.String("team", msg.TeamName))
	return nil
}

// logMailer stands in when SMTP isn't configured: the link is logged instead.
type logMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) InvitationMailer {
	return logMailer{logger: logger}
}

func (m logMailer) SendTeamInvitation(ctx context.Context, msg TeamInvitationEmail) error {
	m.logger.InfoContext(ctx, "smtp disabled, invitation not emailed",
		slog.String("team", msg.TeamName), slog.String("invite_link", msg.InviteLink))
	return nil
}
