package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	gomail "github.com/wneessen/go-mail"

	"github.com/complyark/dpdpa-portal/internal/notification/model"
	"github.com/complyark/dpdpa-portal/internal/system/config"
	"github.com/complyark/dpdpa-portal/internal/system/log"
)

// EmailSender delivers a rendered message through a mail transport.
type EmailSender interface {
	Send(ctx context.Context, message *model.Message) error
}

// NewEmailSender builds the sender configured in deployment.yaml. When mail
// is disabled a logging no-op sender is returned so lifecycle flows behave
// identically in every environment.
func NewEmailSender(cfg *config.MailConfig) (EmailSender, error) {
	if !cfg.Enabled {
		return &noopSender{}, nil
	}
	switch cfg.Provider {
	case "smtp":
		return newSMTPSender(cfg)
	case "http":
		return newHTTPSender(cfg), nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %q", cfg.Provider)
	}
}

// smtpSender delivers mail over SMTP.
type smtpSender struct {
	client *gomail.Client
	cfg    *config.MailConfig
}

func newSMTPSender(cfg *config.MailConfig) (EmailSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTP.Port),
	}
	if cfg.SMTP.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTP.Username),
			gomail.WithPassword(cfg.SMTP.Password),
		)
	}
	if cfg.SMTP.UseTLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(cfg.SMTP.Hostname, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &smtpSender{client: client, cfg: cfg}, nil
}

func (s *smtpSender) Send(ctx context.Context, message *model.Message) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.FromAddress); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(message.To); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	if len(message.CC) > 0 {
		if err := msg.Cc(message.CC...); err != nil {
			return fmt.Errorf("invalid cc recipients: %w", err)
		}
	}
	msg.Subject(message.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, message.TextBody)
	msg.AddAlternativeString(gomail.TypeTextHTML, message.HTMLBody)

	return s.client.DialAndSendWithContext(ctx, msg)
}

// httpSender delivers mail through an HTTP transactional email provider.
type httpSender struct {
	cfg    *config.MailConfig
	client *http.Client
}

func newHTTPSender(cfg *config.MailConfig) EmailSender {
	return &httpSender{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.HTTP.Timeout},
	}
}

type httpMailPayload struct {
	From     string   `json:"from"`
	FromName string   `json:"fromName,omitempty"`
	To       string   `json:"to"`
	CC       []string `json:"cc,omitempty"`
	Subject  string   `json:"subject"`
	HTMLBody string   `json:"htmlBody"`
	TextBody string   `json:"textBody"`
}

func (s *httpSender) Send(ctx context.Context, message *model.Message) error {
	payload := httpMailPayload{
		From:     s.cfg.FromAddress,
		FromName: s.cfg.FromName,
		To:       message.To,
		CC:       message.CC,
		Subject:  message.Subject,
		HTMLBody: message.HTMLBody,
		TextBody: message.TextBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.HTTP.BaseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.HTTP.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.HTTP.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}
	return nil
}

// noopSender logs instead of delivering. Used when mail is disabled.
type noopSender struct{}

func (s *noopSender) Send(ctx context.Context, message *model.Message) error {
	log.GetLogger().Info("Mail disabled, skipping delivery",
		log.String("to", message.To),
		log.String("subject", message.Subject),
	)
	return nil
}
