package mail

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Sender delivers a rendered message. It reports success and never returns an error;
// delivery is fire and forget.
type Sender interface {
	Send(ctx context.Context, to string, msg Message) bool
}

type providerRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// HTTPSender posts messages to a transactional e-mail API.
type HTTPSender struct {
	url     string
	apiKey  string
	from    string
	timeout time.Duration
	logger  *zap.Logger
}

// NewHTTPSender builds a sender for the provider endpoint.
func NewHTTPSender(url, apiKey, from string, logger *zap.Logger) *HTTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSender{url: url, apiKey: apiKey, from: from, timeout: 10 * time.Second, logger: logger}
}

func (s *HTTPSender) Send(ctx context.Context, to string, msg Message) bool {
	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		s.logger.Warn("email not sent: deadline exceeded", zap.String("to", to))
		return false
	}

	agent := fiber.Post(s.url)
	agent.Set(fiber.HeaderAuthorization, "Bearer "+s.apiKey)
	agent.Timeout(timeout)
	agent.JSON(providerRequest{From: s.from, To: []string{to}, Subject: msg.Subject, HTML: msg.HTML})

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		s.logger.Error("email send failed", zap.String("to", to), zap.Errors("errors", errs))
		return false
	}
	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		s.logger.Error("email provider rejected message",
			zap.String("to", to),
			zap.Int("status", status),
			zap.ByteString("body", body))
		return false
	}
	s.logger.Info("email sent", zap.String("to", to), zap.String("subject", msg.Subject))
	return true
}

// LogSender stands in when no provider is configured. It logs and reports failure.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender builds the fallback sender.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, to string, msg Message) bool {
	s.logger.Info("email provider not configured; message not sent",
		zap.String("to", to),
		zap.String("subject", msg.Subject))
	return false
}
