package webhook

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/framp/framp-backend/internal/utils/logger"
)

// Client pings uptime monitors after background jobs complete.
type Client struct {
	http   *resty.Client
	logger *logger.Logger
}

func New(logger *logger.Logger) *Client {
	return &Client{
		http:   resty.New().SetTimeout(10 * time.Second),
		logger: logger,
	}
}

// CallUptimeWebhook issues a GET to webhookURL. Failures are logged, never returned.
func (c *Client) CallUptimeWebhook(ctx context.Context, webhookURL string) {
	if webhookURL == "" {
		return
	}

	resp, err := c.http.R().SetContext(ctx).Get(webhookURL)
	if err != nil {
		c.logger.Error("[CallUptimeWebhook][Get]", map[string]string{
			"url":   webhookURL,
			"error": err.Error(),
		})
		return
	}
	if resp.IsError() {
		c.logger.Error("[CallUptimeWebhook][Status]", map[string]string{
			"url":         webhookURL,
			"status_code": resp.Status(),
		})
		return
	}

	c.logger.Debug("[CallUptimeWebhook][Success]", map[string]string{
		"url":         webhookURL,
		"status_code": resp.Status(),
	})
}
