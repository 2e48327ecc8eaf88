package payout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/utils/logger"
)

type Client struct {
	http     *resty.Client
	validate *validator.Validate
	currency string
	logger   *logger.Logger
}

func New(appConfig *config.AppConfig, logger *logger.Logger) IPayout {
	timeout := appConfig.Payout.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(appConfig.Payout.APIURL, "/")).
			SetAuthToken(appConfig.Payout.SecretKey).
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
		validate: validator.New(),
		currency: appConfig.Payout.Currency,
		logger:   logger,
	}
}

func (c *Client) Transfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "invalid transfer request")
	}

	var result TransferResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post("/transfers")
	if err != nil {
		c.logger.Error("[Transfer][Post]", map[string]string{
			"error": err.Error(),
		})
		return nil, errors.Wrap(err, "transfer request failed")
	}

	if result.Status == "" {
		return nil, fmt.Errorf("unexpected transfer response, status %d: %s", resp.StatusCode(), resp.String())
	}
	if err := c.validate.Struct(result); err != nil {
		return nil, errors.Wrapf(err, "malformed transfer response, status %d", resp.StatusCode())
	}
	if result.Status == "success" && result.Reference() == "" {
		return nil, fmt.Errorf("malformed transfer response, status %d: missing reference", resp.StatusCode())
	}

	if !result.IsSuccess() {
		c.logger.Info("[Transfer][ProviderFailure]", map[string]string{
			"http_status": resp.Status(),
			"status":      result.Status,
			"message":     result.Message,
		})
	}

	return &result, nil
}

// HealthCheck reads the debit wallet balance as a cheap authenticated probe.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/balances/" + c.currency)
	if err != nil {
		return errors.Wrap(err, "payout provider unreachable")
	}
	if resp.StatusCode() >= 500 || resp.StatusCode() == 401 || resp.StatusCode() == 403 {
		return fmt.Errorf("payout provider health check failed with status %d", resp.StatusCode())
	}
	return nil
}
