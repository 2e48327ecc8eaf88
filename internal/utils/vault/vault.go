package vault

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const defaultServiceAccountTokenPath = "/var/run/secrets/kubernetes.io/serviceaccount/token"

// Client reads secrets from a Vault KV v2 mount using Kubernetes auth.
type Client struct {
	http         *resty.Client
	kvSecretPath string
	role         string
	tokenPath    string
	token        string
}

type Option func(*Client)

// WithTokenPath overrides the service account token location.
func WithTokenPath(path string) Option {
	return func(c *Client) { c.tokenPath = path }
}

type loginResponse struct {
	Errors []string `json:"errors"`
	Auth   *struct {
		ClientToken string `json:"client_token"`
	} `json:"auth"`
}

type kvResponse struct {
	Errors []string `json:"errors"`
	Data   *struct {
		Data map[string]any `json:"data"`
	} `json:"data"`
}

// New logs in to Vault and returns a ready client.
func New(addr, kvSecretPath, role string, opts ...Option) (*Client, error) {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(addr, "/")).
			SetTimeout(10 * time.Second),
		kvSecretPath: strings.Trim(kvSecretPath, "/"),
		role:         role,
		tokenPath:    defaultServiceAccountTokenPath,
	}
	for _, opt := range opts {
		opt(c)
	}

	token, err := c.login()
	if err != nil {
		return nil, err
	}
	c.token = token
	return c, nil
}

func (c *Client) login() (string, error) {
	k8sToken, err := os.ReadFile(c.tokenPath)
	if err != nil {
		return "", errors.Wrap(err, "failed to read service account token")
	}

	var result loginResponse
	resp, err := c.http.R().
		SetBody(map[string]string{
			"jwt":  strings.TrimSpace(string(k8sToken)),
			"role": c.role,
		}).
		SetResult(&result).
		SetError(&result).
		Post("/v1/auth/kubernetes/login")
	if err != nil {
		return "", errors.Wrap(err, "vault login request failed")
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("vault authentication failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("vault authentication error: %s", strings.Join(result.Errors, "; "))
	}
	if result.Auth == nil || result.Auth.ClientToken == "" {
		return "", errors.New("vault returned empty client_token")
	}

	return result.Auth.ClientToken, nil
}

// GetKV returns one string value from the configured KV v2 secret.
func (c *Client) GetKV(secretKey string) (string, error) {
	var result kvResponse
	resp, err := c.http.R().
		SetHeader("X-Vault-Token", c.token).
		SetResult(&result).
		SetError(&result).
		Get("/v1/" + c.kvSecretPath)
	if err != nil {
		return "", errors.Wrap(err, "vault KV request failed")
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("vault KV get failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("vault KV get error: %s", strings.Join(result.Errors, "; "))
	}
	if result.Data == nil || result.Data.Data == nil {
		return "", errors.New("vault response missing nested 'data' field")
	}

	raw, ok := result.Data.Data[secretKey]
	if !ok {
		return "", fmt.Errorf("secret key '%s' not found", secretKey)
	}
	secret, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("secret value for key '%s' is not a string", secretKey)
	}
	return secret, nil
}
