package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"church-site-backend/internal/config"
	"church-site-backend/internal/model"
)

// Classification of gateway failures. Callers pick these apart with
// errors.Is; the wrapped message keeps the upstream status and body.
var (
	ErrBadCredentials      = errors.New("pesapal: invalid consumer credentials")
	ErrAccountDisabled     = errors.New("pesapal: account access denied")
	ErrUpstreamUnavailable = errors.New("pesapal: service unavailable")
	ErrAuthExpired         = errors.New("pesapal: authentication expired")
	ErrInvalidOrder        = errors.New("pesapal: invalid order data")
	ErrNoToken             = errors.New("pesapal: no token issued")
	ErrMalformedResponse   = errors.New("pesapal: malformed response")
)

type PesapalClient interface {
	SubmitOrder(ctx context.Context, order *model.SubmitOrderRequest) (*model.SubmitOrderResponse, error)
	GetTransactionStatus(ctx context.Context, orderTrackingID string) (*model.TransactionStatus, error)

	// Relay variants preserve the upstream status code and body verbatim for
	// the forwarding proxy routes.
	RelayAuth(ctx context.Context) (int, []byte, error)
	RelaySubmitOrder(ctx context.Context, body []byte) (int, []byte, error)
	RelayTransactionStatus(ctx context.Context, orderTrackingID string) (int, []byte, error)
}

type pesapalClientImpl struct {
	httpClient     *http.Client
	baseApiURL     string
	consumerKey    string
	consumerSecret string
}

func NewPesapalClient(pesapalCfg *config.Pesapal) PesapalClient {
	return &pesapalClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:     pesapalCfg.BaseAPIURL,
		consumerKey:    pesapalCfg.ConsumerKey,
		consumerSecret: pesapalCfg.ConsumerSecret,
	}
}

// requestToken exchanges the consumer credentials for a short-lived bearer
// token. A fresh token is fetched for every gateway call; nothing is cached.
func (c *pesapalClientImpl) requestToken(ctx context.Context) (string, error) {
	status, body, err := c.RelayAuth(ctx)
	if err != nil {
		return "", err
	}

	if status < 200 || status >= 300 {
		switch {
		case status == http.StatusUnauthorized:
			return "", fmt.Errorf("%w: %s", ErrBadCredentials, string(body))
		case status == http.StatusForbidden:
			return "", fmt.Errorf("%w: %s", ErrAccountDisabled, string(body))
		case status >= 500:
			return "", fmt.Errorf("%w: status=%d", ErrUpstreamUnavailable, status)
		default:
			return "", fmt.Errorf("pesapal auth failed: status=%d body=%s", status, string(body))
		}
	}

	return parseToken(body)
}

// relayToken fetches a token for the relay endpoints. A token refusal is part
// of the upstream conversation, so a non-2xx auth response comes back with an
// empty token and the refusal's status and body for the caller to pass
// through verbatim.
func (c *pesapalClientImpl) relayToken(ctx context.Context) (string, int, []byte, error) {
	status, body, err := c.RelayAuth(ctx)
	if err != nil {
		return "", 0, nil, err
	}

	if status < 200 || status >= 300 {
		return "", status, body, nil
	}

	token, err := parseToken(body)
	if err != nil {
		return "", 0, nil, err
	}

	return token, status, body, nil
}

func parseToken(body []byte) (string, error) {
	if len(body) == 0 {
		return "", fmt.Errorf("%w: empty auth body", ErrMalformedResponse)
	}

	var res model.PesapalAuthResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedResponse, string(body))
	}
	if res.Error != nil && res.Error.Code != "" {
		return "", fmt.Errorf("pesapal auth error: %s (%s)", res.Error.Message, res.Error.Code)
	}
	if res.Token == "" {
		return "", ErrNoToken
	}

	return res.Token, nil
}

func (c *pesapalClientImpl) SubmitOrder(ctx context.Context, order *model.SubmitOrderRequest) (*model.SubmitOrderResponse, error) {
	token, err := c.requestToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get pesapal access token: %w", err)
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/api/Transactions/SubmitOrderRequest",
		bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read pesapal response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: %s", ErrAuthExpired, string(body))
		case http.StatusBadRequest:
			return nil, fmt.Errorf("%w: %s", ErrInvalidOrder, string(body))
		default:
			return nil, fmt.Errorf("pesapal submit order failed: status=%d body=%s", resp.StatusCode, string(body))
		}
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty order body", ErrMalformedResponse)
	}

	var result model.SubmitOrderResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, string(body))
	}
	if result.Error != nil && result.Error.Code != "" {
		return nil, fmt.Errorf("pesapal order error: %s (%s)", result.Error.Message, result.Error.Code)
	}
	if result.RedirectURL == "" {
		return nil, fmt.Errorf("%w: no redirect_url in order response", ErrMalformedResponse)
	}

	return &result, nil
}

func (c *pesapalClientImpl) GetTransactionStatus(ctx context.Context, orderTrackingID string) (*model.TransactionStatus, error) {
	status, body, err := c.RelayTransactionStatus(ctx, orderTrackingID)
	if err != nil {
		return nil, err
	}

	if status < 200 || status >= 300 {
		if status >= 500 {
			return nil, fmt.Errorf("%w: status=%d", ErrUpstreamUnavailable, status)
		}
		return nil, fmt.Errorf("pesapal transaction status failed: status=%d body=%s", status, string(body))
	}

	var result model.TransactionStatus
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, string(body))
	}

	return &result, nil
}

func (c *pesapalClientImpl) RelayAuth(ctx context.Context) (int, []byte, error) {
	payload, err := json.Marshal(model.PesapalAuthRequest{
		ConsumerKey:    c.consumerKey,
		ConsumerSecret: c.consumerSecret,
	})
	if err != nil {
		return 0, nil, fmt.Errorf("marshal auth payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/api/Auth/RequestToken",
		bytes.NewBuffer(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *pesapalClientImpl) RelaySubmitOrder(ctx context.Context, body []byte) (int, []byte, error) {
	token, status, authBody, err := c.relayToken(ctx)
	if err != nil || token == "" {
		return status, authBody, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/api/Transactions/SubmitOrderRequest",
		bytes.NewBuffer(body))
	if err != nil {
		return 0, nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *pesapalClientImpl) RelayTransactionStatus(ctx context.Context, orderTrackingID string) (int, []byte, error) {
	token, status, authBody, err := c.relayToken(ctx)
	if err != nil || token == "" {
		return status, authBody, err
	}

	statusURL := fmt.Sprintf(
		"%s/api/Transactions/GetTransactionStatus?orderTrackingId=%s",
		c.baseApiURL,
		url.QueryEscape(orderTrackingID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *pesapalClientImpl) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read pesapal response: %w", err)
	}

	return resp.StatusCode, body, nil
}
