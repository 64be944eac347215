package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/checkout"
	"github.com/ampereshop/storeapi/internal/config"
)

// Client talks to the payment gateway's REST API. Initiate opens a payment
// session for an order and then polls it until the buyer completes or
// abandons the authorization step, so a single call covers the whole
// interactive capture.
type Client struct {
	baseURL      string
	keyID        string
	keySecret    string
	pollInterval time.Duration
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewClient creates a new gateway client
func NewClient(cfg config.GatewayConfig, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	baseURL = strings.TrimSuffix(baseURL, "/")

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}

	return &Client{
		baseURL:      baseURL,
		keyID:        cfg.KeyID,
		keySecret:    cfg.KeySecret,
		pollInterval: pollInterval,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type createSessionRequest struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"` // minor currency units
	Currency string `json:"currency"`
}

type sessionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Gateway session statuses
const (
	statusCreated    = "created"
	statusAuthorized = "authorized"
	statusCaptured   = "captured"
	statusFailed     = "failed"
	statusCancelled  = "cancelled"
)

// Initiate opens a payment session for (orderID, amount) and blocks until
// the session reaches a terminal status or ctx is cancelled. Amount is in
// the grand-total currency unit; the wire format uses minor units.
func (c *Client) Initiate(ctx context.Context, orderID uuid.UUID, amount float64) (checkout.GatewayResult, error) {
	session, err := c.createSession(ctx, orderID, amount)
	if err != nil {
		return checkout.GatewayResult{}, err
	}

	c.logger.Info("payment session created",
		zap.String("order_id", orderID.String()),
		zap.String("session_id", session.ID),
	)

	return c.awaitSession(ctx, session)
}

func (c *Client) createSession(ctx context.Context, orderID uuid.UUID, amount float64) (*sessionResponse, error) {
	payload := createSessionRequest{
		OrderID:  orderID.String(),
		Amount:   int64(math.Round(amount * 100)),
		Currency: "INR",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/payment_sessions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	session, err := c.doSession(req)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// awaitSession polls the session until it is terminal. Cancellation of ctx
// abandons the poll; the caller treats that as a failed capture.
func (c *Client) awaitSession(ctx context.Context, session *sessionResponse) (checkout.GatewayResult, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	current := session
	for {
		switch current.Status {
		case statusCaptured:
			return checkout.GatewayResult{Success: true}, nil
		case statusFailed:
			return checkout.GatewayResult{
				Declined: true,
				Reason:   declineReason(current.Reason),
			}, nil
		case statusCancelled:
			return checkout.GatewayResult{
				Reason: "payment cancelled by buyer",
			}, nil
		}

		select {
		case <-ctx.Done():
			return checkout.GatewayResult{}, ctx.Err()
		case <-ticker.C:
		}

		refreshed, err := c.getSession(ctx, session.ID)
		if err != nil {
			return checkout.GatewayResult{}, err
		}
		current = refreshed
	}
}

func (c *Client) getSession(ctx context.Context, sessionID string) (*sessionResponse, error) {
	url := fmt.Sprintf("%s/v1/payment_sessions/%s", c.baseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	return c.doSession(req)
}

func (c *Client) doSession(req *http.Request) (*sessionResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var session sessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func declineReason(reason string) string {
	if reason == "" {
		return "payment declined"
	}
	return reason
}
