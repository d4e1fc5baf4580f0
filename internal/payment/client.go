package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const chargeStatusSucceeded = "succeeded"

type apiResponse struct {
	code int
	body []byte
}

// HTTPClient talks to an intents-style payment processor API. Transport
// failures and 5xx responses count toward the circuit breaker; declined
// charges do not.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[apiResponse]
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	settings := gobreaker.Settings{
		Name:        "payment-provider",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[apiResponse](settings),
	}
}

type createIntentRequest struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
}

type confirmRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

type chargeResponse struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

func (c *HTTPClient) CreateIntent(ctx context.Context, amountMinorUnits int64, currency, reference string) (*Intent, error) {
	if amountMinorUnits <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %d", amountMinorUnits)
	}

	resp, err := c.post(ctx, "/v1/payment_intents", createIntentRequest{
		Amount:    amountMinorUnits,
		Currency:  currency,
		Reference: reference,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	if resp.code != http.StatusOK && resp.code != http.StatusCreated {
		return nil, fmt.Errorf("create payment intent: unexpected status %d", resp.code)
	}

	var intent Intent
	if err := json.Unmarshal(resp.body, &intent); err != nil {
		return nil, fmt.Errorf("decode payment intent: %w", err)
	}
	return &intent, nil
}

func (c *HTTPClient) Confirm(ctx context.Context, intentID string) (*Charge, error) {
	resp, err := c.post(ctx, "/v1/payment_intents/confirm", confirmRequest{
		PaymentIntentID: intentID,
	})
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}

	// 402 carries a decline body, everything else unexpected is an error.
	if resp.code != http.StatusOK && resp.code != http.StatusPaymentRequired {
		return nil, fmt.Errorf("confirm payment: unexpected status %d", resp.code)
	}

	var charge chargeResponse
	if err := json.Unmarshal(resp.body, &charge); err != nil {
		return nil, fmt.Errorf("decode charge: %w", err)
	}

	if charge.Status != chargeStatusSucceeded {
		if charge.Reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, charge.Reason)
		}
		return nil, ErrPaymentDeclined
	}

	return &Charge{PaymentID: charge.PaymentID, Status: charge.Status}, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload interface{}) (apiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return apiResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	return c.breaker.Execute(func() (apiResponse, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return apiResponse{}, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return apiResponse{}, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return apiResponse{}, err
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			return apiResponse{}, fmt.Errorf("provider returned %d", resp.StatusCode)
		}
		return apiResponse{code: resp.StatusCode, body: data}, nil
	})
}
