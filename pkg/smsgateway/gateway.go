package smsgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Gateway dispatches SMS to a phone number. Implementations must honour the
// context and return within their configured timeout.
type Gateway interface {
	// SendOTP delivers a one-time login code.
	SendOTP(ctx context.Context, phone, code string) error
	// SendReminder notifies a defaulter about an unpaid week slot.
	SendReminder(ctx context.Context, phone string, week int) error
}

// TwoFactorGateway sends SMS through the 2factor.in voice/SMS API.
type TwoFactorGateway struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// NewTwoFactorGateway creates a TwoFactorGateway. The HTTP client carries a
// hard timeout so a stalled vendor call surfaces as an error instead of
// hanging the login request.
func NewTwoFactorGateway(baseURL, apiKey string, timeout time.Duration) *TwoFactorGateway {
	if baseURL == "" {
		baseURL = "https://2factor.in/API/V1"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TwoFactorGateway{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SendOTP sends the code via GET {base}/{apiKey}/SMS/{phone}/{code}.
func (g *TwoFactorGateway) SendOTP(ctx context.Context, phone, code string) error {
	return g.send(ctx, phone, code)
}

// SendReminder notifies a defaulter. The vendor template carries a single
// numeric slot, so the week number travels in it.
func (g *TwoFactorGateway) SendReminder(ctx context.Context, phone string, week int) error {
	return g.send(ctx, phone, strconv.Itoa(week))
}

func (g *TwoFactorGateway) send(ctx context.Context, phone, value string) error {
	// The vendor expects a bare national number for Indian MSISDNs.
	cleanPhone := strings.TrimPrefix(phone, "+91")

	endpoint := fmt.Sprintf("%s/%s/SMS/%s/%s",
		g.BaseURL, url.PathEscape(g.APIKey), url.PathEscape(cleanPhone), url.PathEscape(value))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("smsgateway: build request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("smsgateway: request failed: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Status  string `json:"Status"`
		Details string `json:"Details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("smsgateway: unparseable response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || body.Status != "Success" {
		return fmt.Errorf("smsgateway: vendor returned status %q: %s", body.Status, body.Details)
	}

	return nil
}

// MockGateway logs instead of dispatching. Used in development and tests.
type MockGateway struct{}

// NewMockGateway creates a MockGateway
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// SendOTP logs the dispatch and succeeds.
func (g *MockGateway) SendOTP(ctx context.Context, phone, code string) error {
	log.Printf("[Mock SMS Gateway] OTP %s -> %s", code, phone)
	return nil
}

// SendReminder logs the dispatch and succeeds.
func (g *MockGateway) SendReminder(ctx context.Context, phone string, week int) error {
	log.Printf("[Mock SMS Gateway] week %d reminder -> %s", week, phone)
	return nil
}
