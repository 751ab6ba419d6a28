package payment

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com"

// Config holds the Razorpay credentials and endpoint. The key id is public
// (it is handed to the browser); the key secret signs callbacks and must
// never leave the server.
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
}

// Client is a thin adapter over the Razorpay order API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new payment gateway client from explicit configuration.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// KeyID returns the public key identifier for client-side payment UI.
func (c *Client) KeyID() string {
	return c.cfg.KeyID
}

type intentRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

type intentResponse struct {
	ID string `json:"id"`
}

// CreateIntent creates a provider-side order for the given total and returns
// the provider's order id. The amount is converted to paise (minor units) by
// truncation. The local order id rides along as receipt and note so the
// provider record can be correlated back.
func (c *Client) CreateIntent(total float64, orderID string) (string, error) {
	payload := intentRequest{
		Amount:   int64(total * 100), // Razorpay uses paise
		Currency: "INR",
		Receipt:  fmt.Sprintf("order_%s", orderID),
		Notes:    map[string]string{"order_id": orderID},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payment intent request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.cfg.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build payment intent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("failed to read payment provider response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment provider rejected order creation (status %d): %s", resp.StatusCode, respBody)
	}

	var intent intentResponse
	if err := json.Unmarshal(respBody, &intent); err != nil {
		return "", fmt.Errorf("failed to decode payment provider response: %w", err)
	}
	if intent.ID == "" {
		return "", fmt.Errorf("payment provider returned no order id")
	}
	return intent.ID, nil
}

// VerifySignature checks the provider's callback signature: HMAC-SHA256 of
// "<provider order id>|<payment id>" keyed with the key secret. It returns
// false on any failure, including malformed input; it never panics or
// returns an error, so callers treat false exactly like a failed payment.
func (c *Client) VerifySignature(providerOrderID, paymentID, signature string) bool {
	if providerOrderID == "" || paymentID == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.cfg.KeySecret))
	mac.Write([]byte(providerOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
