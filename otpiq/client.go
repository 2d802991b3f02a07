package otpiq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Client represents an OTPiq API client. It holds only immutable
// configuration and is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	codeGen    func(int) string
	logger     zerolog.Logger
}

// NewClient creates a new OTPiq client
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if o.timeout > 0 {
		// Copy so a shared client passed through WithHTTPClient is left alone.
		hc := *httpClient
		hc.Timeout = o.timeout
		httpClient = &hc
	}

	return &Client{
		baseURL:    strings.TrimRight(o.baseURL, "/"),
		apiKey:     apiKey,
		userAgent:  o.userAgent,
		httpClient: httpClient,
		codeGen:    o.codeGen,
		logger:     logger,
	}, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs one authenticated HTTP request. A non-nil in is sent as
// the JSON body; on success the response is decoded into out.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Msg("OTPiq API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// GetProjectInfo returns the project name and credit balance
func (c *Client) GetProjectInfo(ctx context.Context) (*ProjectInfo, error) {
	var info ProjectInfo
	if err := c.doRequest(ctx, http.MethodGet, "/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetCredits returns the project's remaining credit
func (c *Client) GetCredits(ctx context.Context) (float64, error) {
	info, err := c.GetProjectInfo(ctx)
	if err != nil {
		return 0, err
	}
	return info.Credit, nil
}

// GetSenderIDs lists the sender ids registered for the project
func (c *Client) GetSenderIDs(ctx context.Context) ([]SenderID, error) {
	var resp SenderIDsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/sender-ids", nil, &resp); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(resp.Data)).Msg("Retrieved sender ids from OTPiq")

	return resp.Data, nil
}

// SendMessage sends a verification or custom message. For verification
// messages the code that was sent is returned in VerificationCode.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*SendMessageResponse, error) {
	payload, err := buildPayload(req, c.codeGen)
	if err != nil {
		return nil, err
	}

	var resp SendMessageResponse
	if err := c.doRequest(ctx, http.MethodPost, "/sms", payload, &resp); err != nil {
		return nil, err
	}

	if payload.SMSType == MessageTypeVerification {
		resp.VerificationCode = payload.VerificationCode
	}

	c.logger.Debug().
		Str("sms_id", resp.SMSID).
		Str("type", string(payload.SMSType)).
		Str("provider", string(payload.Provider)).
		Float64("cost", resp.Cost).
		Msg("Message sent")

	return &resp, nil
}

// SendWhatsApp sends req over WhatsApp, ignoring req.Channel
func (c *Client) SendWhatsApp(ctx context.Context, req SendMessageRequest) (*SendMessageResponse, error) {
	req.Channel = ChannelWhatsApp
	return c.SendMessage(ctx, req)
}

// SendTelegram sends req over Telegram, ignoring req.Channel
func (c *Client) SendTelegram(ctx context.Context, req SendMessageRequest) (*SendMessageResponse, error) {
	req.Channel = ChannelTelegram
	return c.SendMessage(ctx, req)
}

// SendCustomMessage sends a free-text message from an approved sender id
func (c *Client) SendCustomMessage(ctx context.Context, req CustomMessageRequest) (*SendMessageResponse, error) {
	return c.SendMessage(ctx, SendMessageRequest{
		PhoneNumber:   req.PhoneNumber,
		Type:          MessageTypeCustom,
		CustomMessage: req.CustomMessage,
		SenderID:      req.SenderID,
	})
}

// TrackMessage returns the delivery status of a sent message
func (c *Client) TrackMessage(ctx context.Context, smsID string) (*TrackingResult, error) {
	if strings.TrimSpace(smsID) == "" {
		return nil, newValidationError("smsId is required")
	}

	var result TrackingResult
	if err := c.doRequest(ctx, http.MethodGet, "/sms/track/"+url.PathEscape(smsID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMessageStatus is an alias for TrackMessage
func (c *Client) GetMessageStatus(ctx context.Context, smsID string) (*TrackingResult, error) {
	return c.TrackMessage(ctx, smsID)
}
