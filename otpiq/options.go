package otpiq

import (
	"net/http"
	"time"
)

// DefaultBaseURL is the OTPiq API root
const DefaultBaseURL = "https://api.otpiq.com/api"

const defaultUserAgent = "otpiq-go"

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	codeGen    func(int) string
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		codeGen:   GenerateCode,
	}
}

// WithBaseURL overrides the API root, e.g. for a proxy or a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout. No timeout is applied by default.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithCodeGenerator replaces the verification code generator.
func WithCodeGenerator(gen func(digits int) string) Option {
	return func(o *clientOptions) {
		if gen != nil {
			o.codeGen = gen
		}
	}
}
