package otpiq

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind identifies the category of an OTPiq error.
type Kind string

const (
	// KindAPI is the generic API error kind
	KindAPI Kind = "api"
	// KindUnauthorized indicates an invalid or missing API key
	KindUnauthorized Kind = "unauthorized"
	// KindNotFound indicates the requested resource does not exist
	KindNotFound Kind = "not_found"
	// KindRateLimit indicates too many requests in the current window
	KindRateLimit Kind = "rate_limit"
	// KindInsufficientCredit indicates the project balance cannot cover the message
	KindInsufficientCredit Kind = "insufficient_credit"
	// KindSpendingThreshold indicates the project spending cap would be exceeded
	KindSpendingThreshold Kind = "spending_threshold"
	// KindSenderID indicates a problem with the requested sender id
	KindSenderID Kind = "sender_id"
	// KindTrialMode indicates the project is restricted to trial sends
	KindTrialMode Kind = "trial_mode"
	// KindValidation indicates a rejected or locally invalid request
	KindValidation Kind = "validation"
)

// Sentinel errors for errors.Is checks, one per kind.
var (
	ErrAPI                = errors.New("otpiq API error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrInsufficientCredit = errors.New("insufficient credit")
	ErrSpendingThreshold  = errors.New("spending threshold exceeded")
	ErrSenderID           = errors.New("sender id error")
	ErrTrialMode          = errors.New("account in trial mode")
	ErrValidation         = errors.New("validation error")

	// ErrMissingAPIKey is returned by NewClient when no API key is given.
	ErrMissingAPIKey = errors.New("otpiq API key is required")
)

var kindSentinels = map[Kind]error{
	KindAPI:                ErrAPI,
	KindUnauthorized:       ErrUnauthorized,
	KindNotFound:           ErrNotFound,
	KindRateLimit:          ErrRateLimited,
	KindInsufficientCredit: ErrInsufficientCredit,
	KindSpendingThreshold:  ErrSpendingThreshold,
	KindSenderID:           ErrSenderID,
	KindTrialMode:          ErrTrialMode,
	KindValidation:         ErrValidation,
}

const trialModeMessage = "Account is in trial mode, you can only send sms to your own phone number for verification, add credit to send to other numbers"

// APIError is the base of every OTPiq error. StatusCode is 0 and Body is nil
// for errors raised locally before any request was made.
type APIError struct {
	Kind       Kind
	Message    string
	StatusCode int
	Body       []byte
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("otpiq: status %d: %s", e.StatusCode, e.Message)
	}
	return "otpiq: " + e.Message
}

// Is matches the sentinel error for the error's kind.
func (e *APIError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// UnauthorizedError is returned for 401 responses.
type UnauthorizedError struct {
	APIError
}

func (e *UnauthorizedError) Unwrap() error { return &e.APIError }

// NotFoundError is returned for 404 responses.
type NotFoundError struct {
	APIError
}

func (e *NotFoundError) Unwrap() error { return &e.APIError }

// RateLimitError is returned for 429 responses.
type RateLimitError struct {
	APIError
	WaitMinutes       int
	MaxRequests       int
	TimeWindowMinutes int
}

func (e *RateLimitError) Unwrap() error { return &e.APIError }

// InsufficientCreditError is returned when the project credit cannot cover a send.
type InsufficientCreditError struct {
	APIError
	YourCredit     float64
	RequiredCredit float64
	CanCover       bool
}

func (e *InsufficientCreditError) Unwrap() error { return &e.APIError }

// SpendingThresholdError is returned when a send would exceed the project spending threshold.
type SpendingThresholdError struct {
	APIError
	CurrentSpending   float64
	SpendingThreshold float64
	Cost              float64
}

func (e *SpendingThresholdError) Unwrap() error { return &e.APIError }

// SenderIDError is returned when the server rejects the sender id.
type SenderIDError struct {
	APIError
}

func (e *SenderIDError) Unwrap() error { return &e.APIError }

// TrialModeError is returned when a trial project sends to a foreign number.
type TrialModeError struct {
	APIError
}

func (e *TrialModeError) Unwrap() error { return &e.APIError }

// ValidationError is returned for rejected requests and for requests that
// fail local validation.
type ValidationError struct {
	APIError
}

func (e *ValidationError) Unwrap() error { return &e.APIError }

// KindOf returns the kind of an OTPiq error, or "" if err is not one.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// StatusCodeOf returns the HTTP status carried by an OTPiq error, or 0.
func StatusCodeOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func newValidationError(msg string) error {
	return &ValidationError{APIError{Kind: KindValidation, Message: msg}}
}

// errorBody probes the fields of an error response. The API has no
// discriminant field, so presence of a field selects the error kind.
type errorBody map[string]json.RawMessage

func (b errorBody) has(field string) bool {
	_, ok := b[field]
	return ok
}

func (b errorBody) str(field string) string {
	var s string
	if raw, ok := b[field]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

func (b errorBody) num(field string) float64 {
	var f float64
	if raw, ok := b[field]; ok {
		_ = json.Unmarshal(raw, &f)
	}
	return f
}

func (b errorBody) boolean(field string) bool {
	var v bool
	if raw, ok := b[field]; ok {
		_ = json.Unmarshal(raw, &v)
	}
	return v
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// classifyError maps a non-2xx response to a typed error.
//
// The "trial mode" and "SenderID" checks match free text in the server's
// error message and break if that wording changes.
func classifyError(status int, raw []byte) error {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		body = errorBody{}
	}

	base := func(kind Kind, msg string) APIError {
		return APIError{Kind: kind, Message: msg, StatusCode: status, Body: raw}
	}

	switch status {
	case http.StatusUnauthorized:
		return &UnauthorizedError{base(KindUnauthorized, orDefault(body.str("message"), "Unauthorized"))}

	case http.StatusNotFound:
		return &NotFoundError{base(KindNotFound, orDefault(body.str("message"), "Not found"))}

	case http.StatusTooManyRequests:
		wait := int(body.num("waitMinutes"))
		return &RateLimitError{
			APIError:          base(KindRateLimit, fmt.Sprintf("Rate limit exceeded. Please try again in %d minutes.", wait)),
			WaitMinutes:       wait,
			MaxRequests:       int(body.num("maxRequests")),
			TimeWindowMinutes: int(body.num("timeWindowMinutes")),
		}

	case http.StatusBadRequest:
		errText := body.str("error")
		switch {
		case body.has("requiredCredit"):
			your, required := body.num("yourCredit"), body.num("requiredCredit")
			return &InsufficientCreditError{
				APIError:       base(KindInsufficientCredit, fmt.Sprintf("Insufficient credit. You have %g, but %g is required.", your, required)),
				YourCredit:     your,
				RequiredCredit: required,
				CanCover:       body.boolean("canCover"),
			}
		case body.has("spendingThreshold"):
			current, threshold := body.num("currentSpending"), body.num("spendingThreshold")
			return &SpendingThresholdError{
				APIError:          base(KindSpendingThreshold, fmt.Sprintf("Project spending threshold of %g IQD would be exceeded. Current spending: %g IQD", threshold, current)),
				CurrentSpending:   current,
				SpendingThreshold: threshold,
				Cost:              body.num("cost"),
			}
		case strings.Contains(errText, "trial mode"):
			return &TrialModeError{base(KindTrialMode, trialModeMessage)}
		case strings.Contains(errText, "SenderID"):
			return &SenderIDError{base(KindSenderID, errText)}
		default:
			return &ValidationError{base(KindValidation, orDefault(errText, "Validation error"))}
		}
	}

	msg := orDefault(body.str("error"), orDefault(body.str("message"), "Unknown error occurred"))
	apiErr := base(KindAPI, msg)
	return &apiErr
}
