package otpiq

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    Kind
		message string
	}{
		{
			name:    "unauthorized",
			status:  401,
			body:    `{"message":"Invalid API key"}`,
			kind:    KindUnauthorized,
			message: "Invalid API key",
		},
		{
			name:    "unauthorized fallback",
			status:  401,
			body:    `{}`,
			kind:    KindUnauthorized,
			message: "Unauthorized",
		},
		{
			name:    "not found",
			status:  404,
			body:    `{"message":"SMS not found"}`,
			kind:    KindNotFound,
			message: "SMS not found",
		},
		{
			name:    "not found non-json",
			status:  404,
			body:    `Cannot GET /api/nope`,
			kind:    KindNotFound,
			message: "Not found",
		},
		{
			name:    "rate limit",
			status:  429,
			body:    `{"message":"Too many requests","waitMinutes":5,"maxRequests":10,"timeWindowMinutes":60}`,
			kind:    KindRateLimit,
			message: "Rate limit exceeded. Please try again in 5 minutes.",
		},
		{
			name:    "insufficient credit",
			status:  400,
			body:    `{"error":"Insufficient credit","requiredCredit":100,"yourCredit":20,"canCover":false}`,
			kind:    KindInsufficientCredit,
			message: "Insufficient credit. You have 20, but 100 is required.",
		},
		{
			name:    "insufficient credit wins over trial mode text",
			status:  400,
			body:    `{"error":"Account in trial mode","requiredCredit":100,"yourCredit":20}`,
			kind:    KindInsufficientCredit,
			message: "Insufficient credit. You have 20, but 100 is required.",
		},
		{
			name:    "spending threshold",
			status:  400,
			body:    `{"error":"threshold","currentSpending":900,"spendingThreshold":1000,"cost":150}`,
			kind:    KindSpendingThreshold,
			message: "Project spending threshold of 1000 IQD would be exceeded. Current spending: 900 IQD",
		},
		{
			name:    "trial mode",
			status:  400,
			body:    `{"error":"Account in trial mode","foo":"bar"}`,
			kind:    KindTrialMode,
			message: trialModeMessage,
		},
		{
			name:    "trial mode before sender id",
			status:  400,
			body:    `{"error":"SenderID not allowed in trial mode"}`,
			kind:    KindTrialMode,
			message: trialModeMessage,
		},
		{
			name:    "sender id",
			status:  400,
			body:    `{"error":"SenderID MyShop is not approved"}`,
			kind:    KindSenderID,
			message: "SenderID MyShop is not approved",
		},
		{
			name:    "validation",
			status:  400,
			body:    `{"error":"phoneNumber is invalid"}`,
			kind:    KindValidation,
			message: "phoneNumber is invalid",
		},
		{
			name:    "validation fallback",
			status:  400,
			body:    `{}`,
			kind:    KindValidation,
			message: "Validation error",
		},
		{
			name:    "generic error field",
			status:  500,
			body:    `{"error":"database unavailable","message":"ignored"}`,
			kind:    KindAPI,
			message: "database unavailable",
		},
		{
			name:    "generic message field",
			status:  403,
			body:    `{"message":"Forbidden"}`,
			kind:    KindAPI,
			message: "Forbidden",
		},
		{
			name:    "generic fallback",
			status:  502,
			body:    `<html>Bad Gateway</html>`,
			kind:    KindAPI,
			message: "Unknown error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyError(tt.status, []byte(tt.body))
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.body, string(apiErr.Body))

			assert.Equal(t, tt.kind, KindOf(err))
			assert.Equal(t, tt.status, StatusCodeOf(err))
			assert.ErrorIs(t, err, kindSentinels[tt.kind])
		})
	}
}

func TestRateLimitError(t *testing.T) {
	err := classifyError(http.StatusTooManyRequests, []byte(`{"waitMinutes":5,"maxRequests":10,"timeWindowMinutes":60}`))

	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 5, rl.WaitMinutes)
	assert.Equal(t, 10, rl.MaxRequests)
	assert.Equal(t, 60, rl.TimeWindowMinutes)
	assert.Contains(t, rl.Error(), "5")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestInsufficientCreditError(t *testing.T) {
	err := classifyError(http.StatusBadRequest, []byte(`{"error":"Insufficient credit","requiredCredit":100,"yourCredit":20,"canCover":false}`))

	var ic *InsufficientCreditError
	require.ErrorAs(t, err, &ic)
	assert.Equal(t, 20.0, ic.YourCredit)
	assert.Equal(t, 100.0, ic.RequiredCredit)
	assert.False(t, ic.CanCover)
}

func TestSpendingThresholdError(t *testing.T) {
	err := classifyError(http.StatusBadRequest, []byte(`{"currentSpending":900,"spendingThreshold":1000,"cost":150}`))

	var st *SpendingThresholdError
	require.ErrorAs(t, err, &st)
	assert.Equal(t, 900.0, st.CurrentSpending)
	assert.Equal(t, 1000.0, st.SpendingThreshold)
	assert.Equal(t, 150.0, st.Cost)
}

func TestAPIErrorMessage(t *testing.T) {
	t.Run("with status", func(t *testing.T) {
		err := &APIError{Kind: KindAPI, Message: "boom", StatusCode: 500}
		assert.Equal(t, "otpiq: status 500: boom", err.Error())
	})

	t.Run("local", func(t *testing.T) {
		err := newValidationError("senderId is required for custom SMS type")
		assert.Equal(t, "otpiq: senderId is required for custom SMS type", err.Error())
		assert.Zero(t, StatusCodeOf(err))
	})

	t.Run("foreign error", func(t *testing.T) {
		err := errors.New("dial tcp: connection refused")
		assert.Empty(t, KindOf(err))
		assert.Zero(t, StatusCodeOf(err))
	})
}

func TestTrialModeThroughClient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Account in trial mode", "yourCredit": 0})
	})

	_, err := client.SendMessage(context.Background(), SendMessageRequest{
		PhoneNumber: "9647701234567",
		Type:        MessageTypeVerification,
	})

	var tm *TrialModeError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, trialModeMessage, tm.Message)
	assert.Equal(t, http.StatusBadRequest, tm.StatusCode)
}
