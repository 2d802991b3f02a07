package otpiq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	tests := []struct {
		digits int
		want   int
	}{
		{0, DefaultDigitCount},
		{-3, DefaultDigitCount},
		{1, 1},
		{4, 4},
		{16, 16},
	}

	for _, tt := range tests {
		code := GenerateCode(tt.digits)
		require.Len(t, code, tt.want)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "non-digit %q in %q", r, code)
		}
	}
}

func TestGenerateCodeUsesAllDigits(t *testing.T) {
	seen := make(map[rune]bool)
	for range 500 {
		for _, r := range GenerateCode(DefaultDigitCount) {
			seen[r] = true
		}
	}
	assert.Len(t, seen, 10)
}

func TestBuildPayload(t *testing.T) {
	fixed := func(int) string { return "123456" }

	t.Run("verification defaults", func(t *testing.T) {
		p, err := buildPayload(SendMessageRequest{PhoneNumber: "964", Type: MessageTypeVerification}, fixed)
		require.NoError(t, err)
		assert.Equal(t, sendPayload{
			PhoneNumber:      "964",
			SMSType:          MessageTypeVerification,
			Provider:         ChannelAuto,
			VerificationCode: "123456",
		}, p)
	})

	t.Run("custom ignores verification fields", func(t *testing.T) {
		p, err := buildPayload(SendMessageRequest{
			PhoneNumber:      "964",
			Type:             MessageTypeCustom,
			CustomMessage:    "hi",
			SenderID:         "MyShop",
			VerificationCode: "999",
			Channel:          ChannelTelegram,
		}, fixed)
		require.NoError(t, err)
		assert.Equal(t, sendPayload{
			PhoneNumber:   "964",
			SMSType:       MessageTypeCustom,
			Provider:      ChannelSMS,
			CustomMessage: "hi",
			SenderID:      "MyShop",
		}, p)
	})

	t.Run("long generated code", func(t *testing.T) {
		p, err := buildPayload(SendMessageRequest{PhoneNumber: "964", Type: MessageTypeVerification, DigitCount: 16}, GenerateCode)
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9]{16}$`, p.VerificationCode)
	})

	t.Run("supplied code ignores digit count", func(t *testing.T) {
		for _, digits := range []int{-1, 16} {
			p, err := buildPayload(SendMessageRequest{
				PhoneNumber:      "964",
				Type:             MessageTypeVerification,
				VerificationCode: "1234",
				DigitCount:       digits,
			}, fixed)
			require.NoError(t, err)
			assert.Equal(t, "1234", p.VerificationCode)
		}
	})

	t.Run("invalid type wins over missing phone", func(t *testing.T) {
		_, err := buildPayload(SendMessageRequest{Type: "broadcast"}, fixed)
		require.Error(t, err)
		assert.Equal(t, KindAPI, KindOf(err))
		assert.Contains(t, err.Error(), "Invalid smsType: broadcast")
	})

	invalid := []struct {
		name string
		req  SendMessageRequest
	}{
		{"missing phone", SendMessageRequest{Type: MessageTypeVerification}},
		{"unknown channel", SendMessageRequest{PhoneNumber: "964", Type: MessageTypeVerification, Channel: "pigeon"}},
		{"negative digit count", SendMessageRequest{PhoneNumber: "964", Type: MessageTypeVerification, DigitCount: -1}},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildPayload(tt.req, fixed)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
