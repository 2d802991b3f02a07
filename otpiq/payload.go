package otpiq

import (
	"fmt"
	"strings"
)

// sendPayload is the JSON body of POST /sms
type sendPayload struct {
	PhoneNumber      string      `json:"phoneNumber"`
	SMSType          MessageType `json:"smsType"`
	Provider         Channel     `json:"provider"`
	VerificationCode string      `json:"verificationCode,omitempty"`
	CustomMessage    string      `json:"customMessage,omitempty"`
	SenderID         string      `json:"senderId,omitempty"`
}

// buildPayload validates req and maps it to the outgoing body in one step.
// Nothing here touches the network.
func buildPayload(req SendMessageRequest, codeGen func(int) string) (sendPayload, error) {
	if req.Type != MessageTypeVerification && req.Type != MessageTypeCustom {
		return sendPayload{}, &APIError{Kind: KindAPI, Message: fmt.Sprintf("Invalid smsType: %s", req.Type)}
	}

	if strings.TrimSpace(req.PhoneNumber) == "" {
		return sendPayload{}, newValidationError("phoneNumber is required")
	}

	switch req.Type {
	case MessageTypeVerification:
		channel := req.Channel
		if channel == "" {
			channel = ChannelAuto
		}
		if !channel.IsValid() {
			return sendPayload{}, newValidationError(fmt.Sprintf("invalid provider: %s", req.Channel))
		}
		// DigitCount only matters when the code is generated here.
		code := req.VerificationCode
		if code == "" {
			if req.DigitCount < 0 {
				return sendPayload{}, newValidationError("digitCount must not be negative")
			}
			code = codeGen(req.DigitCount)
		}
		return sendPayload{
			PhoneNumber:      req.PhoneNumber,
			SMSType:          MessageTypeVerification,
			Provider:         channel,
			VerificationCode: code,
		}, nil

	case MessageTypeCustom:
		if req.CustomMessage == "" {
			return sendPayload{}, newValidationError("customMessage is required for custom SMS type")
		}
		if req.SenderID == "" {
			return sendPayload{}, newValidationError("senderId is required for custom SMS type")
		}
		// Custom messages are only delivered over SMS, whatever the caller asked for.
		return sendPayload{
			PhoneNumber:   req.PhoneNumber,
			SMSType:       MessageTypeCustom,
			Provider:      ChannelSMS,
			CustomMessage: req.CustomMessage,
			SenderID:      req.SenderID,
		}, nil
	}

	// Unreachable: req.Type was checked above.
	return sendPayload{}, &APIError{Kind: KindAPI, Message: fmt.Sprintf("Invalid smsType: %s", req.Type)}
}
