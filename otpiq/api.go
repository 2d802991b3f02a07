package otpiq

import (
	"context"
)

// API defines the interface for OTPiq operations
type API interface {
	// SendMessage sends a verification or custom message
	SendMessage(ctx context.Context, req SendMessageRequest) (*SendMessageResponse, error)

	// SendWhatsApp sends a message over WhatsApp
	SendWhatsApp(ctx context.Context, req SendMessageRequest) (*SendMessageResponse, error)

	// SendTelegram sends a message over Telegram
	SendTelegram(ctx context.Context, req SendMessageRequest) (*SendMessageResponse, error)

	// SendCustomMessage sends a free-text message from a sender id
	SendCustomMessage(ctx context.Context, req CustomMessageRequest) (*SendMessageResponse, error)

	// TrackMessage retrieves the delivery status of a message
	TrackMessage(ctx context.Context, smsID string) (*TrackingResult, error)

	// GetProjectInfo retrieves the project name and credit
	GetProjectInfo(ctx context.Context) (*ProjectInfo, error)

	// GetCredits retrieves the remaining credit
	GetCredits(ctx context.Context) (float64, error)

	// GetSenderIDs lists the project's sender ids
	GetSenderIDs(ctx context.Context) ([]SenderID, error)
}

var _ API = (*Client)(nil)
