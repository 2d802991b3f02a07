package otpiq

// Channel is the delivery transport for a message
type Channel string

const (
	// ChannelAuto lets OTPiq pick the transport
	ChannelAuto Channel = "auto"
	// ChannelSMS delivers over SMS
	ChannelSMS Channel = "sms"
	// ChannelWhatsApp delivers over WhatsApp
	ChannelWhatsApp Channel = "whatsapp"
	// ChannelTelegram delivers over Telegram
	ChannelTelegram Channel = "telegram"
)

// IsValid checks if the channel is one the API accepts
func (c Channel) IsValid() bool {
	switch c {
	case ChannelAuto, ChannelSMS, ChannelWhatsApp, ChannelTelegram:
		return true
	}
	return false
}

// MessageType selects between OTP and free-text messages
type MessageType string

const (
	// MessageTypeVerification sends a verification code
	MessageTypeVerification MessageType = "verification"
	// MessageTypeCustom sends a caller-written message from a sender id
	MessageTypeCustom MessageType = "custom"
)

// MessageStatus is the delivery state of a sent message
type MessageStatus string

const (
	StatusPending   MessageStatus = "pending"
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusFailed    MessageStatus = "failed"
	StatusExpired   MessageStatus = "expired"
)

// IsFinal reports whether the status will not change anymore
func (s MessageStatus) IsFinal() bool {
	return s == StatusDelivered || s == StatusFailed || s == StatusExpired
}

// PaymentType is the billing mode of a project
type PaymentType string

const (
	PaymentPrepaid  PaymentType = "prepaid"
	PaymentPostpaid PaymentType = "postpaid"
)

// SenderIDStatus is the approval state of a sender id
type SenderIDStatus string

const (
	SenderIDAccepted SenderIDStatus = "accepted"
	SenderIDPending  SenderIDStatus = "pending"
	SenderIDRejected SenderIDStatus = "rejected"
)

// SendMessageRequest describes a message to send.
//
// VerificationCode and DigitCount only apply to verification messages;
// CustomMessage and SenderID are required for custom messages.
type SendMessageRequest struct {
	PhoneNumber      string
	Type             MessageType
	VerificationCode string
	CustomMessage    string
	SenderID         string
	Channel          Channel
	DigitCount       int
}

// CustomMessageRequest is the input of SendCustomMessage
type CustomMessageRequest struct {
	PhoneNumber   string
	CustomMessage string
	SenderID      string
}

// SendMessageResponse is returned by POST /sms. VerificationCode is filled in
// by the client for verification messages.
type SendMessageResponse struct {
	Message          string      `json:"message"`
	SMSID            string      `json:"smsId"`
	RemainingCredit  float64     `json:"remainingCredit"`
	Cost             float64     `json:"cost"`
	CanCover         bool        `json:"canCover"`
	PaymentType      PaymentType `json:"paymentType"`
	VerificationCode string      `json:"verificationCode,omitempty"`
}

// TrackingResult is returned by GET /sms/track/{id}
type TrackingResult struct {
	Status      MessageStatus `json:"status"`
	PhoneNumber string        `json:"phoneNumber"`
	SMSID       string        `json:"smsId"`
	Cost        float64       `json:"cost"`
}

// ProjectInfo is returned by GET /info
type ProjectInfo struct {
	ProjectName string  `json:"projectName"`
	Credit      float64 `json:"credit"`
}

// PricePerSMS holds the per-carrier price of one message
type PricePerSMS struct {
	KorekTelecom float64 `json:"korekTelecom"`
	AsiaCell     float64 `json:"asiaCell"`
	ZainIraq     float64 `json:"zainIraq"`
	Others       float64 `json:"others"`
}

// ForCarrier returns the price for a carrier name, matching the JSON keys.
// Unknown carriers fall back to Others.
func (p PricePerSMS) ForCarrier(carrier string) float64 {
	switch carrier {
	case "korekTelecom":
		return p.KorekTelecom
	case "asiaCell":
		return p.AsiaCell
	case "zainIraq":
		return p.ZainIraq
	default:
		return p.Others
	}
}

// Max returns the highest carrier price
func (p PricePerSMS) Max() float64 {
	return max(p.KorekTelecom, p.AsiaCell, p.ZainIraq, p.Others)
}

// SenderID is an approved or pending message origin for custom messages
type SenderID struct {
	ID          string         `json:"_id"`
	SenderID    string         `json:"senderId"`
	Status      SenderIDStatus `json:"status"`
	PricePerSMS PricePerSMS    `json:"pricePerSms"`
}

// IsAccepted checks if the sender id can be used
func (s *SenderID) IsAccepted() bool {
	return s.Status == SenderIDAccepted
}

// SenderIDsResponse is the envelope of GET /sender-ids
type SenderIDsResponse struct {
	Success bool       `json:"success"`
	Data    []SenderID `json:"data"`
}
