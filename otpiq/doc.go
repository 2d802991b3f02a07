// Package otpiq provides a client for the OTPiq messaging API.
//
// OTPiq delivers verification codes and custom messages over SMS, WhatsApp
// and Telegram. This package wraps its REST API with typed requests,
// responses and errors.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := otpiq.NewClient("your-api-key", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	resp, err := client.SendMessage(ctx, otpiq.SendMessageRequest{
//		PhoneNumber: "9647701234567",
//		Type:        otpiq.MessageTypeVerification,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("sent code", resp.VerificationCode, "as", resp.SMSID)
//
// When no verification code is given, one of DigitCount digits (default 6)
// is generated. Custom messages require CustomMessage and SenderID and are
// always sent over SMS.
//
// # Error Handling
//
// Every error returned for an API failure is one of the specialized types
// (RateLimitError, InsufficientCreditError, ...) and unwraps to *APIError,
// which carries the Kind, the HTTP status and the raw response body:
//
//	var rl *otpiq.RateLimitError
//	if errors.As(err, &rl) {
//		time.Sleep(time.Duration(rl.WaitMinutes) * time.Minute)
//	}
//
//	if errors.Is(err, otpiq.ErrInsufficientCredit) {
//		// top up
//	}
//
// Requests are never retried by the client.
package otpiq
