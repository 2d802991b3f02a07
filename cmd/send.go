package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/otpiq/otpiq"
)

var (
	// Send flags
	messageType   string
	code          string
	customMessage string
	senderID      string
	channel       string
	digitCount    int
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send <phone-number>",
	Short: "Send a verification code or a custom message",
	Long: `Send a message to a phone number.

Verification messages carry a numeric code; when --code is not given a random
code of --digits digits is generated and printed. Custom messages need
--message and --sender-id and are always delivered over SMS.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runSend,
}

// whatsappCmd represents the whatsapp command
var whatsappCmd = &cobra.Command{
	Use:     "whatsapp <phone-number>",
	Short:   "Send a verification code over WhatsApp",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendVerification(cmd, args[0], client.SendWhatsApp)
	},
}

// telegramCmd represents the telegram command
var telegramCmd = &cobra.Command{
	Use:     "telegram <phone-number>",
	Short:   "Send a verification code over Telegram",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendVerification(cmd, args[0], client.SendTelegram)
	},
}

// customCmd represents the custom command
var customCmd = &cobra.Command{
	Use:     "custom <phone-number> <message>",
	Short:   "Send a custom message from a sender id",
	Args:    cobra.ExactArgs(2),
	PreRunE: initializeApp,
	RunE:    runCustom,
}

func init() {
	rootCmd.AddCommand(sendCmd, whatsappCmd, telegramCmd, customCmd)

	sendCmd.Flags().StringVarP(&messageType, "type", "t", string(otpiq.MessageTypeVerification), "message type (verification/custom)")
	sendCmd.Flags().StringVar(&code, "code", "", "verification code to send (generated when empty)")
	sendCmd.Flags().StringVarP(&customMessage, "message", "m", "", "message body for custom messages")
	sendCmd.Flags().StringVarP(&senderID, "sender-id", "s", "", "sender id for custom messages (default from config)")
	sendCmd.Flags().StringVarP(&channel, "channel", "c", "", "delivery channel: auto/sms/whatsapp/telegram (default from config)")
	sendCmd.Flags().IntVar(&digitCount, "digits", 0, "length of the generated code (default from config)")

	for _, c := range []*cobra.Command{whatsappCmd, telegramCmd} {
		c.Flags().StringVar(&code, "code", "", "verification code to send (generated when empty)")
		c.Flags().IntVar(&digitCount, "digits", 0, "length of the generated code (default from config)")
	}

	customCmd.Flags().StringVarP(&senderID, "sender-id", "s", "", "sender id (default from config)")
}

// verificationRequest builds a verification request from flags and config defaults
func verificationRequest(phone string) otpiq.SendMessageRequest {
	digits := digitCount
	if digits == 0 {
		digits = cfg.Defaults.DigitCount
	}
	return otpiq.SendMessageRequest{
		PhoneNumber:      phone,
		Type:             otpiq.MessageTypeVerification,
		VerificationCode: code,
		Channel:          otpiq.Channel(orDefault(channel, cfg.Defaults.Channel)),
		DigitCount:       digits,
	}
}

func runSend(cmd *cobra.Command, args []string) error {
	var req otpiq.SendMessageRequest
	switch otpiq.MessageType(messageType) {
	case otpiq.MessageTypeCustom:
		req = otpiq.SendMessageRequest{
			PhoneNumber:   args[0],
			Type:          otpiq.MessageTypeCustom,
			CustomMessage: customMessage,
			SenderID:      orDefault(senderID, cfg.Defaults.SenderID),
		}
	default:
		req = verificationRequest(args[0])
		req.Type = otpiq.MessageType(messageType)
	}

	return sendAndPrint(cmd.Context(), req, client.SendMessage)
}

func sendVerification(cmd *cobra.Command, phone string, send sendFunc) error {
	return sendAndPrint(cmd.Context(), verificationRequest(phone), send)
}

func runCustom(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	resp, err := client.SendCustomMessage(ctx, otpiq.CustomMessageRequest{
		PhoneNumber:   args[0],
		CustomMessage: args[1],
		SenderID:      orDefault(senderID, cfg.Defaults.SenderID),
	})
	if err != nil {
		return err
	}
	printSendResponse(resp)
	return nil
}

type sendFunc func(context.Context, otpiq.SendMessageRequest) (*otpiq.SendMessageResponse, error)

func sendAndPrint(ctx context.Context, req otpiq.SendMessageRequest, send sendFunc) error {
	logger.Debug().
		Str("phone", req.PhoneNumber).
		Str("type", string(req.Type)).
		Str("channel", string(req.Channel)).
		Msg("Sending message")

	resp, err := send(ctx, req)
	if err != nil {
		return err
	}
	printSendResponse(resp)
	return nil
}

func printSendResponse(resp *otpiq.SendMessageResponse) {
	fmt.Printf("✓ %s\n", orDefault(resp.Message, "Message sent"))
	fmt.Printf("  SMS ID:           %s\n", resp.SMSID)
	if resp.VerificationCode != "" {
		fmt.Printf("  Code:             %s\n", resp.VerificationCode)
	}
	fmt.Printf("  Cost:             %g\n", resp.Cost)
	fmt.Printf("  Remaining credit: %g (%s)\n", resp.RemainingCredit, resp.PaymentType)
	if !resp.CanCover {
		fmt.Println("  ⚠️  Remaining credit may not cover the next message")
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
