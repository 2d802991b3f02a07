package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// trackCmd represents the track command
var trackCmd = &cobra.Command{
	Use:     "track <sms-id>...",
	Aliases: []string{"status"},
	Short:   "Show the delivery status of sent messages",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(args) == 1 {
		result, err := client.TrackMessage(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("SMS ID:       %s\n", result.SMSID)
		fmt.Printf("Phone number: %s\n", result.PhoneNumber)
		fmt.Printf("Status:       %s\n", result.Status)
		fmt.Printf("Cost:         %g\n", result.Cost)
		return nil
	}

	outcomes := client.TrackMessages(ctx, args)

	fmt.Println(strings.Repeat("━", 72))
	fmt.Printf("%-26s %-18s %-12s %s\n", "SMS ID", "PHONE", "STATUS", "COST")
	fmt.Println(strings.Repeat("━", 72))

	var failed int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Printf("%-26s %-18s %-12s %s\n", o.SMSID, "-", "ERROR", explainError(o.Err))
			continue
		}
		fmt.Printf("%-26s %-18s %-12s %g\n", o.SMSID, o.Result.PhoneNumber, o.Result.Status, o.Result.Cost)
	}
	fmt.Println(strings.Repeat("━", 72))

	if failed > 0 {
		return fmt.Errorf("failed to track %d of %d messages", failed, len(outcomes))
	}
	return nil
}
