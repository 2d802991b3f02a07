package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/otpiq/filter"
	"github.com/s0up4200/otpiq/otpiq"
)

var (
	filterExpr string
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:     "info",
	Short:   "Show project name and credit",
	Long:    `Show the OTPiq project bound to the API key and its remaining credit. Useful to test the connection.`,
	PreRunE: initializeApp,
	RunE:    runInfo,
}

// creditsCmd represents the credits command
var creditsCmd = &cobra.Command{
	Use:     "credits",
	Short:   "Print the remaining project credit",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		credit, err := client.GetCredits(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%g\n", credit)
		return nil
	},
}

// senderIDsCmd represents the sender-ids command
var senderIDsCmd = &cobra.Command{
	Use:   "sender-ids",
	Short: "List sender ids and their per-carrier prices",
	Long: `List the sender ids registered for the project.

Use --filter with an expression to narrow the list, for example:
  accepted()
  accepted() and maxPrice() < 100
  contains(SenderID, "shop") or Status == "pending"
  priceFor("asiaCell") <= 90`,
	PreRunE: initializeApp,
	RunE:    runSenderIDs,
}

func init() {
	rootCmd.AddCommand(infoCmd, creditsCmd, senderIDsCmd)

	senderIDsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
}

func runInfo(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to OTPiq at %s...\n", cfg.BaseURL)

	info, err := client.GetProjectInfo(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("\nProject: %s\n", info.ProjectName)
	fmt.Printf("Credit:  %g\n", info.Credit)
	return nil
}

func runSenderIDs(cmd *cobra.Command, args []string) error {
	var f *filter.ExprFilter
	if filterExpr != "" {
		var err error
		f, err = filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	senders, err := client.GetSenderIDs(cmd.Context())
	if err != nil {
		return err
	}

	if f != nil {
		var errs []error
		senders, errs = f.Apply(senders)
		for _, e := range errs {
			logger.Warn().Err(e).Msg("Skipping sender id")
		}
	}

	if len(senders) == 0 {
		fmt.Println("No sender ids found.")
		return nil
	}

	fmt.Println(strings.Repeat("━", 85))
	fmt.Printf("%-20s %-10s %-12s %-10s %-10s %s\n", "SENDER ID", "STATUS", "KOREK", "ASIACELL", "ZAIN", "OTHERS")
	fmt.Println(strings.Repeat("━", 85))
	for _, s := range senders {
		p := s.PricePerSMS
		fmt.Printf("%-20s %-10s %-12g %-10g %-10g %g\n", s.SenderID, statusLabel(s.Status), p.KorekTelecom, p.AsiaCell, p.ZainIraq, p.Others)
	}
	fmt.Println(strings.Repeat("━", 85))

	return nil
}

func statusLabel(s otpiq.SenderIDStatus) string {
	switch s {
	case otpiq.SenderIDAccepted:
		return "✓ " + string(s)
	case otpiq.SenderIDRejected:
		return "✗ " + string(s)
	default:
		return string(s)
	}
}
