package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/casevalue/internal/model"
	"github.com/ppiankov/casevalue/internal/share"
)

// shareCmd represents the share command
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Work with share links",
}

var shareDecodeCmd = &cobra.Command{
	Use:   "decode <token|url>",
	Short: "Decode a share token or link",
	Long: `Decode prints the estimate carried by a share token. The argument may be
a full link, a #share=... fragment or a bare token.

An expired token still shows its case type and jurisdiction so the estimate
can be recomputed, and the command exits with an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		token, err := share.ParseFragment(args[0])
		if err != nil {
			return err
		}

		codec := share.NewCodec(cfg.Share.TTL, nil)
		shared, err := codec.Decode(token)
		out := cmd.OutOrStdout()
		switch {
		case err == nil:
			res := shared.Result
			fmt.Fprintf(out, "%s in %s\n", shared.Context.CaseType.DisplayName(), shared.Context.Jurisdiction)
			fmt.Fprintf(out, "  Estimated value: %s\n", formatRange(res.LowRange, res.Value, res.HighRange))
			fmt.Fprintf(out, "  Factors: %d, caps applied: %d\n", len(res.Factors), len(res.CapsApplied))
			fmt.Fprintf(out, "  Issued:  %s\n", shared.IssuedAt.Format(model.DateLayout))
			fmt.Fprintf(out, "  Expires: %s (%d days left)\n", shared.ExpiresAt.Format(model.DateLayout), codec.DaysUntilExpiry(shared.ExpiresAt))
			if rulesAsJSON {
				return writeJSON(out, shared)
			}
			return nil
		case errors.Is(err, model.ErrExpired):
			fmt.Fprintf(out, "Expired share link for %s in %s (expired %s)\n",
				shared.Context.CaseType.DisplayName(), shared.Context.Jurisdiction, shared.ExpiresAt.Format(model.DateLayout))
			fmt.Fprintf(out, "Recompute with:\n  casevalue estimate --case %s --state %s --answers answers.json\n",
				shared.Context.CaseType, shared.Context.Jurisdiction)
			return err
		default:
			return fmt.Errorf("decode share token: %w", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
	shareCmd.AddCommand(shareDecodeCmd)
	shareDecodeCmd.Flags().BoolVar(&rulesAsJSON, "json", false, "also print the decoded token as JSON")
}
