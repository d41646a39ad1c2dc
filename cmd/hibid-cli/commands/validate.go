package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <profile path or url>",
	Short: "Checks whether a url would be fetched by the details command, without fetching it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadService(cmd.Context())
		if err != nil {
			return err
		}
		validated, err := svc.Validate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (company %d)\n", validated.String(), validated.CompanyId())
		return nil
	},
}
