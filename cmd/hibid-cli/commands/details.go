package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"hibid-backend/internal/scrapers/hibid"
	"hibid-backend/internal/service"
)

func init() {
	rootCmd.AddCommand(detailsCmd)
}

var detailsCmd = &cobra.Command{
	Use:   "details <profile path or url> [--json]",
	Short: "Prints the contact details of a single company.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadService(cmd.Context())
		if err != nil {
			return err
		}

		res := svc.GetCompanyDetails(cmd.Context(), service.DetailsRequest{Url: args[0]})
		out := cmd.OutOrStdout()
		if *asJson {
			err = printJson(out, res.Body)
			if err != nil {
				return err
			}
			return statusError(res)
		}
		if err := statusError(res); err != nil {
			return err
		}

		company := res.Body.Data.(hibid.CompanyDetails)
		t := newTable(out)
		t.SetTitle(company.Name)
		t.AppendRows([]table.Row{
			{"ID", idString(company.CompanyId)},
			{"Location", company.Location},
			{"Address", company.Address},
			{"Postal code", company.PostalCode},
			{"Phone", company.Phone},
			{"Email", company.Email},
			{"Website", company.Website},
			{"Fax", company.Fax},
			{"Profile", company.ProfileUrl},
		})
		t.Render()
		return nil
	},
}
