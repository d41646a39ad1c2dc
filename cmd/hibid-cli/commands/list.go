package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"hibid-backend/internal/service"
)

var listPage *string

func init() {
	listPage = listCmd.Flags().String("page", "", "Page number to request, defaults to the first page.")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [--page <n>] [--json]",
	Short: "Lists the companies rendered on the company search page.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadService(cmd.Context())
		if err != nil {
			return err
		}

		res := svc.GetCompanyList(cmd.Context(), service.ListRequest{Page: *listPage})
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

		data := res.Body.Data.(service.CompanyList)
		t := newTable(out)
		t.SetTitle(fmt.Sprintf("page %d (%s)", data.Page, data.Source))
		t.AppendHeader(table.Row{"ID", "Name", "Location", "Profile"})
		for _, company := range data.Companies {
			t.AppendRow(table.Row{idString(company.CompanyId), company.Name, company.Location, company.ProfileUrl})
		}
		total := "unknown"
		if data.TotalCount != nil {
			total = fmt.Sprint(*data.TotalCount)
		}
		t.AppendFooter(table.Row{"", fmt.Sprintf("%d shown", data.PageSize), fmt.Sprintf("%s total", total), ""})
		t.Render()
		return nil
	},
}
