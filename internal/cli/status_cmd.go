package cli

import (
	"fmt"

	"github.com/alexanderramin/tiendo/internal/cli/formatter"
	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var (
		all   bool
		today dateFlag
	)
	format := newFormatFlag(formatText, formatJSON)

	cmd := &cobra.Command{
		Use:   "status [ID...]",
		Short: "Show construction progress across projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewStatusRequest()
			req.ProjectScope = args
			req.IncludeArchived = all
			req.Now = today.at()

			resp, err := app.Status.GetStatus(cmd.Context(), req)
			if err != nil {
				return err
			}
			if format.value == formatJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatus(resp))
			return nil
		},
	}

	cmd.Flags().Var(format, "format", "Output format: "+format.choices())
	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")
	cmd.Flags().Var(&today, "today", "Pin today's date (DD/MM/YYYY)")
	return cmd
}
