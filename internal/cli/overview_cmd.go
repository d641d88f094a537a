package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/tiendo/internal/cli/formatter"
	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/svg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newOverviewCmd(app *App) *cobra.Command {
	var (
		all        bool
		pick       bool
		browse     bool
		today      dateFlag
		ppd        float64
		pad        int
		daysPerCol int
		output     string
	)
	format := newFormatFlag(formatText, formatJSON, formatSVG)

	cmd := &cobra.Command{
		Use:     "overview [ID...]",
		Aliases: []string{"ov"},
		Short:   "Lay out several projects on one shared axis",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ppd < 0 {
				return fmt.Errorf("--ppd must not be negative")
			}
			req := contract.OverviewRequest{
				ProjectIDs:      args,
				IncludeArchived: all,
				PixelsPerDay:    ppd,
				PadDays:         pad,
				Now:             today.at(),
			}

			if pick {
				if !app.Interactive {
					return fmt.Errorf("--pick needs an interactive terminal")
				}
				ids, err := pickProjects(cmd.Context(), app, all)
				if err != nil {
					return err
				}
				req.ProjectIDs = ids
			}

			view, err := app.Timeline.Overview(cmd.Context(), req)
			if err != nil {
				return err
			}

			if browse {
				if !view.Show {
					fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOverview(view, daysPerCol))
					return nil
				}
				p := tea.NewProgram(newBrowserModel(view, daysPerCol),
					tea.WithAltScreen(),
					tea.WithContext(cmd.Context()),
					tea.WithInput(cmd.InOrStdin()),
					tea.WithOutput(cmd.OutOrStdout()))
				_, err := p.Run()
				return err
			}

			return withOutput(cmd, output, func(w io.Writer) error {
				switch format.value {
				case formatJSON:
					return writeJSON(w, view)
				case formatSVG:
					if !view.Show {
						return fmt.Errorf("no selected project has dated milestones to draw")
					}
					_, err := io.WriteString(w, svg.RenderOverview(view.Overview))
					return err
				default:
					_, err := io.WriteString(w, formatter.FormatOverview(view, daysPerCol))
					return err
				}
			})
		},
	}

	cmd.Flags().Var(format, "format", "Output format: "+format.choices())
	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects when no IDs are given")
	cmd.Flags().BoolVar(&pick, "pick", false, "Choose projects interactively")
	cmd.Flags().BoolVar(&browse, "browse", false, "Open a scrollable terminal view")
	cmd.Flags().Var(&today, "today", "Pin today's date (DD/MM/YYYY)")
	cmd.Flags().Float64Var(&ppd, "ppd", 0, "Pixels per day (0 uses the configured default)")
	cmd.Flags().IntVar(&pad, "pad", 0, "Days of padding (0 default, negative none)")
	cmd.Flags().IntVar(&daysPerCol, "days-per-col", formatter.DefaultDaysPerColumn, "Days per text column")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.MarkFlagsMutuallyExclusive("browse", "output")
	return cmd
}

// pickProjects asks for a subset of the catalog with a multi-select.
func pickProjects(ctx context.Context, app *App, all bool) ([]string, error) {
	projects, err := app.Projects.List(ctx, all)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("no projects found; import a catalog first")
	}

	options := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		options = append(options, huh.NewOption(fmt.Sprintf("%s  %s", p.DisplayID(), p.Name), p.ID))
	}

	var selected []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Chọn dự án").
			Options(options...).
			Value(&selected).
			Validate(func(v []string) error {
				if len(v) == 0 {
					return fmt.Errorf("select at least one project")
				}
				return nil
			}),
	)).WithTheme(tiendoHuhTheme())
	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}
	return selected, nil
}
