package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/tiendo/internal/cli/formatter"
	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/svg"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var (
		mode      modeFlag
		today     dateFlag
		ppd       float64
		pad       int
		width     int
		output    string
		intervals bool
	)
	format := newFormatFlag(formatText, formatJSON, formatSVG)

	cmd := &cobra.Command{
		Use:     "timeline ID",
		Aliases: []string{"tl"},
		Short:   "Lay out one project's milestones",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ppd < 0 {
				return fmt.Errorf("--ppd must not be negative")
			}
			req := contract.NewTimelineRequest(args[0])
			if mode.value != "" {
				req.Mode = mode.value
			}
			req.Now = today.at()
			req.PixelsPerDay = ppd
			req.PadDays = pad

			view, err := app.Timeline.Project(cmd.Context(), req)
			if err != nil {
				return err
			}

			return withOutput(cmd, output, func(w io.Writer) error {
				switch format.value {
				case formatJSON:
					return writeJSON(w, view)
				case formatSVG:
					if !view.Show {
						return fmt.Errorf("%s has no dated milestones to draw", view.ShortID)
					}
					_, err := io.WriteString(w, svg.RenderPlan(view.Plan, svg.Options{Title: view.ShortID + " " + view.Name}))
					return err
				default:
					fmt.Fprint(w, formatter.FormatTimeline(view, width))
					if intervals {
						fmt.Fprint(w, "\n"+formatter.FormatIntervals(view.Plan))
					}
					return nil
				}
			})
		},
	}

	cmd.Flags().Var(format, "format", "Output format: "+format.choices())
	cmd.Flags().Var(&mode, "mode", "Coordinate space: percent|pixel")
	cmd.Flags().Var(&today, "today", "Pin today's date (DD/MM/YYYY)")
	cmd.Flags().Float64Var(&ppd, "ppd", 0, "Pixels per day in pixel mode (0 uses the configured default)")
	cmd.Flags().IntVar(&pad, "pad", 0, "Days of padding in pixel mode (0 default, negative none)")
	cmd.Flags().IntVar(&width, "width", formatter.DefaultTimelineWidth, "Text timeline width in columns")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&intervals, "intervals", false, "List task durations under the text timeline")
	return cmd
}

// withOutput runs write against stdout, or against path when set.
func withOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
