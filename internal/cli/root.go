package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/tiendo/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Imports  service.ImportService
	Timeline service.TimelineService
	Status   service.StatusService

	// Serve runs the HTTP API until ctx is cancelled. Nil disables the
	// serve command.
	Serve func(ctx context.Context, addr string) error
	// Clock defaults to time.Now.
	Clock func() time.Time
	// Interactive reports whether stdin is a terminal; prompts are skipped
	// when it is false.
	Interactive bool
}

func (a *App) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "tiendo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tiendo",
		Short:         "Construction project milestone timelines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newTimelineCmd(app),
		newOverviewCmd(app),
		newStatusCmd(app),
	)
	if app.Serve != nil {
		root.AddCommand(newServeCmd(app))
	}

	return root
}
