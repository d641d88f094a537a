package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tiendo/internal/cli/formatter"
	"github.com/alexanderramin/tiendo/internal/importer"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"p"},
		Short:   "Manage the project catalog",
	}

	cmd.AddCommand(
		newProjectImportCmd(app),
		newProjectRunsCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectArchiveCmd(app),
		newProjectUnarchiveCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectImportCmd(app *App) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Import projects from YAML catalog files (- reads stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			for _, path := range args {
				src, err := loadSource(cmd, path)
				if err != nil {
					return err
				}

				if check {
					report := importer.Validate(src.File)
					for _, w := range report.Warnings {
						fmt.Fprintln(out, formatter.StyleYellow.Render("WARNING: "+w.String()))
					}
					if err := report.Err(); err != nil {
						return fmt.Errorf("%s: %w", src.Path, err)
					}
					fmt.Fprintf(out, "%s %s: %d projects OK\n", formatter.StyleGreen.Render("✔"), src.Path, len(src.File.Projects))
					continue
				}

				stop := func() {}
				if app.Interactive {
					stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Importing "+src.Path)
				}
				res, err := app.Imports.ImportSource(ctx, src)
				stop()
				if err != nil {
					return fmt.Errorf("%s: %w", src.Path, err)
				}
				fmt.Fprint(out, formatter.FormatImportResult(res))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Validate only; write nothing")
	return cmd
}

func loadSource(cmd *cobra.Command, path string) (*importer.Source, error) {
	if path != "-" {
		return importer.LoadFile(path)
	}
	src, err := importer.Decode(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("parsing stdin: %w", err)
	}
	src.Path = "stdin"
	return src, nil
}

func newProjectRunsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent catalog imports",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.Imports.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportRuns(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to show")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a project and its milestones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(p, app.now()))
			return nil
		},
	}
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Archive(cmd.Context(), p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived project %s\n", p.DisplayID())
			return nil
		},
	}
}

func newProjectUnarchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive ID",
		Short: "Unarchive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Unarchive(cmd.Context(), p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unarchived project %s\n", p.DisplayID())
			return nil
		},
	}
}

var errAborted = errors.New("aborted")

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force, yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a project (archived only unless --force)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if app.Interactive && !yes {
				confirmed := false
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete %s %s?", p.DisplayID(), p.Name)).
						Affirmative("Delete").
						Negative("Cancel").
						Value(&confirmed),
				)).WithTheme(tiendoHuhTheme()).WithShowHelp(false)
				if err := form.RunWithContext(cmd.Context()); err != nil {
					return err
				}
				if !confirmed {
					return errAborted
				}
			}

			if err := app.Projects.Delete(cmd.Context(), p.ID, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", p.DisplayID())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even if the project is not archived")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
