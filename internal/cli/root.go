package cli

import (
	"context"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"sjsage522/dirscraper/config"
	"sjsage522/dirscraper/internal/directory"
	"sjsage522/dirscraper/logger"
)

// NewRootCommand builds the dirscraper command tree around cfg
func NewRootCommand(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "dirscraper",
		Short:         "dirscraper extracts staff directories into CSV or Excel files.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newScrapeCommand(cfg),
		newPhotosCommand(cfg),
		newShowCommand(cfg),
		newProfilesCommand(cfg),
	)
	return root
}

// Execute runs the command line with args
func Execute(ctx context.Context, cfg *config.Config, args []string) error {
	root := NewRootCommand(cfg)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		logger.LogError("cli", err, "dirscraper %s failed", strings.Join(args, " "))
	}
	return err
}

func loadProfiles(cfg *config.Config) (directory.Profiles, error) {
	profiles := directory.BuiltinProfiles()
	if cfg.ProfilesFile == "" {
		return profiles, nil
	}
	return directory.LoadProfiles(cfg.ProfilesFile, profiles)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}
