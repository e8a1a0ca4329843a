package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"sjsage522/dirscraper/config"
)

func newProfilesCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "Lists the directory profiles that scrape can use.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := loadProfiles(cfg)
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Profile", "URL", "Container"})
			for _, name := range profiles.Names() {
				p := profiles[name]
				t.AppendRow(table.Row{p.Name, p.URL, p.Container})
			}
			t.Render()
			return nil
		},
	}
}
