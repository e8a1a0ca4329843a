package cli

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"sjsage522/dirscraper/config"
	"sjsage522/dirscraper/services/store"
)

func newShowCommand(cfg *config.Config) *cobra.Command {
	var (
		in     string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Prints a scraped file as a table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := store.Load(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				for _, e := range employees {
					if err := enc.Encode(e); err != nil {
						return err
					}
				}
				return nil
			}

			t := newTable(out)
			t.AppendHeader(table.Row{"#", "Name", "Room", "Telephone", "Department", "Job Title"})
			for i, e := range employees {
				t.AppendRow(table.Row{i + 1, e.FullName(), e.Room.String(), e.Telephone, e.Department, e.JobTitle})
			}
			t.AppendFooter(table.Row{"", fmt.Sprintf("%d employees", len(employees))})
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", cfg.OutputPath, "scraped file (.csv or .xlsx)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per line")
	return cmd
}
