package cli

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"sjsage522/dirscraper/config"
	"sjsage522/dirscraper/helpers"
	"sjsage522/dirscraper/internal/photo"
	"sjsage522/dirscraper/logger"
	"sjsage522/dirscraper/services/cache"
	"sjsage522/dirscraper/services/store"
)

type photosOptions struct {
	in       string
	dir      string
	limit    int
	timeout  time.Duration
	errorLog string
}

func newPhotosCommand(cfg *config.Config) *cobra.Command {
	opts := photosOptions{}

	cmd := &cobra.Command{
		Use:   "photos",
		Short: "Downloads the profile photo of every employee in a scraped file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPhotos(cmd, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.in, "in", "i", cfg.OutputPath, "scraped file (.csv or .xlsx)")
	flags.StringVarP(&opts.dir, "dir", "d", cfg.PhotoDir, "destination directory")
	flags.IntVarP(&opts.limit, "limit", "n", cfg.PhotoConcurrency, "maximum downloads in flight")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout, 0 waits forever")
	flags.StringVar(&opts.errorLog, "error-log", cfg.PhotoErrorLog, "file that collects failed downloads, empty to disable")
	return cmd
}

func runPhotos(cmd *cobra.Command, cfg *config.Config, opts photosOptions) error {
	employees, err := store.Load(opts.in)
	if err != nil {
		return err
	}

	d := photo.NewDownloader(opts.dir, opts.timeout, cfg.UserAgent)
	if opts.errorLog != "" {
		d.WithFailureRecorder(helpers.NewFailureLog(opts.errorLog))
	}
	if cfg.LedgerEnabled() {
		mc := cache.NewMemcacheService(cfg.MemcacheAddr)
		if err := mc.Ping(); err != nil {
			logger.ForCache().Warn().Err(err).Msg("Memcached unreachable, photo ledger disabled")
		} else {
			d.WithLedger(cache.NewPhotoLedger(mc, cfg.PhotoLedgerTTL))
		}
	}

	report := d.DownloadAll(contextOf(cmd), employees, opts.limit)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "downloaded %d of %d photos into %s\n", report.Succeeded, len(employees), opts.dir)
	if failures := report.Failures(); len(failures) > 0 {
		t := newTable(out)
		t.AppendHeader(table.Row{"Employee", "Error"})
		for _, f := range failures {
			t.AppendRow(table.Row{f.Name, f.Err.Error()})
		}
		t.Render()
	}
	return nil
}
