package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sjsage522/dirscraper/config"
	"sjsage522/dirscraper/helpers"
	"sjsage522/dirscraper/internal/directory"
	"sjsage522/dirscraper/logger"
	apperrors "sjsage522/dirscraper/pkg/errors"
	"sjsage522/dirscraper/services/publisher"
	"sjsage522/dirscraper/services/store"
	"sjsage522/dirscraper/services/worker"
)

type scrapeOptions struct {
	url         string
	profile     string
	all         bool
	out         string
	skipInvalid bool
	publish     bool
}

func newScrapeCommand(cfg *config.Config) *cobra.Command {
	opts := scrapeOptions{}

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrapes a directory page and writes one row per employee.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.url, "url", cfg.DirectoryURL, "directory URL, overrides the profile URL")
	flags.StringVarP(&opts.profile, "profile", "p", cfg.DirectoryProfile, "directory profile name")
	flags.BoolVar(&opts.all, "all", false, "scrape every known profile")
	flags.StringVarP(&opts.out, "out", "o", cfg.OutputPath, "output file (.csv or .xlsx)")
	flags.BoolVar(&opts.skipInvalid, "skip-invalid", cfg.SkipInvalid, "drop entries missing a name or page link instead of failing")
	flags.BoolVar(&opts.publish, "publish", cfg.PublishEnabled(), "publish every record to the Redis stream")
	cmd.MarkFlagsMutuallyExclusive("all", "url")
	return cmd
}

func runScrape(cmd *cobra.Command, cfg *config.Config, opts scrapeOptions) error {
	log := logger.ForCLI()

	profiles, err := loadProfiles(cfg)
	if err != nil {
		return err
	}

	var selected []directory.Profile
	if opts.all {
		for _, name := range profiles.Names() {
			selected = append(selected, profiles[name])
		}
	} else {
		p, err := profiles.Get(opts.profile)
		if err != nil {
			return err
		}
		if opts.url != "" {
			p.URL = opts.url
		}
		selected = append(selected, p)
	}

	client := helpers.NewHTTPClient(cfg.HTTPTimeout, cfg.UserAgent)
	scrapers := make([]worker.Scraper, 0, len(selected))
	for _, p := range selected {
		scrapers = append(scrapers, directory.NewScraper(client, p, opts.skipInvalid))
	}

	var pub publisher.Publisher
	if opts.publish {
		if cfg.RedisAddr == "" {
			return apperrors.NewConfiguration("--publish needs REDIS_ADDR", nil)
		}
		redisPub := publisher.NewRedisPublisher(cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamMaxLength)
		defer redisPub.Close()
		if err := redisPub.Ping(contextOf(cmd)); err != nil {
			return err
		}
		pub = redisPub
	}

	collected, report := worker.NewWorker(scrapers, pub, len(scrapers)).Run(contextOf(cmd))
	if report.Succeeded == 0 {
		return report.Err()
	}

	var employees []directory.Employee
	for _, p := range selected {
		employees = append(employees, collected[p.Name]...)
	}

	if err := store.Save(opts.out, employees); err != nil {
		return err
	}

	log.Info().Int("employees", len(employees)).Int("failed_directories", report.Failed).Str("out", opts.out).Msg("Scrape finished")
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d employees to %s\n", len(employees), opts.out)
	if report.Failed > 0 {
		return report.Err()
	}
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
