package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/xhad/holocron/pkg/bulk"
	"github.com/xhad/holocron/pkg/config"
	"github.com/xhad/holocron/pkg/corpus"
	"github.com/xhad/holocron/pkg/pipeline"
	"github.com/xhad/holocron/pkg/scraper"
	"github.com/xhad/holocron/pkg/search"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: holocron <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  setup             create the index from the settings file")
	fmt.Fprintln(os.Stderr, "  ingest            scrape the source page and import it into the index")
	fmt.Fprintln(os.Stderr, "  search <text>     run a relevance query and print the raw result JSON")
}

func run(command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			color.Red("config: %v", e)
		}
		return fmt.Errorf("invalid configuration")
	}

	switch command {
	case "setup":
		return runSetup(cfg)
	case "ingest":
		return runIngest(cfg)
	case "search":
		query := strings.TrimSpace(strings.Join(fs.Args(), " "))
		if query == "" {
			return fmt.Errorf("search requires a query string")
		}
		return runSearch(cfg, query)
	default:
		usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func buildPipeline(cfg *config.Config, onStage func(stage pipeline.Stage)) (*pipeline.Pipeline, error) {
	s, err := scraper.NewWithConfig(scraper.ScraperConfig{
		SourceURL: cfg.Source.URL,
		RateLimit: cfg.Source.RateLimit,
		Timeout:   time.Duration(cfg.Source.Timeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scraper: %v", err)
	}

	client, err := search.NewWithConfig(search.ClientConfig{
		BaseURL: cfg.Backend.URL,
		Timeout: time.Duration(cfg.Backend.Timeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend client: %v", err)
	}

	return pipeline.New(
		pipeline.Config{
			Index:        cfg.Backend.Index,
			SettingsPath: cfg.Backend.SettingsPath,
			BulkPath:     cfg.Artifacts.BulkPath,
			OnStage:      onStage,
		},
		s,
		corpus.NewStore(cfg.Artifacts.CorpusPath),
		bulk.NewEncoder(cfg.Backend.Index),
		client,
	), nil
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func runSetup(cfg *config.Config) error {
	p, err := buildPipeline(cfg, nil)
	if err != nil {
		return err
	}

	if err := p.Setup(context.Background()); err != nil {
		return err
	}

	color.Green("✓ Index %q created", cfg.Backend.Index)
	return nil
}

func runIngest(cfg *config.Config) error {
	color.Blue("\nStarting ingestion pipeline for %s\n", cfg.Source.URL)

	var spinner *progressbar.ProgressBar
	p, err := buildPipeline(cfg, func(stage pipeline.Stage) {
		if spinner != nil {
			spinner.Finish()
			fmt.Print("\n")
		}
		spinner = getSpinner(fmt.Sprintf(" %s...", stage))
	})
	if err != nil {
		return err
	}

	stats, err := p.Ingest(context.Background())
	if spinner != nil {
		spinner.Finish()
		fmt.Print("\n")
	}
	if err != nil {
		return err
	}

	color.Green("✓ Imported %d characters into %q\n", stats.Records, cfg.Backend.Index)
	return nil
}

func runSearch(cfg *config.Config, query string) error {
	p, err := buildPipeline(cfg, nil)
	if err != nil {
		return err
	}

	result, err := p.Search(context.Background(), query)
	if err != nil {
		return err
	}

	fmt.Println(string(result))
	return nil
}
