package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/uniconvert/internal/cli"
	"github.com/alexanderramin/uniconvert/internal/intelligence"
	"github.com/alexanderramin/uniconvert/internal/llm"
	"github.com/alexanderramin/uniconvert/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{
		HistoryPath: cli.DefaultHistoryPath(),
	}

	// Detect interactive terminal for shell-only entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.Setup = func(configPath string) error {
		if configPath == "" {
			configPath = os.Getenv("UNICONVERT_CONFIG")
		}
		llmCfg, err := llm.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}

		opts := []service.Option{}
		if os.Getenv("UNICONVERT_LOG") == "1" {
			opts = append(opts, service.WithObserver(service.NewLogUseCaseObserver(os.Stderr)))
		}

		// A missing API key is reported when suggestions are requested, not
		// at startup.
		client, err := llm.NewClient(llmCfg, observer)
		if err != nil {
			return fmt.Errorf("creating %s client: %w", llmCfg.Provider, err)
		}
		opts = append(opts, service.WithSuggester(intelligence.NewSuggestionService(client)))
		app.Provider = fmt.Sprintf("%s (%s)", llmCfg.Provider, llmCfg.Model)
		if llmCfg.NeedsAPIKey() && llmCfg.APIKey == "" {
			app.Provider += ", no API key set"
		}

		app.Dataset = service.NewDataset(opts...)
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}
