package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/darkstorm/cooljigate/internal/cache"
	"github.com/darkstorm/cooljigate/internal/config"
	"github.com/darkstorm/cooljigate/internal/conjugator"
	"github.com/darkstorm/cooljigate/internal/flashcard"
)

// session holds the services one command invocation works with.
type session struct {
	cfg     *config.Config
	log     *slog.Logger
	fetcher *cache.Fetcher
	builder *conjugator.Builder
}

func newSession(log *slog.Logger) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store := cache.NewStore(cfg.CacheDir)
	fetcher := cache.NewFetcher(store, cache.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
	}, log)

	return &session{
		cfg:     cfg,
		log:     log,
		fetcher: fetcher,
		builder: conjugator.NewBuilder(fetcher, log),
	}, nil
}

// loadConfig reads the config file and applies environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Path(getConfigDir()))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if v := viper.GetString("base_url"); v != "" {
		cfg.BaseURL = v
	}
	if v := viper.GetString("cache_dir"); v != "" {
		cfg.CacheDir = v
	}
	return cfg, nil
}

type renderOptions struct {
	build  conjugator.Options
	format flashcard.Options
}

// renderOptionsFromFlags reads the formatting flags shared by every command
// that renders flashcards. The config postfix applies when --postfix is unset.
func renderOptionsFromFlags(cmd *cobra.Command, cfg *config.Config) renderOptions {
	flags := cmd.Flags()
	conditionals, _ := flags.GetBool("conditionals")
	postfix, _ := flags.GetString("postfix")
	suppress, _ := flags.GetBool("suppress-postfix")
	uni, _ := flags.GetBool("uni")
	multi, _ := flags.GetBool("multi")
	short, _ := flags.GetBool("short")
	includeVerb, _ := flags.GetBool("include-verb")
	cloze, _ := flags.GetBool("anki-cloze")

	if postfix == "" {
		postfix = cfg.Postfix
	}

	return renderOptions{
		build: conjugator.Options{Conditionals: conditionals},
		format: flashcard.Options{
			Short:           short,
			Cloze:           cloze,
			SuppressPostfix: suppress,
			IncludeVerb:     includeVerb,
			Extra:           flashcard.ExtraPostfix(postfix, uni, multi),
		},
	}
}
