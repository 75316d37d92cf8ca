package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/darkstorm/cooljigate/internal/logger"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and clear the page cache",
	Long: `Fetched conjugation pages are cached forever. Use these commands to find
or remove cached pages when the site has changed.`,
}

var cachePathCmd = &cobra.Command{
	Use:   "path <verb>",
	Short: "Print the cache file for a verb",
	Args:  cobra.ExactArgs(1),
	RunE:  runCachePath,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [verb...]",
	Short: "Remove cached pages",
	Long: `Remove the cached pages of the given verbs, or every page cached for the
configured site when no verb is given.

Examples:
  cooljigate cache clear говорить
  cooljigate cache clear`,
	RunE: runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePathCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCachePath(cmd *cobra.Command, args []string) error {
	s, err := newSession(logger.Discard())
	if err != nil {
		return err
	}

	url := s.fetcher.URL(strings.TrimSpace(args[0]))
	fmt.Fprintln(cmd.OutOrStdout(), s.fetcher.Store().Path(url))
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	s, err := newSession(logger.Discard())
	if err != nil {
		return err
	}
	store := s.fetcher.Store()

	removed := 0
	if len(args) == 0 {
		removed, err = store.Clear(s.fetcher.BaseURL())
		if err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
	} else {
		for _, verb := range args {
			ok, err := store.Remove(s.fetcher.URL(strings.TrimSpace(verb)))
			if err != nil {
				return fmt.Errorf("removing %s: %w", verb, err)
			}
			if ok {
				removed++
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached page(s) from %s\n", removed, store.Dir())
	return nil
}
