// Package cmd contains all CLI commands for cooljigate.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/darkstorm/cooljigate/internal/clipboard"
	"github.com/darkstorm/cooljigate/internal/config"
	"github.com/darkstorm/cooljigate/internal/flashcard"
	"github.com/darkstorm/cooljigate/internal/logger"
	"github.com/darkstorm/cooljigate/internal/tui"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cooljigate <verb>",
	Short: "Russian verb conjugation flashcards",
	Long: `cooljigate looks up a Russian verb on cooljugator.com and prints one
flashcard line per conjugated form:

  speak (нсв|pres), я говорю / скажу

The left side is the English translation with an aspect|tense postfix, the
right side the Russian form followed by the matching form of the verb's
opposite-aspect partner. Pages are cached on disk, so repeated lookups do
not hit the network.

Examples:
  cooljigate говорить
  cooljigate -r -c говорить
  cooljigate --anki-cloze --short сказать`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/cooljigate)")
	pf.Bool("verbose", false, "verbose output")

	pf.BoolP("conditionals", "c", false, "include conditional tenses")
	pf.StringP("postfix", "p", "", "extra postfix text")
	pf.BoolP("suppress-postfix", "s", false, "omit the (aspect|tense) postfix")
	pf.BoolP("uni", "u", false, "mark as a unidirectional motion verb")
	pf.BoolP("multi", "m", false, "mark as a multidirectional motion verb")
	pf.BoolP("short", "t", false, "only the я, ты, он/она and они forms")
	pf.BoolP("include-verb", "v", false, "prefix every line with the infinitive")
	pf.BoolP("anki-cloze", "a", false, "wrap conjugations in numbered cloze deletions")

	rootCmd.Flags().BoolP("header", "r", false, "print a header before the conjugations")
	rootCmd.Flags().BoolP("write", "w", false, "also write the output to an auto-named file")
	rootCmd.Flags().Bool("copy", false, "copy the output to the clipboard")

	// Accept --suppress_postfix, --anki_cloze and friends as well.
	rootCmd.SetGlobalNormalizationFunc(underscoreToDash)

	viper.BindPFlag("verbose", pf.Lookup("verbose"))
}

func underscoreToDash(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		configDir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", configDir)
	}

	viper.SetEnvPrefix("COOLJIGATE")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

func runRoot(cmd *cobra.Command, args []string) error {
	s, err := newSession(logger.New(cmd.ErrOrStderr(), viper.GetBool("verbose")))
	if err != nil {
		return err
	}

	opts := renderOptionsFromFlags(cmd, s.cfg)
	primary, secondary, err := s.builder.Pair(cmd.Context(), args[0], opts.build)
	if err != nil {
		return err
	}
	lines := flashcard.Format(primary, secondary, opts.format)

	out := cmd.OutOrStdout()
	if header, _ := cmd.Flags().GetBool("header"); header {
		fmt.Fprintln(out, renderHeader(out, flashcard.Header(primary, secondary)))
		fmt.Fprintln(out)
	}
	for _, line := range lines {
		io.WriteString(out, line)
	}

	if write, _ := cmd.Flags().GetBool("write"); write {
		path := filepath.Join(s.cfg.OutputDir, flashcard.Filename(primary))
		if err := writeLines(path, lines); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	}

	if copyOut, _ := cmd.Flags().GetBool("copy"); copyOut {
		if err := clipboard.Copy(clipboard.System{}, lines); err != nil {
			s.log.Warn("copying to clipboard", "err", err)
		}
	}

	return nil
}

// renderHeader styles the header when out is a terminal.
func renderHeader(out io.Writer, lines []string) string {
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return tui.RenderHeader(lines)
	}
	return strings.Join(lines, "\n")
}

func writeLines(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "")), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
