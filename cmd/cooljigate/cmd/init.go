package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/darkstorm/cooljigate/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize cooljigate configuration",
	Long: `Write a default config.yaml to your config directory.

The file sets the conjugation site, the page cache directory, the request
timeout, a default postfix, the directory --write saves to, and the deck,
note type and tags used by 'cooljigate anki add'.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := config.Path(configDir)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit the file to set a cache directory or default postfix")
	fmt.Fprintln(out, "  2. Run 'cooljigate говорить' to print your first flashcards")

	return nil
}
