package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/darkstorm/cooljigate/internal/anki"
	"github.com/darkstorm/cooljigate/internal/flashcard"
	"github.com/darkstorm/cooljigate/internal/logger"
	"github.com/darkstorm/cooljigate/internal/textutil"
)

var ankiCmd = &cobra.Command{
	Use:   "anki",
	Short: "Work with Anki decks",
	Long:  `Commands for inspecting Anki .apkg files and adding conjugation cards to them.`,
}

var ankiInspectCmd = &cobra.Command{
	Use:   "inspect <file.apkg>",
	Short: "Inspect an Anki deck",
	Long: `Inspect an Anki .apkg file to see its decks, note types and note count.

Example:
  cooljigate anki inspect russian.apkg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiInspect,
}

var ankiAddCmd = &cobra.Command{
	Use:   "add <file.apkg> <verb>",
	Short: "Add a verb's flashcards to an Anki deck",
	Long: `Look up a verb and add one note per flashcard line to an existing deck.

The translated side goes into the first field of the note type and the
Russian side into the second. The formatting flags of the root command
(--short, --anki-cloze, --postfix, ...) apply. The input file is left
untouched; the result is written to a new .apkg.

Examples:
  cooljigate anki add russian.apkg говорить
  cooljigate anki add russian.apkg сказать --deck "Russian::Verbs" -o out.apkg`,
	Args: cobra.ExactArgs(2),
	RunE: runAnkiAdd,
}

func init() {
	rootCmd.AddCommand(ankiCmd)
	ankiCmd.AddCommand(ankiInspectCmd)
	ankiCmd.AddCommand(ankiAddCmd)

	ankiAddCmd.Flags().StringP("output", "o", "", "output .apkg file (default <file>_<verb>.apkg)")
	ankiAddCmd.Flags().String("deck", "", "deck to add cards to (default from config, else the first deck)")
	ankiAddCmd.Flags().String("model", "", "note type to use (default from config, else the first basic type)")
	ankiAddCmd.Flags().StringSlice("tags", nil, "tags for the new notes (default from config)")
}

func runAnkiInspect(cmd *cobra.Command, args []string) error {
	pkg, err := anki.OpenPackage(args[0])
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	fmt.Fprint(cmd.OutOrStdout(), pkg.Summary())
	return nil
}

func runAnkiAdd(cmd *cobra.Command, args []string) error {
	src, verb := args[0], args[1]

	output, _ := cmd.Flags().GetString("output")
	deckName, _ := cmd.Flags().GetString("deck")
	modelName, _ := cmd.Flags().GetString("model")
	tags, _ := cmd.Flags().GetStringSlice("tags")

	s, err := newSession(logger.New(cmd.ErrOrStderr(), viper.GetBool("verbose")))
	if err != nil {
		return err
	}
	if deckName == "" {
		deckName = s.cfg.Anki.Deck
	}
	if modelName == "" {
		modelName = s.cfg.Anki.Model
	}
	if !cmd.Flags().Changed("tags") {
		tags = s.cfg.Anki.Tags
	}

	pkg, err := anki.OpenPackage(src)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	model := pkg.FindModel(modelName)
	if model == nil {
		return fmt.Errorf("note type not found: %q", modelName)
	}
	deck := pkg.FindDeck(deckName)
	if deck == nil {
		return fmt.Errorf("deck not found: %q", deckName)
	}

	opts := renderOptionsFromFlags(cmd, s.cfg)
	primary, secondary, err := s.builder.Pair(cmd.Context(), verb, opts.build)
	if err != nil {
		return err
	}

	cards := flashcard.Cards(primary, secondary, opts.format)
	if len(cards) == 0 {
		return errors.New("no conjugations found for " + verb)
	}
	for _, c := range cards {
		if _, err := pkg.AddNote(model, deck, []string{c.Front, c.Back}, tags); err != nil {
			return fmt.Errorf("adding note: %w", err)
		}
	}

	if output == "" {
		output = strings.TrimSuffix(src, filepath.Ext(src)) + "_" + textutil.SafeName(primary.Verb) + ".apkg"
	}
	if filepath.Clean(output) == filepath.Clean(src) {
		return fmt.Errorf("refusing to overwrite the input deck %s", src)
	}
	if err := pkg.SaveAs(output); err != nil {
		return fmt.Errorf("saving package: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %d notes to %q (%s)\n", len(cards), deck.Name, model.Name)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", output)
	return nil
}
