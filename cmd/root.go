package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deckforge",
	Short: "Deckforge - AI-assisted presentation outline tool",
	Long: `Deckforge turns source material into structured presentation outlines.

It extracts text from decks, PDFs, plain text and web pages, removes
near-duplicate content with embeddings, ranks material against a topic,
and synthesizes a title/sections/conclusion outline via an AI service,
falling back to a deterministic outline when the service is unavailable.`,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
