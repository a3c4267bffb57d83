package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckforge/deckforge/internal/config"
	"github.com/deckforge/deckforge/internal/orchestrator"
)

var (
	createOutput   string
	createRefs     []string
	createTopK     int
	createProvider string
	createModel    string
	createEmbed    string
	createVerbose  bool
)

var createCmd = &cobra.Command{
	Use:   "create [topic]",
	Short: "Create a deck outline for a topic, augmented with references",
	Long: `Create a new presentation outline for a topic.

Reference material (files or URLs) is chunked, deduplicated and ranked
by relevance to the topic; the most relevant chunks feed outline
generation. Without references the outline is generated from the topic
alone.

Examples:
  deckforge create "Introduction to Go generics"
  deckforge create "Quarterly results" --ref report.pdf --ref notes.md
  deckforge create "Edge computing" --ref https://example.com/intro --topk 8`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&createOutput, "output", "o", "", "Output Markdown file (default: stdout)")
	createCmd.Flags().StringArrayVar(&createRefs, "ref", nil, "Reference file or URL (repeatable)")
	createCmd.Flags().IntVar(&createTopK, "topk", 0, "Number of relevant chunks to retrieve")
	createCmd.Flags().StringVar(&createProvider, "provider", "", fmt.Sprintf("AI provider: %v", config.Providers()))
	createCmd.Flags().StringVar(&createModel, "model", "", "Model for outline generation")
	createCmd.Flags().StringVar(&createEmbed, "embed-model", "", "Model for embeddings")
	createCmd.Flags().BoolVar(&createVerbose, "verbose", false, "Show detailed progress")
}

func runCreate(cmd *cobra.Command, args []string) error {
	topic := args[0]

	app, err := resolveAppConfig(createProvider, createModel, createEmbed, 0, createTopK)
	if err != nil {
		return err
	}

	styles := newStyles()
	fmt.Println(styles.header.Render("Creating deck:"))
	fmt.Println(styles.subject.Render(topic))
	fmt.Println()

	if createVerbose {
		fmt.Println(styles.context.Render(fmt.Sprintf("→ Provider %s, model %s, %d references, topk %d",
			app.Provider, app.OutlineModel, len(createRefs), app.TopK)))
	}

	pipeline, err := orchestrator.NewServicePipeline(app)
	if err != nil {
		return fmt.Errorf("%s %w", styles.errLabel.Render("Error:"), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(app.TimeoutSecs)*time.Second)
	defer cancel()

	out, err := pipeline.CreateDeck(ctx, topic, createRefs)
	if err != nil {
		return fmt.Errorf("%s %w", styles.errLabel.Render("Error:"), err)
	}

	if createVerbose {
		fmt.Println(styles.context.Render(fmt.Sprintf("→ %d embedding calls issued", pipeline.Cache().Calls())))
	}

	return emitOutline(out, createOutput, styles)
}
