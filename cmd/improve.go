package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/deckforge/deckforge/internal/config"
	"github.com/deckforge/deckforge/internal/orchestrator"
	"github.com/deckforge/deckforge/internal/outline"
	"github.com/deckforge/deckforge/internal/render"
)

var (
	improveOutput    string
	improveProvider  string
	improveModel     string
	improveEmbed     string
	improveThreshold float64
	improveVerbose   bool
)

var improveCmd = &cobra.Command{
	Use:   "improve [deck]",
	Short: "Rebuild the outline of an existing deck",
	Long: `Improve an existing presentation (or any supported source file).

This command:
1. Extracts slides/pages and splits them into chunks
2. Removes near-duplicate content using embedding similarity
3. Generates an improved outline via the configured AI provider
4. Writes the outline as a Markdown deck

Supported sources: .pptx, .pdf, .txt, .md files and http(s) URLs.

Examples:
  deckforge improve old.pptx
  deckforge improve notes.md -o improved.md --threshold 0.9
  deckforge improve deck.pptx --provider openai --model gpt-4o`,
	Args: cobra.ExactArgs(1),
	RunE: runImprove,
}

func init() {
	rootCmd.AddCommand(improveCmd)
	improveCmd.Flags().StringVarP(&improveOutput, "output", "o", "", "Output Markdown file (default: stdout)")
	improveCmd.Flags().StringVar(&improveProvider, "provider", "", fmt.Sprintf("AI provider: %v", config.Providers()))
	improveCmd.Flags().StringVar(&improveModel, "model", "", "Model for outline generation")
	improveCmd.Flags().StringVar(&improveEmbed, "embed-model", "", "Model for embeddings")
	improveCmd.Flags().Float64Var(&improveThreshold, "threshold", 0, "Deduplication threshold (0.0-1.0)")
	improveCmd.Flags().BoolVar(&improveVerbose, "verbose", false, "Show detailed progress")
}

func runImprove(cmd *cobra.Command, args []string) error {
	source := args[0]

	app, err := resolveAppConfig(improveProvider, improveModel, improveEmbed, improveThreshold, 0)
	if err != nil {
		return err
	}

	styles := newStyles()
	fmt.Println(styles.header.Render("Improving deck:"))
	fmt.Println(styles.subject.Render(source))
	fmt.Println()

	if improveVerbose {
		fmt.Println(styles.context.Render(fmt.Sprintf("→ Provider %s, model %s, embed model %s, threshold %.2f",
			app.Provider, app.OutlineModel, app.EmbedModel, app.DedupeThreshold)))
	}

	pipeline, err := orchestrator.NewServicePipeline(app)
	if err != nil {
		return fmt.Errorf("%s %w", styles.errLabel.Render("Error:"), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(app.TimeoutSecs)*time.Second)
	defer cancel()

	out, err := pipeline.ImproveDeck(ctx, source)
	if err != nil {
		return fmt.Errorf("%s %w", styles.errLabel.Render("Error:"), err)
	}

	if improveVerbose {
		fmt.Println(styles.context.Render(fmt.Sprintf("→ %d embedding calls issued", pipeline.Cache().Calls())))
	}

	return emitOutline(out, improveOutput, styles)
}

// emitOutline writes the outline to the output path or stdout.
func emitOutline(out outline.Outline, path string, styles cliStyles) error {
	if path == "" {
		fmt.Println(render.Markdown(out))
		return nil
	}
	if err := render.WriteMarkdown(out, path); err != nil {
		return err
	}
	fmt.Println(styles.success.Render(fmt.Sprintf("✓ Outline written to %s", path)))
	return nil
}

type cliStyles struct {
	header   lipgloss.Style
	subject  lipgloss.Style
	context  lipgloss.Style
	errLabel lipgloss.Style
	success  lipgloss.Style
}

func newStyles() cliStyles {
	return cliStyles{
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true),
		subject:  lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")).Italic(true),
		context:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true),
		errLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true),
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")),
	}
}

// resolveAppConfig loads config.yaml when present and layers CLI flag
// overrides plus provider defaults on top.
func resolveAppConfig(provider, model, embedModel string, threshold float64, topK int) (*config.AppConfig, error) {
	app, err := config.Load("config.yaml")
	if err != nil {
		return nil, err
	}

	if provider != "" {
		app.Provider = provider
		// Reset endpoint/models so the new provider's defaults apply.
		app.BaseURL = ""
		if model == "" {
			app.OutlineModel = ""
		}
		if embedModel == "" {
			app.EmbedModel = ""
		}
	}
	if model != "" {
		app.OutlineModel = model
	}
	if embedModel != "" {
		app.EmbedModel = embedModel
	}
	if threshold > 0 {
		app.DedupeThreshold = threshold
	}
	if topK > 0 {
		app.TopK = topK
	}

	if err := config.Resolve(app); err != nil {
		return nil, err
	}
	if _, err := os.Stat("config.yaml"); err == nil && improveVerbose {
		fmt.Println("Using config.yaml")
	}
	return app, nil
}
