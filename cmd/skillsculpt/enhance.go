package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skillsculpt/internal/llm"
	"github.com/jonathan/skillsculpt/internal/observability"
	"github.com/jonathan/skillsculpt/internal/prompts"
	"github.com/spf13/cobra"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Enhance one piece of resume or LinkedIn text",
	Long: `Sends text to the configured model with the same prompt the API uses and
prints the enhanced result. Text is read from --text or, when omitted, stdin.

Categories: work_experience, headline, summary, experience, education, skills.`,
	RunE: runEnhance,
}

var (
	enhanceCategory string
	enhanceText     string
	enhanceStream   bool
	enhanceVerbose  bool
)

func init() {
	enhanceCmd.Flags().StringVarP(&enhanceCategory, "category", "c", string(prompts.CategoryWorkExperience), "Prompt category")
	enhanceCmd.Flags().StringVarP(&enhanceText, "text", "t", "", "Text to enhance (default: read stdin)")
	enhanceCmd.Flags().BoolVar(&enhanceStream, "stream", false, "Aggregate a streamed response (overrides AI_STREAMING)")
	enhanceCmd.Flags().BoolVarP(&enhanceVerbose, "verbose", "v", false, "Show the prompt and a formatted result on stderr")

	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, _ []string) error {
	text, err := readText(enhanceText, cmd.InOrStdin())
	if err != nil {
		return err
	}

	category := prompts.Category(enhanceCategory)
	builder, err := prompts.NewBuilder()
	if err != nil {
		return fmt.Errorf("failed to load prompts: %w", err)
	}
	prompt, err := builder.Build(category, text)
	if err != nil {
		return err
	}

	cfg, _, err := loadAIConfig()
	if err != nil {
		return err
	}
	streaming := cfg.AI.Streaming
	if cmd.Flags().Changed("stream") {
		streaming = enhanceStream
	}

	gateway, err := newGateway(cmd.Context(), cfg.AI)
	if err != nil {
		return err
	}
	defer func() { _ = gateway.Close() }()

	var printer *observability.Printer
	if enhanceVerbose {
		printer = observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintRequest(string(category), gateway.Model(), streaming, prompt)
	}

	profile := llm.ProfileLinkedIn
	if category == prompts.CategoryWorkExperience {
		profile = llm.ProfileEnhance
	}

	result, err := llm.Call(cmd.Context(), gateway, prompt, profile, streaming)
	if err != nil {
		return fmt.Errorf("enhancement failed: %w", err)
	}

	if printer != nil {
		printer.PrintEnhancement(text, result)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
	return err
}

// readText returns flagValue, or all of stdin when the flag is empty.
// Blank input is rejected before any model call.
func readText(flagValue string, stdin io.Reader) (string, error) {
	text := flagValue
	if text == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text provided: use --text or pipe text on stdin")
	}
	return text, nil
}
