package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/skillsculpt/internal/llm"
	"github.com/jonathan/skillsculpt/internal/observability"
	"github.com/jonathan/skillsculpt/internal/prompts"
	"github.com/jonathan/skillsculpt/internal/schemas"
	"github.com/jonathan/skillsculpt/internal/skills"
	"github.com/jonathan/skillsculpt/internal/types"
	"github.com/spf13/cobra"
)

var suggestSkillsCmd = &cobra.Command{
	Use:   "suggest-skills",
	Short: "Suggest skills missing from a resume",
	Long: `Asks the configured model for skills that fit the given resume context and
prints the ones not already listed, one per line.

Context comes from --resume (a resume document JSON file), from the individual
flags, or both. Flag values are appended to what the file provides.`,
	RunE: runSuggestSkills,
}

var (
	suggestResumeFile   string
	suggestSummary      string
	suggestTitles       []string
	suggestDescriptions []string
	suggestSkills       []string
	suggestVerbose      bool
)

func init() {
	suggestSkillsCmd.Flags().StringVarP(&suggestResumeFile, "resume", "r", "", "Path to a resume document JSON file")
	suggestSkillsCmd.Flags().StringVar(&suggestSummary, "summary", "", "Professional summary")
	suggestSkillsCmd.Flags().StringSliceVar(&suggestTitles, "title", nil, "Job title (repeatable)")
	suggestSkillsCmd.Flags().StringArrayVar(&suggestDescriptions, "description", nil, "Job description (repeatable)")
	suggestSkillsCmd.Flags().StringSliceVar(&suggestSkills, "skill", nil, "Skill already listed (repeatable)")
	suggestSkillsCmd.Flags().BoolVarP(&suggestVerbose, "verbose", "v", false, "Show the prompt and a formatted result on stderr")

	rootCmd.AddCommand(suggestSkillsCmd)
}

func runSuggestSkills(cmd *cobra.Command, _ []string) error {
	req := types.SkillSuggestionRequest{
		Summary:         &suggestSummary,
		JobTitles:       []string{},
		JobDescriptions: []string{},
		ExistingSkills:  []string{},
	}
	if suggestResumeFile != "" {
		doc, err := loadResumeDocument(suggestResumeFile)
		if err != nil {
			return err
		}
		req = requestFromResume(doc)
		if suggestSummary != "" {
			req.Summary = &suggestSummary
		}
	}
	req.JobTitles = append(req.JobTitles, suggestTitles...)
	req.JobDescriptions = append(req.JobDescriptions, suggestDescriptions...)
	req.ExistingSkills = append(req.ExistingSkills, suggestSkills...)

	builder, err := prompts.NewBuilder()
	if err != nil {
		return fmt.Errorf("failed to load prompts: %w", err)
	}
	prompt := builder.BuildSkillSuggestion(req.SummaryText(), req.JobTitles, req.JobDescriptions, req.ExistingSkills)

	cfg, _, err := loadAIConfig()
	if err != nil {
		return err
	}
	gateway, err := newGateway(cmd.Context(), cfg.AI)
	if err != nil {
		return err
	}
	defer func() { _ = gateway.Close() }()

	var printer *observability.Printer
	if suggestVerbose {
		printer = observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintRequest("skills", gateway.Model(), cfg.AI.Streaming, prompt)
	}

	text, err := llm.Call(cmd.Context(), gateway, prompt, llm.ProfileSkills, cfg.AI.Streaming)
	if err != nil {
		return fmt.Errorf("skill suggestion failed: %w", err)
	}

	parsed := skills.ParseSuggestions(text)
	kept := skills.FilterExisting(parsed, req.ExistingSkills)
	if printer != nil {
		printer.PrintSkillSuggestions(parsed, kept)
	}

	for _, skill := range kept {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), skill); err != nil {
			return err
		}
	}
	return nil
}

// loadResumeDocument reads a resume document and validates it against the resume schema.
func loadResumeDocument(path string) (*types.ResumeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}

	validator, err := schemas.NewResumeValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateBytes(data); err != nil {
		return nil, fmt.Errorf("invalid resume %s: %w", path, err)
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

// requestFromResume derives the skill suggestion context from a stored resume.
func requestFromResume(doc *types.ResumeDocument) types.SkillSuggestionRequest {
	summary := doc.Summary
	return types.SkillSuggestionRequest{
		Summary:         &summary,
		JobTitles:       doc.JobTitles(),
		JobDescriptions: doc.JobDescriptions(),
		ExistingSkills:  append([]string{}, doc.Skills...),
	}
}
