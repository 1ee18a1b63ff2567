package prompts

import (
	"fmt"
	"strings"
)

// Category is the kind of profile or resume content being enhanced.
type Category string

// LinkedIn profile sections plus the resume work-experience bullet.
const (
	CategoryHeadline       Category = "headline"
	CategorySummary        Category = "summary"
	CategoryExperience     Category = "experience"
	CategoryEducation      Category = "education"
	CategorySkills         Category = "skills"
	CategoryWorkExperience Category = "work_experience"
)

const enhancementFile = "enhancement.json"

// LinkedInCategories lists the sections accepted by the LinkedIn enhancement endpoint.
func LinkedInCategories() []Category {
	return []Category{CategoryHeadline, CategorySummary, CategoryExperience, CategoryEducation, CategorySkills}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	if c == CategoryWorkExperience {
		return true
	}
	for _, known := range LinkedInCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Builder renders prompts from the embedded enhancement templates.
// It is immutable after construction and safe for concurrent use.
type Builder struct {
	templates Set
}

// NewBuilder loads the templates and checks every category has one.
func NewBuilder() (*Builder, error) {
	set, err := LoadFile(enhancementFile)
	if err != nil {
		return nil, err
	}

	required := []string{"work_experience", "linkedin", "skill_context", "skill_suggestion"}
	for _, c := range LinkedInCategories() {
		required = append(required, instructionKey(c))
	}
	for _, key := range required {
		if _, err := set.Get(key); err != nil {
			return nil, fmt.Errorf("%s: %w", enhancementFile, err)
		}
	}

	return &Builder{templates: set}, nil
}

// Build returns the instruction for enhancing text of the given category.
// text is interpolated verbatim.
func (b *Builder) Build(category Category, text string) (string, error) {
	switch {
	case category == CategoryWorkExperience:
		return Format(b.templates["work_experience"], map[string]string{"Text": text}), nil
	case category.Valid():
		return Format(b.templates["linkedin"], map[string]string{
			"Field":       string(category),
			"Text":        text,
			"Instruction": b.templates[instructionKey(category)],
		}), nil
	default:
		return "", fmt.Errorf("unknown enhancement category %q", category)
	}
}

// BuildSkillSuggestion returns the instruction asking for new skills given
// the resume context. Empty inputs are rendered as "Not provided" or "None".
func (b *Builder) BuildSkillSuggestion(summary string, jobTitles, jobDescriptions, existingSkills []string) string {
	context := Format(b.templates["skill_context"], map[string]string{
		"Summary":      orDefault(summary, "Not provided"),
		"Titles":       orDefault(strings.Join(jobTitles, ", "), "Not provided"),
		"Descriptions": orDefault(strings.Join(jobDescriptions, "\n\n"), "Not provided"),
		"Skills":       orDefault(strings.Join(existingSkills, ", "), "None"),
	})

	return Format(b.templates["skill_suggestion"], map[string]string{"Context": context})
}

func instructionKey(c Category) string {
	return "linkedin_" + string(c)
}

func orDefault(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}
