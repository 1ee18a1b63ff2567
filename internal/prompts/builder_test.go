package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := NewBuilder()
	require.NoError(t, err)
	return b
}

func TestBuild_ContainsLiteralText(t *testing.T) {
	b := newTestBuilder(t)

	inputs := []string{
		"Built reports.",
		"  leading and trailing spaces  ",
		`Quotes "inside" and back\slashes`,
		"Multi\nline\n- bullet",
		"Template-looking {{.Text}} and {{.Instruction}} text",
		"Unicode: résumé, 履歴書, emoji 🚀",
		"$1 and ${var} and %s and %v",
	}

	categories := append(LinkedInCategories(), CategoryWorkExperience)
	for _, category := range categories {
		for _, input := range inputs {
			prompt, err := b.Build(category, input)
			require.NoError(t, err)
			assert.True(t, strings.Contains(prompt, input),
				"category %s: prompt should contain %q verbatim", category, input)
		}
	}
}

func TestBuild_WorkExperience(t *testing.T) {
	b := newTestBuilder(t)

	prompt, err := b.Build(CategoryWorkExperience, "Built reports.")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(prompt, "Enhance the following resume work experience description"))
	assert.True(t, strings.HasSuffix(prompt, `Original description: "Built reports."`))
}

func TestBuild_LinkedInInstructions(t *testing.T) {
	b := newTestBuilder(t)

	tests := []struct {
		category Category
		want     string
	}{
		{CategoryHeadline, "attention-grabbing headline"},
		{CategorySummary, "tells your professional story"},
		{CategoryExperience, "highlight achievements and impact"},
		{CategoryEducation, "relevant academic achievements"},
		{CategorySkills, "present your skills"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			prompt, err := b.Build(tt.category, "text")
			require.NoError(t, err)
			assert.Contains(t, prompt, "Review the following LinkedIn "+string(tt.category)+":")
			assert.Contains(t, prompt, tt.want)
			assert.NotContains(t, prompt, "{{.")
		})
	}
}

func TestBuild_UnknownCategory(t *testing.T) {
	b := newTestBuilder(t)

	_, err := b.Build("cover_letter", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown enhancement category")
}

func TestBuildSkillSuggestion(t *testing.T) {
	b := newTestBuilder(t)

	prompt := b.BuildSkillSuggestion(
		"Data engineer with 5 years of experience",
		[]string{"Data Engineer", "Analyst"},
		[]string{"Built ETL pipelines.", "Maintained dashboards."},
		[]string{"SQL", "Python"},
	)

	assert.Contains(t, prompt, "Resume Summary: Data engineer with 5 years of experience")
	assert.Contains(t, prompt, "Job Titles: Data Engineer, Analyst")
	assert.Contains(t, prompt, "Built ETL pipelines.\n\nMaintained dashboards.")
	assert.Contains(t, prompt, "Existing Skills Already Listed: SQL, Python")
	assert.Contains(t, prompt, "comma-separated list")
}

func TestBuildSkillSuggestion_Placeholders(t *testing.T) {
	b := newTestBuilder(t)

	prompt := b.BuildSkillSuggestion("  ", nil, []string{}, nil)

	assert.Contains(t, prompt, "Resume Summary: Not provided")
	assert.Contains(t, prompt, "Job Titles: Not provided")
	assert.Contains(t, prompt, "Job Descriptions:\nNot provided")
	assert.Contains(t, prompt, "Existing Skills Already Listed: None")
}

func TestCategory_Valid(t *testing.T) {
	assert.True(t, CategoryHeadline.Valid())
	assert.True(t, CategoryWorkExperience.Valid())
	assert.False(t, Category("").Valid())
	assert.False(t, Category("Headline").Valid())
}
