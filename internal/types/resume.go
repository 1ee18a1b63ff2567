//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Template styles a resume can be rendered with.
var TemplatePreferences = []string{"classic", "modern", "minimal", "professional"}

// ContactInfo holds the contact block of a resume.
type ContactInfo struct {
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	Location  string `json:"location,omitempty"`
}

// ExperienceEntry is one position in the work history.
type ExperienceEntry struct {
	ID          string `json:"id"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one school in the education history.
type EducationEntry struct {
	ID           string `json:"id"`
	SchoolName   string `json:"schoolName"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// ResumeDocument is the user-editable body of a resume.
type ResumeDocument struct {
	ResumeName         string            `json:"resumeName"`
	Contact            ContactInfo       `json:"contact"`
	Summary            string            `json:"summary"`
	Experience         []ExperienceEntry `json:"experience"`
	Education          []EducationEntry  `json:"education"`
	Skills             []string          `json:"skills"`
	TemplatePreference string            `json:"templatePreference,omitempty"`
}

// Normalize replaces nil lists with empty ones so documents always encode
// arrays rather than null.
func (d *ResumeDocument) Normalize() {
	if d.Experience == nil {
		d.Experience = []ExperienceEntry{}
	}
	if d.Education == nil {
		d.Education = []EducationEntry{}
	}
	if d.Skills == nil {
		d.Skills = []string{}
	}
}

// JobTitles returns the non-empty job titles of the work history.
func (d *ResumeDocument) JobTitles() []string {
	titles := make([]string, 0, len(d.Experience))
	for _, e := range d.Experience {
		if e.JobTitle != "" {
			titles = append(titles, e.JobTitle)
		}
	}
	return titles
}

// JobDescriptions returns the non-empty job descriptions of the work history.
func (d *ResumeDocument) JobDescriptions() []string {
	descriptions := make([]string, 0, len(d.Experience))
	for _, e := range d.Experience {
		if e.Description != "" {
			descriptions = append(descriptions, e.Description)
		}
	}
	return descriptions
}

// Resume is a stored resume owned by one subject.
type Resume struct {
	ID      uuid.UUID `json:"id"`
	OwnerID string    `json:"ownerId"`
	ResumeDocument
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
