// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/cvera/cv-import/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfileSummary outputs a human-readable summary of a normalized profile.
func (p *Printer) PrintProfileSummary(profile *types.NormalizedProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.PersonalInfo.FullName))
	if profile.PersonalInfo.Headline != "" {
		sb.WriteString(fmt.Sprintf("Headline: %s\n", profile.PersonalInfo.Headline))
	}
	if profile.PersonalInfo.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", profile.PersonalInfo.Location))
	}
	sb.WriteString("\n")

	if len(profile.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(profile.Experience)))
		count := min(len(profile.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			entry := profile.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", entry.Title))
			if entry.Organization != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", entry.Organization))
			}
			sb.WriteString("\n")
		}
		if len(profile.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(profile.VolunteerExperience) > 0 {
		sb.WriteString(fmt.Sprintf("Volunteer (%d):\n", len(profile.VolunteerExperience)))
		count := min(len(profile.VolunteerExperience), 3)
		for i := 0; i < count; i++ {
			entry := profile.VolunteerExperience[i]
			sb.WriteString(fmt.Sprintf("  • %s @ %s\n", entry.Title, entry.Organization))
		}
		if len(profile.VolunteerExperience) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.VolunteerExperience)-3))
		}
		sb.WriteString("\n")
	}

	if len(profile.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education (%d):\n", len(profile.Education)))
		count := min(len(profile.Education), 3)
		for i := 0; i < count; i++ {
			entry := profile.Education[i]
			sb.WriteString(fmt.Sprintf("  • %s", entry.Institution))
			if entry.Degree != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", entry.Degree))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(profile.Skills) > 0 {
		count := min(len(profile.Skills), maxItemsToShow)
		shown := strings.Join(profile.Skills[:count], ", ")
		if len(profile.Skills) > count {
			shown += fmt.Sprintf(", ... (%d total)", len(profile.Skills))
		}
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", shown))
	}

	p.printBox("Imported Profile", strings.TrimRight(sb.String(), "\n"))
}

// PrintQuotaStatus outputs the user's current daily quota standing.
func (p *Printer) PrintQuotaStatus(tier types.Tier, used, remaining int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tier:      %s\n", tier))
	sb.WriteString(fmt.Sprintf("Used:      %d\n", used))
	if remaining == types.UnlimitedImports {
		sb.WriteString("Remaining: unlimited")
	} else {
		sb.WriteString(fmt.Sprintf("Remaining: %d", remaining))
	}
	p.printBox("Daily Import Quota", sb.String())
}
