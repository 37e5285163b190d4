// ABOUTME: Terminal UI formatting for notebook output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/notebook/internal/models"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

type TagCount struct {
	ID    string
	Label string
	Count int
}

// FormatNoteListItem renders one note card: short ID, title, tag labels.
func FormatNoteListItem(note models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(note.ShortID()), bold(note.Title)))

	if len(note.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("          %s %s\n",
			faint("Tags:"),
			cyan(strings.Join(models.TagLabels(note.Tags), ", "))))
	}

	return sb.String()
}

// FormatNoteList renders every note, or a placeholder when there are none.
func FormatNoteList(notes []models.Note) string {
	if len(notes) == 0 {
		return "No notes found.\n"
	}
	var sb strings.Builder
	for _, n := range notes {
		sb.WriteString(FormatNoteListItem(n))
	}
	return sb.String()
}

// FormatFilterSummary describes an active filter, or returns "" when
// nothing is filtered.
func FormatFilterSummary(title string, tags []models.Tag, shown, total int) string {
	if title == "" && len(tags) == 0 {
		return ""
	}
	var parts []string
	if title != "" {
		parts = append(parts, fmt.Sprintf("title ~ %q", title))
	}
	if len(tags) > 0 {
		parts = append(parts, "tags: "+strings.Join(models.TagLabels(tags), " + "))
	}
	return faint(fmt.Sprintf("Filter %s (%d of %d)\n", strings.Join(parts, ", "), shown, total))
}

func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatNoteHeader(note models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID)))

	if len(note.Tags) > 0 {
		var badges []string
		for _, t := range note.Tags {
			badges = append(badges, cyan("["+t.Label+"]"))
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Tags:"), strings.Join(badges, " ")))
	}

	sb.WriteString(Separator())
	return sb.String()
}

func FormatTagList(tags []TagCount) string {
	var sb strings.Builder

	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("  %s  %s %s\n",
			faint(shortTagID(t.ID)),
			cyan(t.Label),
			faint(fmt.Sprintf("(%d)", t.Count))))
	}

	return sb.String()
}

// FormatStaleRefs warns about note references to deleted tags.
func FormatStaleRefs(count int) string {
	if count == 0 {
		return ""
	}
	return yellow(fmt.Sprintf("\n%d note tag reference(s) point at deleted tags; run `notebook tag prune` to remove them.\n", count))
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func Warning(msg string) string {
	return yellow("! ") + msg
}

func shortTagID(id string) string {
	if len(id) <= models.ShortIDLen {
		return id
	}
	return id[:models.ShortIDLen]
}
