package parsing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanText collapses runs of whitespace in free-form provider text and trims
// the result. Tabs and carriage returns become spaces; newlines are kept so
// multi-paragraph descriptions survive.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\t", " ")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cleaned = append(cleaned, strings.Join(fields, " "))
	}
	return strings.Join(cleaned, "\n")
}

// StripMarkup removes any HTML markup a provider leaked into a free-text
// field and normalizes the remaining whitespace. Plain text passes through
// CleanText unchanged.
func StripMarkup(text string) string {
	if !strings.ContainsRune(text, '<') {
		return CleanText(text)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return CleanText(text)
	}
	doc.Find("script, style").Remove()
	return CleanText(doc.Text())
}
