package normalize

import (
	"log/slog"
	"strings"

	"github.com/scandocs/pipeline/constants"
	"github.com/scandocs/pipeline/internal/entity"
)

// Normalizer cleans OCR text and annotates pages with document-boundary
// markers. Output is a pure function of the input text and the rule table:
// no randomness, no external state.
type Normalizer struct {
	rules  []Rule
	logger *slog.Logger
}

func NewNormalizer(rules []Rule, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if rules == nil {
		rules = DefaultRules()
	}
	return &Normalizer{rules: rules, logger: logger}
}

// CleanText collapses all whitespace runs (embedded newlines included) to
// single spaces, trims the ends, and applies the correction table in order,
// one pass per rule.
func (n *Normalizer) CleanText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	for _, rule := range n.rules {
		text = rule.Pattern.ReplaceAllString(text, rule.Replacement)
	}
	return text
}

// Apply cleans and annotates every page in place. The pre-cleaning text is
// preserved as OriginalText, never discarded. The first page gets the
// start-of-document prefix; every page but the last gets a page-break
// suffix; the last gets the end-of-document suffix. TotalPages nominally
// decides which page is last, but when it disagrees with the page array the
// array length wins so we never index past it.
func (n *Normalizer) Apply(doc *entity.Document) {
	lastIndex := doc.TotalPages - 1
	if doc.TotalPages != len(doc.Pages) {
		lastIndex = len(doc.Pages) - 1
	}

	for idx, page := range doc.Pages {
		original := page.Text
		cleaned := n.CleanText(original)

		var b strings.Builder
		if idx == 0 {
			b.WriteString(constants.StartDocMarker)
			b.WriteString("\n")
		}
		b.WriteString(cleaned)
		b.WriteString("\n")
		if idx == lastIndex {
			b.WriteString(constants.EndDocMarker)
		} else {
			b.WriteString(constants.PageBreakMarker)
		}

		page.OriginalText = original
		page.Text = b.String()
	}
	doc.Status = constants.DocStatusNormalized
}
