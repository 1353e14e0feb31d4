package normalize

import (
	"testing"

	"github.com/scandocs/pipeline/internal/entity"
)

func TestCleanTextWhitespace(t *testing.T) {
	n := NewNormalizer(DefaultRules(), nil)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"newlines", "line one\nline two", "line one line two"},
		{"runs", "a  \t b\n\n  c", "a b c"},
		{"trim", "  padded  ", "padded"},
		{"empty", "", ""},
		{"only whitespace", " \n\t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanTextCorrections(t *testing.T) {
	n := NewNormalizer(DefaultRules(), nil)
	tests := []struct {
		in   string
		want string
	}{
		{"Osw1ald met Oswiald", "Oswald met Oswald"},
		{"OSW1ALD", "Oswald"}, // case-insensitive match, fixed replacement
		{"j.f.k. files", "John F. Kennedy files"},
		{"the K.G.B and C.I.A.", "the KGB and CIA"},
		{"flew to Mexic0 from Dall as", "flew to Mexico from Dallas"},
		{"Kennedv and Harvev", "Kennedy and Harvey"},
		{"nothing to fix", "nothing to fix"},
	}
	for _, tt := range tests {
		if got := n.CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanTextRuleOrder(t *testing.T) {
	// a later rule may rewrite an earlier rule's output, never vice versa
	first, err := compileRule(ruleSpec{`teh`, "the"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := compileRule(ruleSpec{`the end`, "the conclusion"})
	if err != nil {
		t.Fatal(err)
	}

	forward := NewNormalizer([]Rule{first, second}, nil)
	if got := forward.CleanText("teh end"); got != "the conclusion" {
		t.Errorf("forward order = %q, want %q", got, "the conclusion")
	}

	reversed := NewNormalizer([]Rule{second, first}, nil)
	if got := reversed.CleanText("teh end"); got != "the end" {
		t.Errorf("reversed order = %q, want %q", got, "the end")
	}
}

func TestCleanTextIsPure(t *testing.T) {
	n := NewNormalizer(DefaultRules(), nil)
	in := "Osw1ald\n in  Dall as"
	first := n.CleanText(in)
	second := n.CleanText(in)
	if first != second {
		t.Errorf("CleanText not deterministic: %q vs %q", first, second)
	}
}

func page(num int, text string) *entity.Page {
	return &entity.Page{PageNumber: num, Text: text, Entities: []entity.Entity{}}
}

func TestApplySinglePage(t *testing.T) {
	n := NewNormalizer(DefaultRules(), nil)
	doc := &entity.Document{
		DocumentID: "A",
		TotalPages: 1,
		Pages:      []*entity.Page{page(1, "only\npage")},
	}
	n.Apply(doc)

	want := "[START_DOC]\nonly page\n[END_DOC]"
	if doc.Pages[0].Text != want {
		t.Errorf("text = %q, want %q", doc.Pages[0].Text, want)
	}
	if doc.Pages[0].OriginalText != "only\npage" {
		t.Errorf("original_text = %q, want the pre-cleaning text", doc.Pages[0].OriginalText)
	}
}

func TestApplyMultiPageMarkers(t *testing.T) {
	n := NewNormalizer(DefaultRules(), nil)
	doc := &entity.Document{
		DocumentID: "A",
		TotalPages: 3,
		Pages: []*entity.Page{
			page(1, "first"),
			page(2, "middle"),
			page(3, "last"),
		},
	}
	n.Apply(doc)

	wants := []string{
		"[START_DOC]\nfirst\n[PAGE_BREAK]",
		"middle\n[PAGE_BREAK]",
		"last\n[END_DOC]",
	}
	for i, want := range wants {
		if doc.Pages[i].Text != want {
			t.Errorf("page %d text = %q, want %q", i+1, doc.Pages[i].Text, want)
		}
	}
}

func TestApplyTotalPagesDisagreement(t *testing.T) {
	// when total_pages disagrees with the array, the array length decides;
	// the last actual page still gets the end marker
	n := NewNormalizer(DefaultRules(), nil)
	doc := &entity.Document{
		DocumentID: "A",
		TotalPages: 5,
		Pages: []*entity.Page{
			page(1, "first"),
			page(2, "second"),
		},
	}
	n.Apply(doc)

	if got, want := doc.Pages[1].Text, "second\n[END_DOC]"; got != want {
		t.Errorf("last page text = %q, want %q", got, want)
	}
}

func TestApplyIdempotentInputs(t *testing.T) {
	build := func() *entity.Document {
		return &entity.Document{
			DocumentID: "A",
			TotalPages: 2,
			Pages:      []*entity.Page{page(1, "one  two"), page(2, "three")},
		}
	}
	n := NewNormalizer(DefaultRules(), nil)
	a, b := build(), build()
	n.Apply(a)
	n.Apply(b)
	for i := range a.Pages {
		if a.Pages[i].Text != b.Pages[i].Text {
			t.Errorf("page %d diverged between identical runs", i+1)
		}
	}
}
