package discovery

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// ScrapeLinks parses an HTML index page and collects every anchor whose href
// ends in ".pdf", resolved against baseURL. Document order is preserved and
// repeated hrefs are deduplicated. The output feeds the provenance URL table.
func ScrapeLinks(ctx context.Context, baseURL string, r io.Reader) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var links []string
	seen := make(map[string]struct{})

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				href := strings.TrimSpace(attr.Val)
				if !strings.HasSuffix(strings.ToLower(href), ".pdf") {
					break
				}
				ref, perr := url.Parse(href)
				if perr != nil {
					break
				}
				abs := base.ResolveReference(ref).String()
				if _, dup := seen[abs]; !dup {
					seen[abs] = struct{}{}
					links = append(links, abs)
				}
				break
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return links, nil
}

// WriteTable writes the newline-delimited URL table consumed by the
// provenance binder.
func WriteTable(path string, urls []string) error {
	var b strings.Builder
	for _, u := range urls {
		b.WriteString(u)
		b.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write url table: %w", err)
	}
	return nil
}
