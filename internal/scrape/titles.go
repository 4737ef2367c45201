// Package scrape resolves page titles for citation URLs returned by the
// research backend, so the terminal can show "Apple Q3 Earnings Call" in
// place of a bare link. Resolution is best effort; failures fall back to
// the URL itself.
package scrape

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const maxTitleLen = 120

// TitleResolver fetches and caches <title> text for citation URLs.
type TitleResolver struct {
	client *resty.Client
	cache  map[string]string
}

// NewTitleResolver builds a resolver with a short per-page timeout.
func NewTitleResolver() *TitleResolver {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; stonk/1.0)")

	return &TitleResolver{
		client: client,
		cache:  make(map[string]string),
	}
}

// Resolve returns the page title for url, or url itself when the page
// cannot be fetched or carries no usable title. Results are cached for
// the resolver's lifetime.
func (r *TitleResolver) Resolve(ctx context.Context, url string) string {
	if title, ok := r.cache[url]; ok {
		return title
	}

	title := r.fetchTitle(ctx, url)
	if title == "" {
		title = url
	}
	r.cache[url] = title
	return title
}

// ResolveAll maps each citation URL to a display title, preserving order.
func (r *TitleResolver) ResolveAll(ctx context.Context, urls []string) []string {
	out := make([]string, len(urls))
	for i, u := range urls {
		out[i] = r.Resolve(ctx, u)
	}
	return out
}

func (r *TitleResolver) fetchTitle(ctx context.Context, url string) string {
	resp, err := r.client.R().SetContext(ctx).Get(url)
	if err != nil || resp.StatusCode() != 200 {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return ""
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	title = strings.Join(strings.Fields(title), " ")
	// Truncate on rune boundaries so multibyte titles stay valid UTF-8.
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen-3]) + "..."
	}
	return title
}
