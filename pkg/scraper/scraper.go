// Package scraper extracts product details (name, price, image) from a product page.
package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

var (
	// ErrNoDetails is returned when neither a title nor a price could be found
	ErrNoDetails = errors.New("could not extract item details; the site may be blocking the request or uses an unsupported layout")
	// ErrFetch wraps transport and non-2xx failures
	ErrFetch = errors.New("failed to fetch url")
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36"
	maxBodyBytes     = 5 << 20
)

// Product scraped product details
type Product struct {
	Name     string   `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	URL      string   `json:"url"`
}

// Scraper fetches and parses product pages
type Scraper struct {
	client    *http.Client
	userAgent string
}

// New creates a Scraper. A zero timeout defaults to 15s.
func New(timeout time.Duration, userAgent string) *Scraper {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Scraper{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Scrape downloads rawURL and extracts product details
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("DNT", "1")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: site responded with status code %d", ErrFetch, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	p := Extract(doc)
	p.URL = rawURL
	if p.Name == "" && p.Price == nil {
		return nil, ErrNoDetails
	}
	return p, nil
}

// Extract reads product details from a parsed document.
// Amazon-style markup is tried first, then OpenGraph meta tags.
func Extract(doc *html.Node) *Product {
	p := &Product{}

	if n := findFirst(doc, func(n *html.Node) bool { return attr(n, "id") == "productTitle" }); n != nil {
		p.Name = collapseSpace(textContent(n))
	}
	if p.Name == "" {
		p.Name = metaContent(doc, "og:title")
	}
	if p.Name == "" {
		if n := findFirst(doc, isElement("title")); n != nil {
			p.Name = collapseSpace(textContent(n))
		}
	}

	if n := findFirst(doc, func(n *html.Node) bool {
		return hasClass(n, "a-offscreen") && hasAncestor(n, func(a *html.Node) bool { return hasClass(a, "a-price") })
	}); n != nil {
		p.Price = parsePrice(textContent(n))
	}
	if p.Price == nil {
		for _, prop := range []string{"product:price:amount", "og:price:amount"} {
			if v := metaContent(doc, prop); v != "" {
				p.Price = parsePrice(v)
				break
			}
		}
	}

	p.ImageURL = extractImage(doc)
	return p
}

func extractImage(doc *html.Node) string {
	if wrapper := findFirst(doc, func(n *html.Node) bool { return attr(n, "id") == "imgTagWrapperId" }); wrapper != nil {
		if img := findFirst(wrapper, isElement("img")); img != nil {
			if dyn := attr(img, "data-a-dynamic-image"); dyn != "" {
				if u := firstJSONKey(dyn); u != "" {
					return u
				}
			}
		}
	}

	for _, id := range []string{"landingImage", "imgBlkFront"} {
		if img := findFirst(doc, func(n *html.Node) bool { return attr(n, "id") == id }); img != nil {
			if src := attr(img, "src"); src != "" {
				return src
			}
		}
	}

	return metaContent(doc, "og:image")
}

// firstJSONKey returns the first key of a JSON object in document order
func firstJSONKey(raw string) string {
	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return ""
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ""
	}
	tok, err = dec.Token()
	if err != nil {
		return ""
	}
	key, _ := tok.(string)
	return key
}

func parsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func metaContent(doc *html.Node, property string) string {
	n := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "meta" &&
			(attr(n, "property") == property || attr(n, "name") == property)
	})
	if n == nil {
		return ""
	}
	return strings.TrimSpace(attr(n, "content"))
}

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == tag }
}

func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	if match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func hasAncestor(n *html.Node, match func(*html.Node) bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if match(p) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	if n.Type != html.ElementNode {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
