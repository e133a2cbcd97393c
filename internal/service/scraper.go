package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/util"
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/validators"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	// MaxRawText is how many characters of extracted text are kept
	MaxRawText = 8000
	// Fallback is used wherever a name couldn't be found
	Fallback = "Unbekannt"

	maxPageSize = 5 << 20
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

var (
	creativeKeywords  = []string{"kreativ", "design", "marketing", "agentur", "startup"}
	technicalKeywords = []string{"entwickler", "engineer", "software", "it", "tech", "programmier"}

	blankRuns = regexp.MustCompile(`\n{3,}`)
)

// JobScraper fetches job postings and pulls the useful bits out of them
type JobScraper struct {
	client *http.Client
}

func NewJobScraper(timeout time.Duration) *JobScraper {
	return &JobScraper{
		client: &http.Client{Timeout: timeout},
	}
}

// Analyze fetches rawURL and parses it as a job posting. Anything that goes
// wrong while fetching is ErrFetch, a page that can't be parsed is ErrScrape.
func (s *JobScraper) Analyze(ctx context.Context, rawURL string) (*model.JobAnalysis, error) {
	if err := validators.JobURL(rawURL); err != nil {
		return nil, fmt.Errorf("%w, %v", ErrFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w, %v", ErrFetch, err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w, %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w, status %d", ErrFetch, resp.StatusCode)
	}

	var body io.Reader = io.LimitReader(resp.Body, maxPageSize)
	if r, err := charset.NewReader(body, resp.Header.Get("Content-Type")); err == nil {
		body = r
	}

	return ParsePosting(body)
}

// ParsePosting extracts a JobAnalysis from an HTML document
func ParsePosting(r io.Reader) (*model.JobAnalysis, error) {
	// Scripting off parses noscript bodies as elements so they can be removed
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("%w, %v", ErrScrape, err)
	}

	doc := goquery.NewDocumentFromNode(root)

	ogTitle := metaProperty(doc, "og:title")
	ogSite := metaProperty(doc, "og:site_name")
	pageTitle := strings.TrimSpace(doc.Find("title").First().Text())
	posting := findPosting(doc)

	// Structured data lives in script tags, so read it before they go
	doc.Find("script, style, noscript, nav, footer, header").Remove()

	text := visibleText(doc.Selection)
	raw := util.Truncate(text, MaxRawText)

	analysis := &model.JobAnalysis{
		JobTitle:     strPtr(firstNonEmpty(ogTitle, posting.title(), pageTitle, Fallback)),
		CompanyName:  strPtr(firstNonEmpty(ogSite, posting.companyName(), Fallback)),
		Requirements: []string{},
		Tasks:        []string{},
		Tone:         ClassifyTone(text),
		RawText:      &raw,
	}

	if loc := posting.location(); loc != "" {
		analysis.Location = &loc
	}

	if desc := posting.companyDescription(); desc != "" {
		analysis.CompanyDescription = &desc
	}

	return analysis, nil
}

// ClassifyTone picks a tone from keywords in text. Creative keywords win
// over technical ones.
func ClassifyTone(text string) model.Tone {
	lower := strings.ToLower(text)

	if containsAny(lower, creativeKeywords) {
		return model.ToneCreative
	}

	if containsAny(lower, technicalKeywords) {
		return model.ToneTechnical
	}

	return model.ToneFormal
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}

	return false
}

func metaProperty(doc *goquery.Document, property string) string {
	content, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// visibleText joins all non-blank text nodes, one per line
func visibleText(sel *goquery.Selection) string {
	var lines []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				lines = append(lines, t)
			}
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
}

// jobPosting is a schema.org JobPosting decoded from JSON-LD
type jobPosting map[string]any

// findPosting returns the first JobPosting found in the JSON-LD blocks of doc.
// Blocks that aren't valid JSON are skipped.
func findPosting(doc *goquery.Document) jobPosting {
	var found jobPosting

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}

		found = searchPosting(data)
		return found == nil
	})

	return found
}

func searchPosting(v any) jobPosting {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if p := searchPosting(item); p != nil {
				return p
			}
		}
	case map[string]any:
		if hasType(t["@type"], "JobPosting") {
			return t
		}

		if graph, ok := t["@graph"]; ok {
			return searchPosting(graph)
		}
	}

	return nil
}

func hasType(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return t == want
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}

	return false
}

func (p jobPosting) title() string {
	return stringField(p, "title")
}

func (p jobPosting) companyName() string {
	switch org := p["hiringOrganization"].(type) {
	case string:
		return strings.TrimSpace(org)
	case map[string]any:
		return stringField(org, "name")
	}

	return ""
}

func (p jobPosting) companyDescription() string {
	if org, ok := p["hiringOrganization"].(map[string]any); ok {
		return stringField(org, "description")
	}

	return ""
}

func (p jobPosting) location() string {
	loc := p["jobLocation"]
	if list, ok := loc.([]any); ok && len(list) > 0 {
		loc = list[0]
	}

	place, ok := loc.(map[string]any)
	if !ok {
		return ""
	}

	switch addr := place["address"].(type) {
	case string:
		return strings.TrimSpace(addr)
	case map[string]any:
		return stringField(addr, "addressLocality")
	}

	return ""
}

// stringField reads m[key] when it's a string. It's safe on a nil map.
func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

func strPtr(s string) *string {
	return &s
}
