package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const scanCacheTTL = 15 * time.Minute

type Result struct {
	Summary string   `json:"summary"`
	Sources []Source `json:"sources"`
	Items   []Item   `json:"items"`
}

type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Item struct {
	Source  string `json:"source"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// SocialScanner collects public community chatter about a merchant's card
// offers. Upstream failures degrade to an empty result, never an error: the
// recommendation response stays useful without insights.
type SocialScanner struct {
	httpClient *http.Client
	cache      Cache

	redditBaseURL     string
	technofinoBaseURL string
}

func NewSocialScanner(cache Cache) *SocialScanner {
	return &SocialScanner{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:             cache,
		redditBaseURL:     "https://www.reddit.com",
		technofinoBaseURL: "https://www.technofino.in",
	}
}

func (s *SocialScanner) Scan(ctx context.Context, merchant string) Result {
	query := strings.TrimSpace(merchant)
	if query == "" {
		query = "credit card offers"
	}

	cacheKey := "insight:" + strings.ToLower(query)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		var result Result
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result
		}
	}

	var result Result
	if items := s.scanReddit(ctx, query); len(items) > 0 {
		result.Items = append(result.Items, items...)
		result.Sources = append(result.Sources, Source{
			Name: "Reddit",
			URL:  "https://www.reddit.com/search/?q=" + url.QueryEscape(query),
		})
	}
	if items := s.scanTechnoFino(ctx, query); len(items) > 0 {
		result.Items = append(result.Items, items...)
		result.Sources = append(result.Sources, Source{
			Name: "TechnoFino",
			URL:  "https://www.technofino.in/community/",
		})
	}
	result.Summary = fmt.Sprintf("Collected %d community mentions for '%s' at %s",
		len(result.Items), query, time.Now().UTC().Format("2006-01-02 15:04 UTC"))

	if raw, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(raw), scanCacheTTL); err != nil {
			log.Printf("ERROR: Failed to cache insight scan for %s: %v", query, err)
		}
	}
	return result
}

func (s *SocialScanner) scanReddit(ctx context.Context, query string) []Item {
	params := url.Values{}
	params.Set("q", query+" credit card offer")
	params.Set("limit", "5")
	params.Set("sort", "new")

	payload, err := s.getJSON(ctx, s.redditBaseURL+"/search.json?"+params.Encode())
	if err != nil {
		return nil
	}

	var parsed struct {
		Data struct {
			Children []struct {
				Data struct {
					Title     string `json:"title"`
					Selftext  string `json:"selftext"`
					Permalink string `json:"permalink"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil
	}

	var items []Item
	for _, post := range parsed.Data.Children {
		link := s.redditBaseURL
		if post.Data.Permalink != "" {
			link += post.Data.Permalink
		}
		snippet := post.Data.Selftext
		if len(snippet) > 220 {
			snippet = snippet[:220]
		}
		items = append(items, Item{
			Source:  "reddit",
			Title:   post.Data.Title,
			Snippet: snippet,
			URL:     link,
		})
	}
	return items
}

// scanTechnoFino scrapes the community search page. The markup is simple
// enough that splitting on the result-row class beats pulling in an HTML
// parser for five links.
func (s *SocialScanner) scanTechnoFino(ctx context.Context, query string) []Item {
	params := url.Values{}
	params.Set("q", query)
	params.Set("o", "date")

	body, err := s.getBody(ctx, s.technofinoBaseURL+"/community/search/search?"+params.Encode())
	if err != nil {
		return nil
	}

	chunks := strings.Split(body, `class="contentRow-title"`)
	var items []Item
	for _, chunk := range chunks[min(1, len(chunks)):] {
		if len(items) >= 5 {
			break
		}
		href, rest, ok := extractAttr(chunk, `href="`)
		if !ok {
			continue
		}
		title, ok := extractText(rest)
		if !ok || title == "" {
			continue
		}
		if !strings.HasPrefix(href, "http") {
			href = s.technofinoBaseURL + href
		}
		items = append(items, Item{
			Source:  "technofino",
			Title:   title,
			Snippet: "Community discussion thread",
			URL:     href,
		})
	}
	return items
}

func extractAttr(chunk, marker string) (value, rest string, ok bool) {
	start := strings.Index(chunk, marker)
	if start == -1 {
		return "", "", false
	}
	start += len(marker)
	end := strings.Index(chunk[start:], `"`)
	if end == -1 {
		return "", "", false
	}
	return chunk[start : start+end], chunk[start+end:], true
}

func extractText(chunk string) (string, bool) {
	start := strings.Index(chunk, ">")
	if start == -1 {
		return "", false
	}
	start++
	end := strings.Index(chunk[start:], "<")
	if end == -1 {
		return "", false
	}
	return strings.Join(strings.Fields(chunk[start:start+end]), " "), true
}

func (s *SocialScanner) getJSON(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := s.getBody(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (s *SocialScanner) getBody(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "RewardMax/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
