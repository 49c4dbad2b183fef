package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"rewardmax-server/src/models"
)

// RefineContext is everything the refiner may mention: the ranked cards plus
// the community chatter collected for the merchant.
type RefineContext struct {
	Merchant        string                  `json:"merchant"`
	Amount          float64                 `json:"amount"`
	Channel         string                  `json:"channel,omitempty"`
	Split           bool                    `json:"split"`
	Recommendations []models.Recommendation `json:"recommendations"`
	CommunityItems  []Item                  `json:"community_insights,omitempty"`
}

// Refiner turns the ranked recommendation payload into a short prose
// summary. It prefers a local Ollama server, then OpenAI if a key is
// configured, and otherwise produces a deterministic local summary. The
// raw recommendations stay fully meaningful without any of them.
type Refiner struct {
	httpClient  *http.Client
	ollamaURL   string
	ollamaModel string
	openAIKey   string
	openAIURL   string
}

func NewRefiner() *Refiner {
	ollamaURL := os.Getenv("OLLAMA_URL")
	if ollamaURL == "" {
		ollamaURL = "http://127.0.0.1:11434"
	}
	ollamaModel := os.Getenv("OLLAMA_MODEL")
	if ollamaModel == "" {
		ollamaModel = "llama3.1:8b"
	}
	return &Refiner{
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		ollamaURL:   ollamaURL,
		ollamaModel: ollamaModel,
		openAIKey:   os.Getenv("OPENAI_API_KEY"),
		openAIURL:   "https://api.openai.com/v1/chat/completions",
	}
}

func (r *Refiner) Refine(ctx context.Context, rc RefineContext) string {
	prompt := buildPrompt(rc)

	if answer := r.ollama(ctx, prompt); answer != "" {
		return answer
	}
	if answer := r.openAI(ctx, prompt); answer != "" {
		return answer
	}
	return fallbackSummary(rc)
}

func buildPrompt(rc RefineContext) string {
	raw, _ := json.Marshal(rc)
	return "You are a rewards optimization assistant. Summarize recommendations in bullet points " +
		"with clear ordered card usage, caveats, and action items.\nContext: " + string(raw)
}

func (r *Refiner) ollama(ctx context.Context, prompt string) string {
	payload := map[string]interface{}{
		"model":  r.ollamaModel,
		"prompt": prompt,
		"stream": false,
	}
	raw, err := r.postJSON(ctx, r.ollamaURL+"/api/generate", payload, "")
	if err != nil {
		return ""
	}
	var parsed struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ""
	}
	return strings.TrimSpace(parsed.Response)
}

func (r *Refiner) openAI(ctx context.Context, prompt string) string {
	if r.openAIKey == "" {
		return ""
	}
	payload := map[string]interface{}{
		"model": "gpt-4o-mini",
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens": 300,
	}
	raw, err := r.postJSON(ctx, r.openAIURL, payload, "Bearer "+r.openAIKey)
	if err != nil {
		log.Printf("ERROR: OpenAI refinement failed: %v", err)
		return ""
	}
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content)
}

func (r *Refiner) postJSON(ctx context.Context, url string, payload interface{}, authorization string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

func fallbackSummary(rc RefineContext) string {
	var lines []string
	for i, rec := range rc.Recommendations {
		if i >= 3 {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. Use %s first (~₹%.2f savings, reason: %s).",
			i+1, rec.CardID, rec.Savings, rec.Reason))
	}
	lines = append(lines, "",
		"No external LLM configured/reachable, so this is a local deterministic summary.",
		"Set OLLAMA_URL for a local Ollama server or OPENAI_API_KEY for hosted refinement.")
	return strings.Join(lines, "\n")
}
