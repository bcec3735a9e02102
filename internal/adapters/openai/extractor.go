package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"travel-search-service/internal/domain"
	"travel-search-service/internal/metrics"
	"travel-search-service/internal/platform/obs"
)

const systemPrompt = `You are a travel assistant. Extract round-trip flight
search criteria from the user's message and return ONLY a JSON object matching
this schema, with no extra text or commentary:

{
  "originCity": "string (e.g. Paris)",
  "destinationCity": "string (e.g. Bangkok)",
  "period": {"start": "YYYY-MM-DD", "durationDays": "integer >= 1"},
  "departureDate": "YYYY-MM-DD",
  "returnDate": "YYYY-MM-DD",
  "passengers": {"adults": "integer >= 1", "children": "integer >= 0", "infants": "integer >= 0"},
  "maxStops": "integer 0..2",
  "budgetPerPaxEUR": "number >= 0",
  "flexDays": "integer 0..3"
}

Rules:
- If the user gives exact dates, fill departureDate and returnDate.
- If the user gives a time window plus a trip length, fill period.start and period.durationDays.
- Always include passengers; default to 1 adult, 0 children, 0 infants.
- Omit fields the message says nothing about. No explanations outside the JSON.`

// Extractor implements ports.QueryExtractor using an OpenAI-compatible
// chat-completions endpoint in JSON mode.
type Extractor struct {
	session *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewExtractor(baseURL, apiKey, model string) (*Extractor, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Extractor{
		session: &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}, nil
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Temperature float64 `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Mirrors the schema the model is prompted with. MaxStops is a pointer so an
// omitted field can be distinguished from an explicit zero (nonstop only).
type extractedQuery struct {
	OriginCity      string             `json:"originCity"`
	DestinationCity string             `json:"destinationCity"`
	DepartureDate   string             `json:"departureDate"`
	ReturnDate      string             `json:"returnDate"`
	Period          *domain.Period     `json:"period"`
	Passengers      *domain.Passengers `json:"passengers"`
	MaxStops        *int               `json:"maxStops"`
	BudgetPerPax    *float64           `json:"budgetPerPaxEUR"`
	FlexDays        int                `json:"flexDays"`
}

// Extract turns a free-text travel request into a structured search query.
// Model output is taken as-is apart from defaulting: 1 adult when passengers
// are missing and one allowed stop when maxStops is missing.
func (e *Extractor) Extract(ctx context.Context, message string) (_ domain.SearchQuery, err error) {
	defer obs.Time(ctx, "openai.Extract")(&err)

	body := chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
		Temperature: 0,
	}
	body.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(body)
	if err != nil {
		return domain.SearchQuery{}, fmt.Errorf("extract query: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		e.baseURL+"/v1/chat/completions",
		bytes.NewReader(payload),
	)
	if err != nil {
		return domain.SearchQuery{}, fmt.Errorf("extract query: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.session.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("openai", "extract", "error").Inc()
		return domain.SearchQuery{}, fmt.Errorf("extract query: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		metrics.UpstreamRequests.WithLabelValues("openai", "extract", "error").Inc()
		return domain.SearchQuery{}, fmt.Errorf(
			"extract query: unexpected status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(b)),
		)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.SearchQuery{}, fmt.Errorf("extract query: decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return domain.SearchQuery{}, errors.New("extract query: completion returned no choices")
	}

	var parsed extractedQuery
	if err := json.Unmarshal([]byte(decoded.Choices[0].Message.Content), &parsed); err != nil {
		return domain.SearchQuery{}, fmt.Errorf("extract query: parse model JSON: %w", err)
	}

	metrics.UpstreamRequests.WithLabelValues("openai", "extract", "ok").Inc()

	q := domain.SearchQuery{
		OriginCity:      parsed.OriginCity,
		DestinationCity: parsed.DestinationCity,
		DepartureDate:   parsed.DepartureDate,
		ReturnDate:      parsed.ReturnDate,
		Period:          parsed.Period,
		BudgetPerPax:    parsed.BudgetPerPax,
		FlexDays:        parsed.FlexDays,
		MaxStops:        1,
	}
	if parsed.Passengers != nil {
		q.Passengers = *parsed.Passengers
	}
	if parsed.MaxStops != nil {
		q.MaxStops = *parsed.MaxStops
	}
	return q, nil
}
