// Package insight asks a language model for a short spending summary.
//
// Generation never fails from the caller's point of view: a missing key,
// a transport error or an empty answer each yield a fixed message.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"hisab/internal/core"
)

const (
	// DefaultModel is used when no model name is configured.
	DefaultModel = "gemini-2.5-flash"

	// DigestLimit caps how many transactions are sent to the model.
	DigestLimit = 50

	MsgNoAPIKey = "Unable to access AI service. Please check API Key configuration."
	MsgEmpty    = "No insights available at the moment."
	MsgFailed   = "Sorry, I couldn't generate insights right now. Please try again later."
)

// Generator produces a short human-readable summary of recent transactions.
type Generator interface {
	Generate(ctx context.Context, txs []core.Transaction, cats []core.Category, currency string) string
}

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Gemini struct {
	models contentGenerator
	model  string
}

var _ Generator = (*Gemini)(nil)

// NewGemini creates a generator backed by the Gemini API. An empty apiKey
// is not an error; the generator then always answers MsgNoAPIKey.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if model == "" {
		model = DefaultModel
	}
	if strings.TrimSpace(apiKey) == "" {
		slog.WarnContext(ctx, "No Gemini API key configured, insights disabled")
		return &Gemini{model: model}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{models: client.Models, model: model}, nil
}

// Generate sends a single request with the digest of the first DigestLimit
// transactions, in the order given. There is no retry.
func (g *Gemini) Generate(ctx context.Context, txs []core.Transaction, cats []core.Category, currency string) string {
	if g.models == nil {
		return MsgNoAPIKey
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: Prompt(Digest(txs, cats, currency))}},
		},
	}
	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Insight generation failed", "model", g.model, "error", err)
		return MsgFailed
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return MsgEmpty
	}
	return text
}

// Digest renders one line per transaction:
// "<date>: <description> (<category>) - <symbol><amount> [<TYPE>]".
func Digest(txs []core.Transaction, cats []core.Category, currency string) string {
	if len(txs) > DigestLimit {
		txs = txs[:DigestLimit]
	}
	symbol := core.CurrencySymbol(currency)
	lines := make([]string, 0, len(txs))
	for _, t := range txs {
		name, _ := core.ResolveCategory(cats, t.CategoryID)
		lines = append(lines, fmt.Sprintf("%s: %s (%s) - %s%s [%s]",
			t.Date, t.Description, name, symbol, t.Amount.String(), t.Type))
	}
	return strings.Join(lines, "\n")
}

func Prompt(digest string) string {
	return "You are a financial assistant. Analyze the following list of recent transactions.\n\n" +
		"Data:\n" + digest + "\n\n" +
		"Please provide a brief, friendly, and actionable summary in 3 bullet points.\n" +
		"Focus on:\n" +
		"1. Spending trends.\n" +
		"2. Unusual expenses (if any).\n" +
		"3. One tip for saving money based on this data.\n\n" +
		"Keep it under 150 words total. Do not use markdown bolding too heavily.\n"
}
