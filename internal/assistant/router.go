package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// ErrRouterDisabled is returned when no model API key is configured. The
// assistant endpoint degrades to the explicit command form.
var ErrRouterDisabled = errors.New("assistant router disabled: no API key configured")

const routerPrompt = "You route utterances for a banking assistant.\n\n" +
	"Task:\n" +
	"- Map the user's utterance to exactly one command.\n" +
	"- Output STRICT JSON only (no comments, no extra text).\n" +
	"- Output a single JSON object.\n\n" +
	"The object must have these fields:\n" +
	"- \"command\": one of \"GetAccountBalance\", \"GetRecentTransactions\", \"InitiateTransfer\", \"ConvertCurrency\"\n" +
	"- \"args\": object of string values\n\n" +
	"Argument keys per command:\n" +
	"- GetAccountBalance: \"accountType\" (Checking, Savings, Investment or Credit)\n" +
	"- GetRecentTransactions: \"count\"\n" +
	"- InitiateTransfer: \"contact\", \"amountCents\" (amount in US cents)\n" +
	"- ConvertCurrency: \"amountCents\", \"currency\" (ISO code)\n\n" +
	"Return ONLY valid raw JSON.\n" +
	"Do NOT wrap the response in code fences.\n" +
	"Output must begin with \"{\" and end with \"}\".\n"

// Router maps free-form utterances onto commands with a generative model.
type Router struct {
	client *genai.Client
	model  string
}

// NewRouter creates a model-backed router. Without GEMINI_API_KEY in the
// environment it returns ErrRouterDisabled; callers keep the dispatcher and
// skip utterance routing.
func NewRouter(ctx context.Context, model string) (*Router, error) {
	if strings.TrimSpace(os.Getenv("GEMINI_API_KEY")) == "" {
		return nil, ErrRouterDisabled
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Router{client: client, model: model}, nil
}

// Route asks the model which command the utterance means.
func (r *Router) Route(ctx context.Context, utterance string) (Intent, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: routerPrompt},
				{Text: "Utterance: " + utterance},
			},
		},
	}

	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, nil)
	if err != nil {
		return Intent{}, fmt.Errorf("generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return Intent{}, fmt.Errorf("empty response from model")
	}

	clean := cleanModelJSON(rawText)

	var intent Intent
	if err := json.Unmarshal([]byte(clean), &intent); err != nil {
		return Intent{}, fmt.Errorf("unmarshal intent: %w\nraw response: %s", err, rawText)
	}
	if intent.Args == nil {
		intent.Args = map[string]string{}
	}
	return intent, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk if the model
// ignored the formatting instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Keep only from the first '{' to the last '}' when junk remains.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
