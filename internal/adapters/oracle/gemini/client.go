package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	portssvc "github.com/nabung-ai/tabungan_backend/internal/core/ports/services"
)

// DefaultModel is the vision model used when none is configured.
const DefaultModel = "gemini-1.5-flash-latest"

// Client calls the Gemini API to adjudicate deposit photos. It implements the
// MoneyOracle port; the verdict text it returns is untrusted and goes through
// the interpreter like any other oracle output.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a Gemini-backed oracle.
func NewClient(ctx context.Context, apiKey string, modelName string) (*Client, error) {
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	// Deterministic output; the validator prompt asks for JSON only.
	model.SetTemperature(0)

	return &Client{client: client, model: model}, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.client.Close()
}

// Ensure Client implements the MoneyOracle port
var _ portssvc.MoneyOracle = (*Client)(nil)

// AnalyzeDeposit sends the fixed validator prompt plus the image and returns
// the raw response text.
func (c *Client) AnalyzeDeposit(ctx context.Context, nominal int64, image []byte) (string, error) {
	resp, err := c.model.GenerateContent(ctx,
		genai.Text(DepositPrompt(nominal)),
		genai.ImageData("jpeg", image),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := collectText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini returned no output text")
	}
	return text, nil
}

// collectText concatenates all text parts across candidates.
func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
