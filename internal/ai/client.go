// Package ai turns the raw comment data into the structured market report
// the signal extractor parses.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	nethttp "net/http"
	"os"

	platformhttp "wsb_trader/internal/platform/http"
)

const completionsURL = "https://api.openai.com/v1/chat/completions"

const systemPersona = "You are an advanced and highly successful financial analyst at Goldman Sachs' top trader division."

// CommentSource supplies the raw discussion text the model analyzes.
// *reddit.Fetcher satisfies it.
type CommentSource interface {
	Comments(ctx context.Context) (string, error)
}

// Client calls the OpenAI chat-completions API.
type Client struct {
	apiKey string
	model  string
	url    string
	http   *platformhttp.Client
	source CommentSource
}

// NewClient builds the report source. The API key comes from the
// environment, validated at startup by config.Load.
func NewClient(model string, httpClient *platformhttp.Client, source CommentSource) *Client {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("WARNING: OPENAI_API_KEY not found. Report generation will fail.")
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		url:    completionsURL,
		http:   httpClient,
		source: source,
	}
}

// Report fetches the comment data and asks the model for the top-5 report.
// The returned text is free-form; the signal extractor owns parsing it.
func (c *Client) Report(ctx context.Context) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("ai client not configured")
	}

	commentData, err := c.source.Comments(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch comment data: %w", err)
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPersona},
			{Role: "user", Content: buildPrompt(commentData)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := nethttp.NewRequest(nethttp.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.DoRequest(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completions request: %w", err)
	}
	defer resp.Body.Close()

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode completions response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("completions API error (%s): %s", result.Error.Type, result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in completions response")
	}
	return result.Choices[0].Message.Content, nil
}

// buildPrompt embeds the comment data between fixed markers and pins the
// output format with an example, so the extractor's pattern keeps matching.
func buildPrompt(commentData string) string {
	return fmt.Sprintf(`The following text that is between '### START OF CONVERSATION DATA' and '### END OF CONVERSATION DATA' contains comments from a reddit stock trading thread. Return the top 5 stocks/indices that people in this group talked about. Take into account the number of times other people agree with each comment. Additionally, mention if the sentiment of the comment regarding that stock/index is positive or negative.
### START OF CONVERSATION DATA

%s

### END OF CONVERSATION DATA

Here is an example of the desired output format:

Based on the comments and the number of people agreeing with each comment, here are the top 5 stocks/indices mentioned:

1. SPY (S&P 500 Index) - Positive sentiment.
2. TSLA (Tesla) - Positive sentiment.
3. NVDA (NVIDIA) - Positive sentiment.
4. VFS (unknown stock) - Negative sentiment.
5. AMZN (Amazon) - Neutral sentiment.

It's worth noting that the sentiment may vary within each comment, but the overall sentiment should be mentioned in brackets next to each stock/index.`, commentData)
}
