package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	platformhttp "wsb_trader/internal/platform/http"
)

type fixedSource struct {
	comments string
	err      error
}

func (s fixedSource) Comments(ctx context.Context) (string, error) { return s.comments, s.err }

func TestReport(t *testing.T) {
	os.Setenv("OPENAI_API_KEY", "test_key")
	defer os.Unsetenv("OPENAI_API_KEY")

	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test_key" {
			t.Errorf("Unexpected auth header: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "1. SPY (S&P 500 Index) - Positive sentiment."}}]}`))
	}))
	defer srv.Close()

	client := NewClient("gpt-3.5-turbo", platformhttp.NewClient(platformhttp.ClientOptions{RequestsPerSec: 100}), fixedSource{comments: ">SPY calls (10 People Agree.)\n"})
	client.url = srv.URL

	report, err := client.Report(context.Background())
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if !strings.Contains(report, "SPY") {
		t.Errorf("Unexpected report: %q", report)
	}

	if gotReq.Model != "gpt-3.5-turbo" {
		t.Errorf("Expected model gpt-3.5-turbo, got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Fatalf("Expected system+user messages, got %v", gotReq.Messages)
	}
	user := gotReq.Messages[1].Content
	if !strings.Contains(user, "### START OF CONVERSATION DATA") ||
		!strings.Contains(user, "SPY calls (10 People Agree.)") ||
		!strings.Contains(user, "### END OF CONVERSATION DATA") {
		t.Errorf("Prompt missing comment data markers:\n%s", user)
	}
}

func TestReport_APIError(t *testing.T) {
	os.Setenv("OPENAI_API_KEY", "test_key")
	defer os.Unsetenv("OPENAI_API_KEY")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "quota exceeded", "type": "insufficient_quota"}}`))
	}))
	defer srv.Close()

	client := NewClient("gpt-3.5-turbo", platformhttp.NewClient(platformhttp.ClientOptions{RequestsPerSec: 100}), fixedSource{comments: "x"})
	client.url = srv.URL

	if _, err := client.Report(context.Background()); err == nil || !strings.Contains(err.Error(), "insufficient_quota") {
		t.Errorf("Expected typed API error, got %v", err)
	}
}

func TestReport_NoKey(t *testing.T) {
	os.Unsetenv("OPENAI_API_KEY")
	client := NewClient("gpt-3.5-turbo", platformhttp.NewClient(platformhttp.ClientOptions{}), fixedSource{})
	if _, err := client.Report(context.Background()); err == nil {
		t.Error("Expected error without API key")
	}
}
