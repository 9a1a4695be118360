// Package reddit fetches the daily "What Are Your Moves Tomorrow" discussion
// thread and flattens its comments into one prompt-ready string.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"regexp"
	"strings"

	platformhttp "wsb_trader/internal/platform/http"
)

const (
	// titleMarker identifies the daily thread among the user's posts.
	titleMarker = "What Are Your Moves Tomorrow"

	// maxCommentChars caps the assembled string so the prompt stays within
	// the model's context budget.
	maxCommentChars = 10000

	userAgent = "wsb_trader/1.0"
)

// listing is the subset of reddit's Listing JSON we consult.
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title string `json:"title"`
				URL   string `json:"url"`
				Body  string `json:"body"`
				Score int    `json:"score"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

var (
	markdownLink = regexp.MustCompile(`\[.*\]\(.*\)`)
	emoji        = regexp.MustCompile(`[\x{1F300}-\x{1FAFF}]|[\x{2600}-\x{27BF}]|[\x{E000}-\x{F8FF}]|[\x{2011}-\x{26FF}]`)
)

// Fetcher pulls the comment data through the shared rate-limited client.
// Reddit throttles anonymous clients aggressively, hence the limiter.
type Fetcher struct {
	client *platformhttp.Client
	user   string
}

// NewFetcher returns a fetcher watching the given reddit user's posts.
func NewFetcher(client *platformhttp.Client, user string) *Fetcher {
	return &Fetcher{client: client, user: user}
}

// Comments returns the cleaned, score-annotated comment string of the newest
// daily thread.
func (f *Fetcher) Comments(ctx context.Context) (string, error) {
	postURL, err := f.findLatestThread(ctx)
	if err != nil {
		return "", err
	}

	comments, err := f.fetchComments(ctx, postURL)
	if err != nil {
		return "", err
	}

	return buildCommentString(comments), nil
}

// findLatestThread scans the user's newest posts for the daily thread and
// returns its URL.
func (f *Fetcher) findLatestThread(ctx context.Context) (string, error) {
	url := fmt.Sprintf("https://www.reddit.com/user/%s.json?sort=new&limit=50", f.user)
	var posts listing
	if err := f.getJSON(ctx, url, &posts); err != nil {
		return "", fmt.Errorf("fetch user posts: %w", err)
	}

	for _, child := range posts.Data.Children {
		if strings.Contains(child.Data.Title, titleMarker) {
			return child.Data.URL, nil
		}
	}
	return "", fmt.Errorf("no %q post found for user %s", titleMarker, f.user)
}

// fetchComments pulls the thread's comments sorted by top score. The comment
// endpoint answers with two listings: [0] the post itself, [1] the comments.
func (f *Fetcher) fetchComments(ctx context.Context, postURL string) (listing, error) {
	var pair []listing
	if err := f.getJSON(ctx, commentsURL(postURL), &pair); err != nil {
		return listing{}, fmt.Errorf("fetch comments: %w", err)
	}
	if len(pair) < 2 {
		return listing{}, fmt.Errorf("unexpected comment response shape (%d listings)", len(pair))
	}
	return pair[1], nil
}

func (f *Fetcher) getJSON(ctx context.Context, url string, out any) error {
	req, err := nethttp.NewRequest(nethttp.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.DoRequest(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

// commentsURL turns a post URL into its comment-listing endpoint: drop the
// trailing slug segments and ask for the JSON form, top comments first.
func commentsURL(postURL string) string {
	parts := strings.Split(strings.TrimRight(postURL, "/"), "/")
	if len(parts) > 1 {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, "/") + ".json?sort=top"
}

// buildCommentString flattens the comments into quoted lines, each annotated
// with its agreement score. Links and emoji are stripped; the result stops
// growing past maxCommentChars.
func buildCommentString(comments listing) string {
	var b strings.Builder
	for _, child := range comments.Data.Children {
		if b.Len() > maxCommentChars {
			break
		}
		body := child.Data.Body
		if body == "" {
			continue
		}
		body = markdownLink.ReplaceAllString(body, "")
		body = emoji.ReplaceAllString(body, "")
		fmt.Fprintf(&b, ">%s (%d People Agree.)\n", body, child.Data.Score)
	}
	return b.String()
}
