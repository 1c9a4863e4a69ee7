package line

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// DefaultAPIBase is the production Messaging API host.
const DefaultAPIBase = "https://api.line.me"

const replyPath = "/v2/bot/message/reply"

// Client sends replies with a channel access token. It is created once per
// process and is safe for concurrent use.
type Client struct {
	http *resty.Client
}

// NewClient builds a client for apiBase (DefaultAPIBase when empty).
func NewClient(accessToken, apiBase string) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(apiBase, "/")).
			SetAuthToken(accessToken).
			SetHeader("Content-Type", "application/json"),
	}
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

// Reply sends one plain-text message addressed by a single-use reply token.
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(replyRequest{
			ReplyToken: replyToken,
			Messages:   []textMessage{{Type: "text", Text: text}},
		}).
		Post(replyPath)
	if err != nil {
		return fmt.Errorf("line reply: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("line reply: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
