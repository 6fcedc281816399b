// Package openai implements the llm.Client interface on the OpenAI chat
// completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/shpitdev/cold-outreach-pipeline/internal/llm"
	"github.com/shpitdev/cold-outreach-pipeline/pkg/pipeline/core"
)

const defaultModel = goopenai.GPT4oMini

type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the API base URL. Useful for proxies/testing.
	BaseURL string
}

type Client struct {
	client *goopenai.Client
	model  string
}

var _ llm.Client = (*Client)(nil)

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	cc := goopenai.DefaultConfig(strings.TrimSpace(cfg.APIKey))
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}
	return &Client{client: goopenai.NewClientWithConfig(cc), model: model}, nil
}

func (c *Client) Model() string { return c.model }

func (c *Client) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	system := opts.SystemInstruction
	if strings.TrimSpace(system) == "" {
		system = "You are a helpful assistant."
	}

	req := goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: system},
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if opts.JSONOutput {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyErr(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func classifyErr(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode/100 == 5 {
			return &core.TransientError{Err: err}
		}
		return err
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &core.TransientError{Err: err}
	}
	return err
}
