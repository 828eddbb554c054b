package completion

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"prepmate/internal/errs"
	"prepmate/internal/ports"
)

const defaultModel = "gpt-4o"

// OpenAIClient implements ports.Completer on the OpenAI chat-completions
// API. One request per Complete call, no retry; deadline control is the
// caller's via ctx.
type OpenAIClient struct {
	client openai.Client
	model  string
}

var _ ports.Completer = (*OpenAIClient)(nil)

func NewOpenAIClient(apiKey string, model string) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}

	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	if ctx == nil {
		return "", errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(err, "check context")
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", errs.Wrap(err, "create chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned from completion api")
	}

	// Empty content is not an error here: the pipeline treats it as "no
	// feedback produced" and parses it into an empty result.
	return resp.Choices[0].Message.Content, nil
}
