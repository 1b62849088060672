package codegen

import (
	"context"
	"fmt"
	"net/http"

	"github.com/forgelabs/appforge/pkg/validator"
	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4"
	defaultTemperature = 0.7
	defaultMaxTokens   = 3000
)

type OpenAIConfig struct {
	APIKey     string `validate:"required"`
	BaseURL    string
	Model      string
	RESTClient *resty.Client `validate:"required"`
}

// OpenAI calls the chat completions API. One request per Complete call, no
// internal retry.
type OpenAI struct {
	conf OpenAIConfig
}

var _ Client = (*OpenAI)(nil)

func NewOpenAI(conf OpenAIConfig) (*OpenAI, error) {
	if err := validator.Validate(conf); err != nil {
		return nil, fmt.Errorf("openai client config error: %w", err)
	}

	if conf.BaseURL == "" {
		conf.BaseURL = defaultBaseURL
	}

	if conf.Model == "" {
		conf.Model = defaultModel
	}

	return &OpenAI{conf: conf}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionReq struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResp struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *OpenAI) Complete(ctx context.Context, in CompletionInput) (out CompletionOutput, err error) {
	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("completion input error: %w", err)
		return
	}

	reqBody := chatCompletionReq{
		Model: c.conf.Model,
		Messages: []chatMessage{
			{Role: "system", Content: in.SystemPrompt},
			{Role: "user", Content: in.UserPrompt},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}

	var respBody chatCompletionResp
	resp, err := c.conf.RESTClient.R().
		SetContext(ctx).
		SetAuthToken(c.conf.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		SetResult(&respBody).
		SetError(&respBody).
		Post(c.conf.BaseURL + "/chat/completions")
	if err != nil {
		err = fmt.Errorf("chat completion call error: %w", err)
		return
	}

	if resp.StatusCode() != http.StatusOK {
		msg := "unknown provider error"
		if respBody.Error != nil {
			msg = respBody.Error.Message
		}

		err = fmt.Errorf("chat completion status %d: %s", resp.StatusCode(), msg)
		return
	}

	if len(respBody.Choices) == 0 {
		err = fmt.Errorf("chat completion returned no choices")
		return
	}

	out = CompletionOutput{
		Text: respBody.Choices[0].Message.Content,
	}
	return
}
