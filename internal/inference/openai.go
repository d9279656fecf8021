package inference

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEngine is the model-backed inference variant. The client is built
// once per process and reused across requests; it holds no mutable state
// after construction, so concurrent calls are safe without locking.
type OpenAIEngine struct {
	client *openai.Client
	model  string
}

func NewOpenAIEngine(apiKey string) *OpenAIEngine {
	return &OpenAIEngine{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

func (e *OpenAIEngine) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a cautious medical assistant. Describe likely findings " +
					"in plain clinical language and always recommend physician review.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrUnavailable)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUnavailable)
	}
	return text, nil
}

func (e *OpenAIEngine) AnalyzeImage(ctx context.Context, filename string) (string, error) {
	prompt := fmt.Sprintf(
		"A medical image named %q was uploaded. Based on the modality implied by the name, give a two-sentence preliminary finding.",
		filename,
	)
	return e.complete(ctx, prompt)
}

func (e *OpenAIEngine) TranscribeAudio(ctx context.Context, path string) (string, error) {
	resp, err := e.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: path,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrUnavailable)
	}
	return resp.Text, nil
}

func (e *OpenAIEngine) GenerateNarrative(ctx context.Context, subject string) (string, error) {
	return e.complete(ctx, fmt.Sprintf(
		"Write a short diagnostic report narrative (findings, assessment, recommendation) for the study %q.",
		subject,
	))
}
