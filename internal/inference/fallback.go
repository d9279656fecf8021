package inference

import (
	"context"

	"github.com/rs/zerolog/log"
)

// FallbackEngine tries the primary backend and, on failure, retries the
// same call against the secondary. With the rule engine as secondary the
// composite never surfaces ErrUnavailable.
type FallbackEngine struct {
	primary   Engine
	secondary Engine
}

func WithFallback(primary, secondary Engine) *FallbackEngine {
	return &FallbackEngine{primary: primary, secondary: secondary}
}

func (e *FallbackEngine) AnalyzeImage(ctx context.Context, filename string) (string, error) {
	text, err := e.primary.AnalyzeImage(ctx, filename)
	if err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("Primary inference failed, using fallback")
		return e.secondary.AnalyzeImage(ctx, filename)
	}
	return text, nil
}

func (e *FallbackEngine) TranscribeAudio(ctx context.Context, path string) (string, error) {
	text, err := e.primary.TranscribeAudio(ctx, path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Primary transcription failed, using fallback")
		return e.secondary.TranscribeAudio(ctx, path)
	}
	return text, nil
}

func (e *FallbackEngine) GenerateNarrative(ctx context.Context, subject string) (string, error) {
	text, err := e.primary.GenerateNarrative(ctx, subject)
	if err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("Primary narrative failed, using fallback")
		return e.secondary.GenerateNarrative(ctx, subject)
	}
	return text, nil
}

// FromConfig selects the engine for the configured backend name. The
// model-backed engine is always wrapped with the deterministic fallback.
func FromConfig(backend, openAIKey string) Engine {
	if backend == "openai" && openAIKey != "" {
		return WithFallback(NewOpenAIEngine(openAIKey), NewRuleEngine())
	}
	return NewRuleEngine()
}
