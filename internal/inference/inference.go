package inference

import (
	"context"
	"errors"
)

// ErrUnavailable signals that the inference backend failed or returned
// nothing usable. Callers fall back to the rule engine when one is
// configured; otherwise the error propagates and no report is persisted.
var ErrUnavailable = errors.New("inference backend unavailable")

// Engine is the capability set every inference backend implements.
// Implementations must be safe for concurrent use and must return non-empty
// text or fail with ErrUnavailable.
type Engine interface {
	// AnalyzeImage produces findings text for an uploaded medical image.
	AnalyzeImage(ctx context.Context, filename string) (string, error)
	// TranscribeAudio produces a transcript of the audio file at path.
	TranscribeAudio(ctx context.Context, path string) (string, error)
	// GenerateNarrative produces a diagnostic report narrative for the
	// given subject (typically the upload's filename plus prior findings).
	GenerateNarrative(ctx context.Context, subject string) (string, error)
}
