package inference

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// RuleEngine is the deterministic backend: pure keyword matching against the
// filename, no external calls. It never fails, which also makes it the
// fallback behind the model-backed engine and the default in tests.
type RuleEngine struct{}

func NewRuleEngine() *RuleEngine {
	return &RuleEngine{}
}

// Findings keyed by filename substring, checked in order.
var imageFindings = []struct {
	keyword string
	finding string
}{
	{"xray", "Image appears to be an X-ray. Possible lung field opacity detected."},
	{"x-ray", "Image appears to be an X-ray. Possible lung field opacity detected."},
	{"ct", "CT scan detected. Structural assessment recommended."},
	{"mri", "MRI study detected. Soft tissue evaluation recommended."},
	{"ultrasound", "Ultrasound study detected. Review of echogenic regions recommended."},
}

func (e *RuleEngine) AnalyzeImage(_ context.Context, filename string) (string, error) {
	name := strings.ToLower(filename)
	for _, f := range imageFindings {
		if strings.Contains(name, f.keyword) {
			return f.finding, nil
		}
	}
	return "Medical image uploaded. Further analysis required.", nil
}

func (e *RuleEngine) TranscribeAudio(_ context.Context, path string) (string, error) {
	// Without a speech model there is nothing to decode; return a canned
	// placeholder naming the artifact so downstream steps stay non-empty.
	base := filepath.Base(path)
	return fmt.Sprintf("[transcription unavailable for %s]", base), nil
}

func (e *RuleEngine) GenerateNarrative(ctx context.Context, subject string) (string, error) {
	findings, _ := e.AnalyzeImage(ctx, subject)
	return fmt.Sprintf(
		"Findings: %s Assessment: low risk. Recommendation: consult a physician for confirmation.",
		findings,
	), nil
}
