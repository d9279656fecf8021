package inference

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleEngine_AnalyzeImage(t *testing.T) {
	t.Parallel()

	engine := NewRuleEngine()
	ctx := context.Background()

	tests := []struct {
		filename string
		want     string
	}{
		{"xray1.png", "Image appears to be an X-ray. Possible lung field opacity detected."},
		{"Chest_X-Ray.jpg", "Image appears to be an X-ray. Possible lung field opacity detected."},
		{"abdomen_ct.png", "CT scan detected. Structural assessment recommended."},
		{"brain_mri.dcm", "MRI study detected. Soft tissue evaluation recommended."},
		{"photo.png", "Medical image uploaded. Further analysis required."},
	}
	for _, tt := range tests {
		got, err := engine.AnalyzeImage(ctx, tt.filename)
		require.NoError(t, err, tt.filename)
		assert.Equal(t, tt.want, got, tt.filename)
	}
}

func TestRuleEngine_NeverEmpty(t *testing.T) {
	t.Parallel()

	engine := NewRuleEngine()
	ctx := context.Background()

	analysis, err := engine.AnalyzeImage(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, analysis)

	transcript, err := engine.TranscribeAudio(ctx, "/tmp/note.wav")
	require.NoError(t, err)
	assert.NotEmpty(t, transcript)

	narrative, err := engine.GenerateNarrative(ctx, "xray1.png")
	require.NoError(t, err)
	assert.NotEmpty(t, narrative)
	assert.Contains(t, narrative, "X-ray")
}
