package storage

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProvider_SaveAndOpen(t *testing.T) {
	t.Parallel()

	provider, err := NewLocalProvider(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	ref, err := provider.Save(ctx, "images/abc.png", strings.NewReader("fake-png-bytes"))
	require.NoError(t, err)

	// The reference is a real file on disk.
	_, err = os.Stat(ref)
	require.NoError(t, err)

	rc, err := provider.Open(ctx, "images/abc.png")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "fake-png-bytes", string(data))
}

func TestLocalProvider_OpenMissing(t *testing.T) {
	t.Parallel()

	provider, err := NewLocalProvider(t.TempDir())
	require.NoError(t, err)

	_, err = provider.Open(context.Background(), "images/nope.png")
	assert.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	provider, err := FromConfig(context.Background(), "local", t.TempDir(), "", "")
	require.NoError(t, err)
	_, ok := provider.(*LocalProvider)
	assert.True(t, ok)

	_, err = FromConfig(context.Background(), "s3", "", "", "us-east-1")
	assert.Error(t, err, "s3 backend without a bucket must be rejected")
}
