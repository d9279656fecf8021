package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_RecordAndRecent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAuditService(db)
	ctx := context.Background()

	svc.Record(ctx, "u1", "auth.login", "")
	time.Sleep(10 * time.Millisecond)
	svc.Record(ctx, "u1", "upload.image", "xray1.png")
	svc.Record(ctx, "u2", "auth.login", "")

	events, err := svc.Recent(ctx, "u1", 50)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "upload.image", events[0].Action)
	assert.Equal(t, "xray1.png", events[0].Detail)
	assert.Equal(t, "auth.login", events[1].Action)
}

func TestAuditService_RecentLimit(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAuditService(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.Record(ctx, "u1", "auth.login", "")
	}

	events, err := svc.Recent(ctx, "u1", 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}
