package client

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espresso-labs/espresso-gateway/internal/chat"
)

func openTestHistory(t *testing.T) *HistoryStore {
	t.Helper()
	s, err := OpenHistoryStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	return s
}

func TestHistoryStore_AppendAndRecent(t *testing.T) {
	s := openTestHistory(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "lennys-podcast", chat.RoleUser, "q1"))
	require.NoError(t, s.Append(ctx, "lennys-podcast", chat.RoleAssistant, "a1"))
	require.NoError(t, s.Append(ctx, "other-podcast", chat.RoleUser, "elsewhere"))

	msgs, err := s.Recent(ctx, "lennys-podcast", 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, chat.Message{Role: chat.RoleUser, Content: "q1"}, msgs[0])
	assert.Equal(t, chat.Message{Role: chat.RoleAssistant, Content: "a1"}, msgs[1])
}

func TestHistoryStore_RecentHonorsLimitNewestFirst(t *testing.T) {
	s := openTestHistory(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		require.NoError(t, s.Append(ctx, "lennys-podcast", chat.RoleUser, fmt.Sprintf("m%d", i)))
	}

	msgs, err := s.Recent(ctx, "lennys-podcast", 3)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	// the three newest, oldest first
	assert.Equal(t, "m3", msgs[0].Content)
	assert.Equal(t, "m5", msgs[2].Content)
}

func TestHistoryStore_Clear(t *testing.T) {
	s := openTestHistory(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "lennys-podcast", chat.RoleUser, "q1"))
	require.NoError(t, s.Clear(ctx, "lennys-podcast"))

	msgs, err := s.Recent(ctx, "lennys-podcast", 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
