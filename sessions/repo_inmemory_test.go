package sessions_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suryanavv/ims/sessions"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := sessions.NewInMemoryStore()

	_, err := s.Get(ctx, sessions.TokenKey)
	require.ErrorIs(t, err, sessions.ErrNotFound)

	require.NoError(t, s.Set(ctx, sessions.TokenKey, "tok-1"))
	require.NoError(t, s.Set(ctx, sessions.TokenKey, "tok-2"))
	got, err := s.Get(ctx, sessions.TokenKey)
	require.NoError(t, err)
	require.Equal(t, "tok-2", got)

	require.NoError(t, s.Delete(ctx, sessions.TokenKey))
	require.NoError(t, s.Delete(ctx, sessions.TokenKey))
	require.Equal(t, 0, s.Len())
}

func TestInMemoryStoreConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	s := sessions.NewInMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Set(ctx, sessions.TokenKey, fmt.Sprintf("tok-%d", i))
			_, _ = s.Get(ctx, sessions.TokenKey)
		}(i)
	}
	wg.Wait()

	got, err := s.Get(ctx, sessions.TokenKey)
	require.NoError(t, err)
	require.Regexp(t, `^tok-\d+$`, got)
}

func TestSnapshotAuthenticated(t *testing.T) {
	require.False(t, sessions.Snapshot{}.Authenticated())
	require.True(t, sessions.Snapshot{AccessToken: "x"}.Authenticated())
}
