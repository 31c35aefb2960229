package dataset

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admindash/internal/errors"
	"admindash/internal/query"
)

func withActivity(t *testing.T, records ...query.Record) Snapshot {
	t.Helper()
	snap := builtin(t)
	snap.Records[ScreenActivity] = records
	return snap
}

func TestStoreLastWriteWins(t *testing.T) {
	store := NewStore(builtin(t))

	older := store.Begin()
	newer := store.Begin()

	assert.True(t, store.Commit(newer, withActivity(t, query.Record{"id": "new"})))
	assert.False(t, store.Commit(older, withActivity(t, query.Record{"id": "old"})))

	got := store.Snapshot().Records[ScreenActivity]
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID())
	assert.Equal(t, uint64(1), store.Version())
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	store := NewStore(builtin(t))
	snap := store.Snapshot()
	snap.Records[ScreenActivity][0]["user"] = "mallory"
	snap.Records[ScreenContacts] = nil

	fresh := store.Snapshot()
	assert.Equal(t, "john.doe@example.com", fresh.Records[ScreenActivity][0].String("user"))
	assert.Len(t, fresh.Records[ScreenContacts], len(Contacts()))
}

func TestStoreReload(t *testing.T) {
	store := NewStore(builtin(t))

	ok, err := store.Reload(context.Background(), func(context.Context) (Snapshot, error) {
		return withActivity(t, query.Record{"id": "r1"}), nil
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "r1", store.Snapshot().Records[ScreenActivity][0].ID())

	loadErr := errors.NewDatasetError("parse seed file", "/tmp/activity.yaml", nil)
	ok, err = store.Reload(context.Background(), func(context.Context) (Snapshot, error) {
		return Snapshot{}, loadErr
	})
	assert.False(t, ok)
	assert.ErrorIs(t, err, loadErr)
	assert.Equal(t, "r1", store.Snapshot().Records[ScreenActivity][0].ID())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok, err = store.Reload(ctx, func(context.Context) (Snapshot, error) {
		return withActivity(t), nil
	})
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStoreReloadSuperseded(t *testing.T) {
	store := NewStore(builtin(t))
	started := make(chan struct{})
	release := make(chan struct{})
	slow := withActivity(t, query.Record{"id": "slow"})
	fast := withActivity(t, query.Record{"id": "fast"})

	var wg sync.WaitGroup
	var slowAccepted bool
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowAccepted, _ = store.Reload(context.Background(), func(context.Context) (Snapshot, error) {
			close(started)
			<-release
			return slow, nil
		})
	}()

	<-started
	fastAccepted, err := store.Reload(context.Background(), func(context.Context) (Snapshot, error) {
		return fast, nil
	})
	require.NoError(t, err)
	close(release)
	wg.Wait()

	assert.True(t, fastAccepted)
	assert.False(t, slowAccepted)
	assert.Equal(t, "fast", store.Snapshot().Records[ScreenActivity][0].ID())
}
