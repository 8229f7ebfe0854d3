package janitor

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	ledgerrepofake "github.com/leagueforge/leagueforge/token/ledger/repofake"
)

type recordingMetrics struct {
	purged int64
}

func (m *recordingMetrics) RecordTokensPurged(count int64) {
	m.purged += count
}

func TestNewRequiresLedger(t *testing.T) {
	_, err := New(nil, zerolog.Nop())
	require.Error(t, err)
}

func TestRunOncePurgesDeadRows(t *testing.T) {
	repo := ledgerrepofake.NewFakeLedgerRepo()
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, "user-1", "live-token"))
	require.NoError(t, repo.Record(ctx, "user-2", "dead-token-1"))
	require.NoError(t, repo.Record(ctx, "user-2", "dead-token-2"))
	_, err := repo.RevokeAllForUser(ctx, "user-2")
	require.NoError(t, err)

	metrics := &recordingMetrics{}
	j, err := New(repo, zerolog.Nop(), WithMetrics(metrics))
	require.NoError(t, err)

	purged, err := j.RunOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), purged)
	require.Equal(t, int64(2), metrics.purged)

	usable, err := repo.IsUsable(ctx, "live-token")
	require.NoError(t, err)
	require.True(t, usable)
}

func TestRunOnceIsIdempotent(t *testing.T) {
	repo := ledgerrepofake.NewFakeLedgerRepo()
	ctx := context.Background()

	j, err := New(repo, zerolog.Nop())
	require.NoError(t, err)

	purged, err := j.RunOnce(ctx)
	require.NoError(t, err)
	require.Zero(t, purged)

	purged, err = j.RunOnce(ctx)
	require.NoError(t, err)
	require.Zero(t, purged)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	repo := ledgerrepofake.NewFakeLedgerRepo()

	j, err := New(repo, zerolog.Nop(), WithInterval(time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop after cancellation")
	}
}

func TestRunPurgesOnTick(t *testing.T) {
	repo := ledgerrepofake.NewFakeLedgerRepo()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, repo.Record(ctx, "user-1", "dead-token"))
	_, err := repo.RevokeAllForUser(ctx, "user-1")
	require.NoError(t, err)

	metrics := &recordingMetrics{}
	j, err := New(repo, zerolog.Nop(), WithInterval(10*time.Millisecond), WithMetrics(metrics))
	require.NoError(t, err)

	go j.Run(ctx)

	require.Eventually(t, func() bool {
		found, err := repo.FindByToken(ctx, "dead-token")
		return err == nil && found == nil
	}, 2*time.Second, 5*time.Millisecond)
}
