package wordle_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/integration_tests/containers"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

func TestFirestoreRepository(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, host, err := containers.SetupFirestoreContainer(ctx)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)
	t.Setenv("FIRESTORE_EMULATOR_HOST", host)

	client, err := wordledb.OpenFirestore(ctx, containers.FirestoreProjectID, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	// Each case writes to its own collection so cases never see each other's results.
	newRepo := func() *wordledb.FirestoreRepository {
		return wordledb.NewFirestoreRepository(client, fmt.Sprintf("results_%d", time.Now().UnixNano()))
	}
	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	insert := func(t *testing.T, repo *wordledb.FirestoreRepository, puzzle int, player string, score int) error {
		t.Helper()
		r, err := wordledomain.NewResult(puzzle, player, score, 6, date)
		require.NoError(t, err)
		return repo.Insert(ctx, &r)
	}

	t.Run("insert and get", func(t *testing.T) {
		repo := newRepo()
		require.NoError(t, insert(t, repo, 1234, "alice", 3))

		exists, err := repo.Exists(ctx, 1234, "alice")
		require.NoError(t, err)
		require.True(t, exists)

		got, err := repo.Get(ctx, 1234, "alice")
		require.NoError(t, err)
		require.Equal(t, 3, got.Score)
		require.Equal(t, "2024-03-01", got.DateString())

		_, err = repo.Get(ctx, 1234, "bob")
		require.ErrorIs(t, err, wordledb.ErrNotFound)
	})

	t.Run("rejects duplicate", func(t *testing.T) {
		repo := newRepo()
		require.NoError(t, insert(t, repo, 1234, "alice", 3))
		require.ErrorIs(t, insert(t, repo, 1234, "alice", 2), wordledb.ErrDuplicate)
		require.NoError(t, insert(t, repo, 1235, "alice", 2))

		got, err := repo.Get(ctx, 1234, "alice")
		require.NoError(t, err)
		require.Equal(t, 3, got.Score)
	})

	t.Run("players with path characters", func(t *testing.T) {
		repo := newRepo()
		for _, player := range []string{"mom/dad", ".", "..", "__x__"} {
			exists, err := repo.Exists(ctx, 1234, player)
			require.NoError(t, err, player)
			require.False(t, exists, player)

			require.NoError(t, insert(t, repo, 1234, player, 4), player)
			require.ErrorIs(t, insert(t, repo, 1234, player, 4), wordledb.ErrDuplicate, player)

			got, err := repo.Get(ctx, 1234, player)
			require.NoError(t, err, player)
			require.Equal(t, player, got.Player)
		}

		// "mom" must not collide with "mom/dad".
		exists, err := repo.Exists(ctx, 1234, "mom")
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("by puzzle orders by score then insertion", func(t *testing.T) {
		repo := newRepo()
		for _, e := range []struct {
			player string
			score  int
		}{{"alice", 4}, {"bob", 3}, {"carol", 4}, {"dave", 7}} {
			require.NoError(t, insert(t, repo, 1234, e.player, e.score))
		}
		require.NoError(t, insert(t, repo, 1235, "erin", 1))

		got, err := repo.ByPuzzle(ctx, 1234)
		require.NoError(t, err)
		var order []string
		for _, r := range got {
			order = append(order, fmt.Sprintf("%s:%d", r.Player, r.Score))
		}
		require.Equal(t, []string{"bob:3", "alice:4", "carol:4", "dave:7"}, order)
	})

	t.Run("by month", func(t *testing.T) {
		repo := newRepo()
		require.NoError(t, insert(t, repo, 1234, "alice", 3))
		april, err := wordledomain.NewResult(1265, "bob", 2, 6, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, repo.Insert(ctx, &april))

		march, err := repo.ByMonth(ctx, time.March, 2024)
		require.NoError(t, err)
		require.Len(t, march, 1)
		require.Equal(t, "alice", march[0].Player)

		none, err := repo.ByMonth(ctx, time.March, 2023)
		require.NoError(t, err)
		require.Empty(t, none)
	})
}
