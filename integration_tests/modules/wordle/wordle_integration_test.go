package wordle_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Black-And-White-Club/wordle-bot/app"
	"github.com/Black-And-White-Club/wordle-bot/app/eventbus"
	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	wordleevents "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain/events"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/Black-And-White-Club/wordle-bot/integration_tests/testutils"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

var launch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

func TestWordleIntegration(t *testing.T) {
	env := testutils.NewTestEnvironment(t)

	t.Run("postgres repository", func(t *testing.T) {
		env.Reset(t)
		testPostgresRepository(t, env)
	})
	t.Run("chat message over NATS", func(t *testing.T) {
		env.Reset(t)
		testMessageOverNATS(t, env)
	})
	t.Run("event bus health follows its connection", func(t *testing.T) {
		testEventBusHealth(t, env)
	})
}

func testEventBusHealth(t *testing.T, env *testutils.TestEnvironment) {
	ctx, cancel := context.WithTimeout(env.Ctx, time.Minute)
	defer cancel()

	bus, err := eventbus.NewEventBus(ctx, env.NatsURL, "health", env.Logger)
	require.NoError(t, err)
	require.Eventually(t, bus.Healthy, 10*time.Second, 50*time.Millisecond)

	topic := "wordle.health." + watermill.NewShortUUID()
	received, err := bus.Subscribe(ctx, topic)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(topic, message.NewMessage(watermill.NewUUID(), []byte("ping"))))

	select {
	case msg := <-received:
		require.Equal(t, "ping", string(msg.Payload))
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("message not delivered over the shared connection")
	}
	require.True(t, bus.Healthy())

	cancel()
	require.NoError(t, bus.Close())
	require.False(t, bus.Healthy())
}

func testPostgresRepository(t *testing.T, env *testutils.TestEnvironment) {
	ctx := env.Ctx
	repo := wordledb.NewBunRepository(env.DB)
	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	players := []string{gofakeit.FirstName() + "-1", gofakeit.FirstName() + "-2", gofakeit.FirstName() + "-3"}
	for i, score := range []int{5, 3, 5} {
		r, err := wordledomain.NewResult(986, players[i], score, 6, date)
		require.NoError(t, err)
		require.NoError(t, repo.Insert(ctx, &r))
	}

	dup, err := wordledomain.NewResult(986, players[0], 2, 6, date)
	require.NoError(t, err)
	require.ErrorIs(t, repo.Insert(ctx, &dup), wordledb.ErrDuplicate)

	got, err := repo.ByPuzzle(ctx, 986)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []string{players[1], players[0], players[2]}, []string{got[0].Player, got[1].Player, got[2].Player})

	march, err := repo.ByMonth(ctx, time.March, 2024)
	require.NoError(t, err)
	require.Len(t, march, 3)

	april, err := repo.ByMonth(ctx, time.April, 2024)
	require.NoError(t, err)
	require.Empty(t, april)
}

func testMessageOverNATS(t *testing.T, env *testutils.TestEnvironment) {
	ctx, cancel := context.WithTimeout(env.Ctx, time.Minute)
	defer cancel()

	lookup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		day, err := time.Parse("2006-01-02", strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), ".json"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"days_since_launch":%d}`, int(day.Sub(launch).Hours()/24))
	}))
	defer lookup.Close()

	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverPostgres, DSN: env.PostgresDSN},
		NATS: config.NATSConfig{
			URL:          env.NatsURL,
			GroupName:    "Family",
			InboundTopic: wordleevents.MessageReceivedTopic,
			ReplyTopic:   wordleevents.ReplyReadyTopic,
			QueueGroup:   "wordle-bot",
		},
		HTTP:   config.HTTPConfig{Address: "127.0.0.1:0", RequestsPerSecond: 100, Burst: 100},
		Lookup: config.LookupConfig{BaseURL: lookup.URL, Timeout: 5 * time.Second, MaxSteps: 50},
	}

	application, err := app.NewApp(ctx, cfg, env.Logger)
	require.NoError(t, err)
	defer application.Close()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	served := make(chan error, 1)
	go func() { served <- application.Serve(ctx, listener) }()

	select {
	case <-application.Router.Running():
	case <-ctx.Done():
		t.Fatal("router did not start")
	}

	bridge, err := eventbus.NewEventBus(ctx, env.NatsURL, "bridge", env.Logger)
	require.NoError(t, err)
	defer bridge.Close()

	replies, err := bridge.Subscribe(ctx, wordleevents.ReplyReadyTopic)
	require.NoError(t, err)

	day := wordledomain.CalendarDay(time.Now()).AddDate(0, 0, -2)
	puzzle := int(day.Sub(launch).Hours() / 24)

	publish := func(payload wordleevents.MessageReceivedPayload) {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		require.NoError(t, bridge.Publish(wordleevents.MessageReceivedTopic, message.NewMessage(watermill.NewUUID(), body)))
	}

	// Messages from other chats are dropped without a reply.
	publish(wordleevents.MessageReceivedPayload{Sender: "mallory", Chat: "Work", Text: fmt.Sprintf("Wordle %d 1/6", puzzle)})
	publish(wordleevents.MessageReceivedPayload{Sender: "alice", Chat: "Family", Text: fmt.Sprintf("Wordle %d 3/6", puzzle)})

	var reply wordleevents.ReplyReadyPayload
	select {
	case msg := <-replies:
		require.NoError(t, json.Unmarshal(msg.Payload, &reply))
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("no reply received")
	}

	require.Equal(t, "alice", reply.Sender)
	require.Equal(t, "Family", reply.Chat)
	require.Equal(t, wordledomain.KindSubmission.String(), reply.Kind)
	require.False(t, reply.Duplicate)
	require.True(t, strings.HasPrefix(reply.Reply, fmt.Sprintf("🎯 Wordle %d Leaderboard\n1. alice — 3/6", puzzle)), reply.Reply)

	resp, err := http.Get(fmt.Sprintf("http://%s/v1/leaderboards/daily/%d", listener.Addr(), puzzle))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("🎯 Wordle %d Leaderboard\n1. alice — 3/6\n", puzzle), string(body))

	cancel()
	require.NoError(t, <-served)
}
