package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type ping struct{ n int }
type pong struct{}

func TestDispatchByType(t *testing.T) {
	b := New()
	var got []int
	SubscribeTo(b, func(_ context.Context, p ping) { got = append(got, p.n) })
	SubscribeTo(b, func(_ context.Context, p ping) { got = append(got, p.n*10) })
	pongs := 0
	SubscribeTo(b, func(context.Context, pong) { pongs++ })

	PublishTo(context.Background(), b, ping{n: 1})
	PublishTo(context.Background(), b, ping{n: 2})

	require.Equal(t, []int{1, 10, 2, 20}, got)
	require.Zero(t, pongs)
}

func TestUnsubscribeRemovesOnlyItsHandler(t *testing.T) {
	b := New()
	var got []string
	unsubA := SubscribeTo(b, func(context.Context, ping) { got = append(got, "a") })
	SubscribeTo(b, func(context.Context, ping) { got = append(got, "b") })

	unsubA()
	unsubA()
	PublishTo(context.Background(), b, ping{})
	require.Equal(t, []string{"b"}, got)
}

func TestGlobalBus(t *testing.T) {
	Use(nil)
	calls := 0
	unsub := Subscribe(func(context.Context, ping) { calls++ })
	Publish(context.Background(), ping{})
	unsub()
	require.Zero(t, calls, "no bus installed")

	b := New()
	Use(b)
	t.Cleanup(func() { Use(nil) })
	unsub = Subscribe(func(context.Context, ping) { calls++ })
	Publish(context.Background(), ping{})
	require.Equal(t, 1, calls)

	unsub()
	Publish(context.Background(), ping{})
	require.Equal(t, 1, calls)
}

func TestNilBusPublish(t *testing.T) {
	require.NotPanics(t, func() { PublishTo(context.Background(), nil, ping{}) })
}
