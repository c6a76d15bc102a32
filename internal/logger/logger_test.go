package logger

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	eventbus "github.com/hanpama/bookgraph/internal/eventbus"
	events "github.com/hanpama/bookgraph/internal/events"
	reqid "github.com/hanpama/bookgraph/internal/reqid"
	store "github.com/hanpama/bookgraph/internal/store"
)

func TestNew(t *testing.T) {
	log, err := New(&Config{Level: "WARN", Encoder: "console"})
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(zapcore.InfoLevel))
	require.True(t, log.Core().Enabled(zapcore.WarnLevel))

	log, err = New(&Config{DevMode: true, Level: "debug"})
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zapcore.DebugLevel))

	_, err = New(&Config{Level: "loud"})
	require.Error(t, err)

	_, err = New(&Config{Encoder: "xml"})
	require.Error(t, err)
}

func TestAttachLogsEvents(t *testing.T) {
	bus := eventbus.New()
	eventbus.Use(bus)
	t.Cleanup(func() { eventbus.Use(nil) })

	core, logs := observer.New(zapcore.DebugLevel)
	detach := Attach(zap.New(core))

	ctx, id := reqid.NewContext(context.Background())
	req := httptest.NewRequest("POST", "/graphql", nil)
	eventbus.Publish(ctx, events.HTTPFinish{Request: req, Status: 200, Bytes: 42, Duration: time.Millisecond})
	eventbus.Publish(ctx, events.GraphQLFinish{OperationName: "Q", OperationType: "query"})
	eventbus.Publish(ctx, events.GraphQLFinish{OperationType: "query", Errors: []error{errors.New("boom")}, Partial: true})
	eventbus.Publish(ctx, events.RecordAppended{Collection: "authors", ID: 2})

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	require.Equal(t, "http request", entries[0].Message)
	fields := entries[0].ContextMap()
	require.Equal(t, reqid.String(id), fields["request_id"])
	require.Equal(t, "/graphql", fields["path"])
	require.EqualValues(t, 200, fields["status"])
	require.EqualValues(t, 42, fields["bytes"])

	require.Equal(t, zapcore.DebugLevel, entries[1].Level)
	require.Equal(t, zapcore.WarnLevel, entries[2].Level)
	require.Equal(t, true, entries[2].ContextMap()["partial"])

	require.Equal(t, "record appended", entries[3].Message)
	require.Equal(t, "authors", entries[3].ContextMap()["collection"])

	detach()
	eventbus.Publish(ctx, events.RecordAppended{Collection: "books", ID: 1})
	require.Equal(t, 4, logs.Len())
}

func TestStoreAppendIsLoggedOnce(t *testing.T) {
	bus := eventbus.New()
	eventbus.Use(bus)
	t.Cleanup(func() { eventbus.Use(nil) })

	core, logs := observer.New(zapcore.DebugLevel)
	defer Attach(zap.New(core))()

	st := store.New()
	_, err := st.AppendAuthor(context.Background(), "C")
	require.NoError(t, err)
	_, err = st.AppendBook(context.Background(), "B", 1)
	require.NoError(t, err)

	entries := logs.FilterMessage("record appended").AllUntimed()
	require.Len(t, entries, 2)
	require.Equal(t, "authors", entries[0].ContextMap()["collection"])
	require.Equal(t, "books", entries[1].ContextMap()["collection"])
}
