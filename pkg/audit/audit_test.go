package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rejean-McCormick/Ariane/pkg/audit"
	"github.com/Rejean-McCormick/Ariane/pkg/auth"
)

func TestRecordWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := audit.NewLoggerWithWriter(&buf)

	err := logger.Record(context.Background(), audit.EventMutation, "ingest_bundle", "/ingest/bundle",
		map[string]any{"context_id": "ctx-1"})
	require.NoError(t, err)

	output := buf.String()
	require.True(t, strings.HasPrefix(output, "AUDIT: "))

	var event audit.Event
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(output, "AUDIT: ")), &event))
	require.Equal(t, audit.EventMutation, event.Type)
	require.Equal(t, "ingest_bundle", event.Action)
	require.Equal(t, "/ingest/bundle", event.Resource)
	require.Equal(t, "anonymous", event.ActorID)
	require.Equal(t, "ctx-1", event.Metadata["context_id"])
	require.NotEmpty(t, event.ID)
	require.False(t, event.Timestamp.IsZero())
}

func TestRecordUsesPrincipalFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := audit.NewLoggerWithWriter(&buf)

	ctx := auth.WithPrincipal(context.Background(), &auth.Principal{ID: "recorder"})
	require.NoError(t, logger.Record(ctx, audit.EventAccess, "list_contexts", "/contexts", nil))

	var event audit.Event
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(buf.String(), "AUDIT: ")), &event))
	require.Equal(t, "recorder", event.ActorID)
}

func TestNilWriterDefaultsToStdout(t *testing.T) {
	require.NotNil(t, audit.NewLoggerWithWriter(nil))
}

func TestMiddlewareRecordsMutationsOnly(t *testing.T) {
	var buf bytes.Buffer
	logger := audit.NewLoggerWithWriter(&buf)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := audit.Middleware(logger)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contexts", nil))
	require.Empty(t, buf.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ingest/bundle", nil))
	require.Contains(t, buf.String(), `"MUTATION"`)
	require.Contains(t, buf.String(), `"/ingest/bundle"`)
}
