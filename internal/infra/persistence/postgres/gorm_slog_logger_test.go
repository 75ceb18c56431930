package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		entries = append(entries, entry)
	}

	return entries
}

func TestGormSlogLogger_Trace(t *testing.T) {
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }
	cfg := &config.Config{Persistence: &config.PersistenceConfig{SlowQueryThreshold: 50 * time.Millisecond}}

	tests := []struct {
		name    string
		begin   time.Time
		err     error
		wantMsg string
	}{
		{name: "fast query is quiet", begin: time.Now()},
		{name: "record not found is quiet", begin: time.Now(), err: gorm.ErrRecordNotFound},
		{name: "failure", begin: time.Now(), err: errors.New("deadlock detected"), wantMsg: "GORM query failed"},
		{name: "slow query", begin: time.Now().Add(-time.Second), wantMsg: "GORM slow query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)), cfg)

			l.Trace(context.Background(), tt.begin, sqlFn, tt.err)

			entries := decodeLines(t, &buf)
			if tt.wantMsg == "" {
				assert.Empty(t, entries)

				return
			}
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantMsg, entries[0]["msg"])
			assert.Equal(t, "SELECT 1", entries[0]["sql"])
		})
	}
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&base, nil)), &config.Config{})

	reqLogger := slog.New(slog.NewJSONHandler(&scoped, nil)).With(slog.String("request_id", "req-1"))
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

	l.Trace(ctx, time.Now(), func() (string, int64) { return "UPDATE products", 0 }, errors.New("boom"))

	assert.Zero(t, base.Len())
	entries := decodeLines(t, &scoped)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0]["request_id"])
}
