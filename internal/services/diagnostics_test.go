package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"literasi-backend/internal/docstore"
)

type failingCollections struct {
	*docstore.Memory
}

func (failingCollections) Collections(context.Context, int) ([]string, error) {
	return nil, errors.New(strings.Repeat("x", 120))
}

func TestDiagnose_Disconnected(t *testing.T) {
	d := NewDiagnosticsService(docstore.Disconnected{}, false, true).Diagnose(context.Background())
	assert.Equal(t, "✅ Running", d.Backend)
	assert.Equal(t, "❌ Not Available", d.Database)
	assert.Equal(t, "❌ Not Set", d.DatabaseURL)
	assert.Equal(t, "✅ Set", d.DatabaseName)
	assert.Equal(t, "Not Connected", d.ConnectionStatus)
	assert.Equal(t, []string{}, d.Collections)
}

func TestDiagnose_Connected(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	for i := 0; i < 12; i++ {
		_, _ = store.Insert(ctx, string(rune('a'+i)), map[string]any{"n": i})
	}

	d := NewDiagnosticsService(store, true, true).Diagnose(ctx)
	assert.Equal(t, "✅ Connected", d.Database)
	assert.Equal(t, "Connected", d.ConnectionStatus)
	assert.Len(t, d.Collections, 10)
}

func TestDiagnose_CollectionError(t *testing.T) {
	d := NewDiagnosticsService(failingCollections{docstore.NewMemory()}, true, true).Diagnose(context.Background())
	assert.Equal(t, "⚠️ Error: "+strings.Repeat("x", 80), d.Database)
	assert.Equal(t, "Connected", d.ConnectionStatus)
	assert.Equal(t, []string{}, d.Collections)
}
