package runjournal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/stockcast/internal/domain"
)

func TestWALStore_SaveAndReplay(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	store, err := NewWALStore(dir)
	require.NoError(t, err)

	first := domain.NewFileOutcome("run-1", "LSE", "FLTR.csv", 13, nil, ts)
	second := domain.NewFileOutcome("run-1", "LSE", "GSK.csv", 0, domain.ErrDataInsufficient, ts)
	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))
	assert.Equal(t, uint64(2), store.CurrentIndex())
	require.NoError(t, store.Close())

	reopened, err := NewWALStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	outcomes, err := reopened.Outcomes()
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, "FLTR.csv", outcomes[0].Stock)
	assert.Equal(t, domain.OutcomeOK, outcomes[0].Status)
	assert.Equal(t, 13, outcomes[0].Rows)
	assert.True(t, outcomes[0].Timestamp.Equal(ts))

	assert.Equal(t, "GSK.csv", outcomes[1].Stock)
	assert.Equal(t, domain.OutcomeDataInsufficient, outcomes[1].Status)
	assert.Equal(t, "not enough data", outcomes[1].Reason)
}

func TestWALStore_RequiresExchangeAndStock(t *testing.T) {
	store, err := NewWALStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	assert.Error(t, store.Save(domain.FileOutcome{Exchange: "NYSE"}))
	assert.Error(t, store.Save(domain.FileOutcome{Stock: "A.csv"}))
	assert.Equal(t, uint64(0), store.CurrentIndex())
}

func TestWALStore_NilStore(t *testing.T) {
	var store *WALStore

	assert.Error(t, store.Save(domain.FileOutcome{Exchange: "X", Stock: "Y"}))
	_, err := store.Outcomes()
	assert.Error(t, err)
	assert.Equal(t, uint64(0), store.CurrentIndex())
	assert.Error(t, store.Close())
}
