package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/alexanderramin/focusbox/internal/exchange"
	"github.com/alexanderramin/focusbox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchange_ExportThenImportIntoEmptyStore(t *testing.T) {
	source, _ := newTestStore(t)
	ctx := context.Background()

	for i, label := range []string{"Writing", "Reading", "Writing"} {
		m := testutil.NewTestMeasurement(label, testutil.WithSpan(svcNow.Add(time.Duration(i)*time.Hour), 20*time.Minute))
		_, err := source.AddMeasurement(ctx, *m)
		require.NoError(t, err)
	}
	require.NoError(t, source.AddBox(ctx, *testutil.NewTestBox(testutil.WithBoxStart(svcNow))))

	doc := NewExchangeService(source, newTestClock()).Export(ctx)

	target, _ := newTestStore(t)
	res, err := NewExchangeService(target, newTestClock()).ImportDocument(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Measurements)
	assert.Equal(t, 1, res.Boxes)
	assert.Equal(t, 2, res.CatalogEntries)

	assert.Equal(t, source.Measurements(), target.Measurements())
	assert.Equal(t, source.Boxes(), target.Boxes())

	res, err = NewExchangeService(target, newTestClock()).ImportDocument(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Skipped, "reimport adds nothing")
}

func TestExchange_ImportRejectsInvalidDocument(t *testing.T) {
	store, _ := newTestStore(t)
	doc := &exchange.Document{
		Version: exchange.SchemaVersion,
		Measurements: []exchange.MeasurementRecord{
			{ID: "x", Label: "", Start: "2024-01-02T10:00:00Z", End: "2024-01-02T09:00:00Z"},
		},
	}

	_, err := NewExchangeService(store, newTestClock()).ImportDocument(context.Background(), doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Empty(t, store.Measurements())
}

func TestExchange_ImportedColorsFollowExistingCatalog(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	_, err := store.AddMeasurement(ctx, *testutil.NewTestMeasurement("Writing", testutil.WithSpan(svcNow, time.Minute)))
	require.NoError(t, err)

	doc := &exchange.Document{
		Version: exchange.SchemaVersion,
		Measurements: []exchange.MeasurementRecord{{
			ID: "imported", Label: "Writing",
			Start: "2024-01-01T10:00:00Z", End: "2024-01-01T11:00:00Z",
			Color: exchange.ColorRecord{R: 0.1, G: 0.1, B: 0.1},
		}},
	}
	_, err = NewExchangeService(store, newTestClock()).ImportDocument(ctx, doc)
	require.NoError(t, err)

	imported, err := store.Measurement("imported")
	require.NoError(t, err)
	assert.Equal(t, domain.Palette[0], imported.Color)
}
