package services

import (
	"context"
	"testing"
	"time"

	"aasaasi/internal/logger"
	"aasaasi/models"
	"aasaasi/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToday_PicksOncePerDay(t *testing.T) {
	st := testStore()
	svc := NewWordOfDayService(st, logger.Nop())
	svc.now = fixedClock(time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC))

	first, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", first.Date)

	second, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	hist, err := st.WodHistoryOn(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, first.Word, hist.Word)
	assert.NotEmpty(t, hist.WordID)
}

func TestToday_AvoidsRepeatsUntilPoolIsUsed(t *testing.T) {
	st := testStore()
	svc := NewWordOfDayService(st, logger.Nop())
	day := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		svc.now = fixedClock(day.AddDate(0, 0, i))
		w, err := svc.Today(context.Background())
		require.NoError(t, err)
		seen[w.Word] = true
	}
	assert.Len(t, seen, 2)

	// both words shown: the pool starts over
	svc.now = fixedClock(day.AddDate(0, 0, 2))
	w, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Contains(t, []string{"serene", "candid"}, w.Word)
}

func TestToday_ShapesExamples(t *testing.T) {
	st := store.NewStaticStoreFromDataset(&store.Dataset{
		WodWords: []models.WodWord{{ID: "W0", Word: "serene", Example: " A serene lake. "}},
	})
	svc := NewWordOfDayService(st, logger.Nop())

	w, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A serene lake."}, w.Examples)
	assert.Equal(t, []string{}, w.Synonyms)
}

func TestToday_EmptyPool(t *testing.T) {
	svc := NewWordOfDayService(store.NewStaticStoreFromDataset(&store.Dataset{}), logger.Nop())

	_, err := svc.Today(context.Background())
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestOn(t *testing.T) {
	st := testStore()
	ctx := context.Background()
	require.NoError(t, st.SaveWodHistory(ctx, models.WodHistory{Date: "2025-01-02", WordID: "W1", Word: "candid"}))
	require.NoError(t, st.SaveWodHistory(ctx, models.WodHistory{Date: "2025-01-03", Word: "gone"}))
	svc := NewWordOfDayService(st, logger.Nop())

	w, err := svc.On(ctx, "2025-01-02")
	require.NoError(t, err)
	assert.Equal(t, "candid", w.Word)
	assert.Equal(t, "honest", w.Definition)

	var nf *NotFoundError
	_, err = svc.On(ctx, "2025-01-01")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "No word recorded for 2025-01-01", nf.Detail)

	_, err = svc.On(ctx, "2025-01-03")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Word doc missing", nf.Detail)

	_, err = svc.On(ctx, "01/02/2025")
	var in *InputError
	assert.ErrorAs(t, err, &in)
}

func TestHistoryAndSample(t *testing.T) {
	st := testStore()
	ctx := context.Background()
	for _, h := range []models.WodHistory{
		{Date: "2025-01-01", Word: "serene"},
		{Date: "2025-01-03", Word: "candid"},
		{Date: "2025-01-02", Word: "serene"},
	} {
		require.NoError(t, st.SaveWodHistory(ctx, h))
	}
	svc := NewWordOfDayService(st, logger.Nop())

	hist, err := svc.History(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []HistoryItem{{Word: "candid", Date: "2025-01-03"}, {Word: "serene", Date: "2025-01-02"}}, hist)

	_, err = svc.History(ctx, 31)
	var in *InputError
	assert.ErrorAs(t, err, &in)

	sample, err := svc.Sample(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, sample, 2)
	for _, s := range sample {
		assert.Nil(t, s.Date)
	}
}
