package services

import (
	"context"
	"testing"
	"time"

	"aasaasi/internal/llm"
	"aasaasi/internal/logger"
	"aasaasi/models"
	"aasaasi/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekIndex(t *testing.T) {
	assert.Equal(t, 2, WeekIndex(2024, 1, 3))
	assert.Equal(t, 0, WeekIndex(2024, 2, 3))

	seen := map[int]bool{}
	for w := 1; w <= 53; w++ {
		seen[WeekIndex(2025, w, 100)] = true
	}
	assert.Len(t, seen, 53)
}

func TestCurrentIdiom(t *testing.T) {
	st := testStore()
	svc := NewIdiomService(st, llm.NewMockProvider(), time.Second, logger.Nop())
	svc.now = fixedClock(time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC))

	out, err := svc.Current(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Hit the books", out.Idiom)
	assert.Equal(t, "Week 1, 2024", out.WeekLabel)

	evs, err := st.ReadAll(context.Background(), "s1", time.Time{})
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, models.KindIdiomViewed, evs[0].Kind)
}

func TestCurrentIdiom_Empty(t *testing.T) {
	svc := NewIdiomService(store.NewStaticStoreFromDataset(&store.Dataset{}), llm.NewMockProvider(), time.Second, logger.Nop())

	_, err := svc.Current(context.Background(), "s1")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestArchive(t *testing.T) {
	svc := NewIdiomService(testStore(), llm.NewMockProvider(), time.Second, logger.Nop())
	ctx := context.Background()

	out, err := svc.Archive(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Hit the books", out[0].Idiom)
	assert.Equal(t, "Piece of cake", out[1].Idiom)

	out, err = svc.Archive(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Break the ice", out[0].Idiom)

	out, err = svc.Archive(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = svc.Archive(ctx, -1, 10)
	var in *InputError
	assert.ErrorAs(t, err, &in)
}

func TestExplain(t *testing.T) {
	card := "# Break The Ice\n## Simple Explanation\nTo start a **friendly** talk.\n"
	ai := llm.NewMockProvider(llm.MockResponse{Text: "```markdown\n" + card + "```"})
	svc := NewIdiomService(testStore(), ai, time.Second, logger.Nop())

	out, err := svc.Explain(context.Background(), " break the ICE ")
	require.NoError(t, err)
	assert.Equal(t, "break the ICE", out.Idiom)
	assert.NotContains(t, out.Explanation, "```")
	assert.Contains(t, out.HTML, "<h1>Break The Ice</h1>")
	assert.Contains(t, out.HTML, "<strong>friendly</strong>")

	require.Len(t, ai.Calls, 1)
	assert.Contains(t, ai.Calls[0].Messages[0].Content, "# Break The Ice")
}

func TestExplain_Errors(t *testing.T) {
	ai := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrTimeout{}})
	svc := NewIdiomService(testStore(), ai, time.Second, logger.Nop())

	_, err := svc.Explain(context.Background(), "a")
	var in *InputError
	assert.ErrorAs(t, err, &in)

	_, err = svc.Explain(context.Background(), "spill the beans")
	var timeout *llm.ErrTimeout
	assert.ErrorAs(t, err, &timeout)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Break The Ice", titleCase("break  the ICE"))
	assert.Equal(t, "Ébène Ça", titleCase("ébène ça"))
}
