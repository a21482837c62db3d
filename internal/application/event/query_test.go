package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/events-api/internal/domain"
)

func TestBaseQuery_SortsByIDDesc(t *testing.T) {
	q := BaseQuery()
	assert.Empty(t, q.Predicates)
	assert.Empty(t, q.Aggregates)
	assert.Equal(t, []Order{{Field: FieldID, Desc: true}}, q.Sort)
}

func TestWithAttendeeCounts(t *testing.T) {
	q := WithAttendeeCounts(BaseQuery())

	require.Len(t, q.Aggregates, 4)
	assert.Equal(t, Aggregate{Into: FieldAttendeeCount}, q.Aggregates[0])
	assert.Equal(t, domain.AnswerAccepted, q.Aggregates[1].Answer)
	assert.Equal(t, domain.AnswerMaybe, q.Aggregates[2].Answer)
	assert.Equal(t, domain.AnswerRejected, q.Aggregates[3].Answer)
	assert.True(t, q.HasAggregate(FieldAttendeeRejected))
}

func TestWith_DoesNotMutateOrShare(t *testing.T) {
	base := WithAttendeeCounts(BaseQuery())

	a := base.With(Eq(FieldOrganizerID, 1))
	b := base.With(Eq(FieldOrganizerID, 2))

	assert.Empty(t, base.Predicates)
	require.Len(t, a.Predicates, 1)
	require.Len(t, b.Predicates, 1)
	assert.Equal(t, int64(1), a.Predicates[0].Int)
	assert.Equal(t, int64(2), b.Predicates[0].Int)

	a.Aggregates[0].Into = "mutated"
	assert.Equal(t, FieldAttendeeCount, base.Aggregates[0].Into)
}

func TestFilteredQuery(t *testing.T) {
	now := time.Date(2025, 12, 24, 15, 30, 0, 0, time.UTC) // Wednesday

	t.Run("all applies no date restriction", func(t *testing.T) {
		q := FilteredQuery(domain.WhenAll, now)
		assert.Empty(t, q.Predicates)
		assert.Len(t, q.Aggregates, 4)
	})

	t.Run("today is midnight to midnight", func(t *testing.T) {
		q := FilteredQuery(domain.WhenToday, now)
		require.Len(t, q.Predicates, 1)
		p := q.Predicates[0]
		assert.Equal(t, OpRange, p.Op)
		assert.Equal(t, FieldWhen, p.Field)
		assert.Equal(t, time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC), p.From)
		assert.Equal(t, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), p.To)
	})

	t.Run("next week starts on the following monday", func(t *testing.T) {
		q := FilteredQuery(domain.WhenNextWeek, now)
		require.Len(t, q.Predicates, 1)
		assert.Equal(t, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), q.Predicates[0].From)
		assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), q.Predicates[0].To)
	})
}

func TestVariants(t *testing.T) {
	org := OrganizedByQuery(4)
	require.Len(t, org.Predicates, 1)
	assert.Equal(t, Eq(FieldOrganizerID, 4), org.Predicates[0])
	assert.Len(t, org.Aggregates, 4)

	att := AttendedByQuery(4)
	require.Len(t, att.Predicates, 1)
	assert.Equal(t, OpAttendedBy, att.Predicates[0].Op)
	assert.Equal(t, int64(4), att.Predicates[0].Int)

	byID := ByIDQuery(9)
	assert.Equal(t, []Predicate{Eq(FieldID, 9)}, byID.Predicates)
}
