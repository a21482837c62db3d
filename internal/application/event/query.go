package event

import (
	"time"

	"github.com/baechuer/events-api/internal/domain"
)

// Field names an event column or derived count. Renderers own the mapping to
// concrete SQL.
type Field string

const (
	FieldID          Field = "id"
	FieldWhen        Field = "when"
	FieldOrganizerID Field = "organizer_id"

	FieldAttendeeCount    Field = "attendee_count"
	FieldAttendeeAccepted Field = "attendee_accepted"
	FieldAttendeeMaybe    Field = "attendee_maybe"
	FieldAttendeeRejected Field = "attendee_rejected"
)

type Op int

const (
	// OpEq: Field = Int
	OpEq Op = iota + 1
	// OpRange: From <= Field < To
	OpRange
	// OpAttendedBy: an attendee row exists for user Int
	OpAttendedBy
)

type Predicate struct {
	Op    Op
	Field Field
	Int   int64
	From  time.Time
	To    time.Time
}

func Eq(f Field, v int64) Predicate { return Predicate{Op: OpEq, Field: f, Int: v} }

func Between(f Field, from, to time.Time) Predicate {
	return Predicate{Op: OpRange, Field: f, From: from, To: to}
}

func AttendedBy(userID int64) Predicate { return Predicate{Op: OpAttendedBy, Int: userID} }

type Order struct {
	Field Field
	Desc  bool
}

// Aggregate is a correlated count of attendee rows for the event, stored
// into Into. A zero Answer counts every row.
type Aggregate struct {
	Into   Field
	Answer domain.AttendeeAnswer
}

// Query is an immutable description of an event listing. Predicates are
// AND-ed. Builders below always return a fresh value and never share slices
// with their input.
type Query struct {
	Predicates []Predicate
	Sort       []Order
	Aggregates []Aggregate
}

// BaseQuery lists every event, newest id first.
func BaseQuery() Query {
	return Query{Sort: []Order{{Field: FieldID, Desc: true}}}
}

func (q Query) clone() Query {
	return Query{
		Predicates: append([]Predicate(nil), q.Predicates...),
		Sort:       append([]Order(nil), q.Sort...),
		Aggregates: append([]Aggregate(nil), q.Aggregates...),
	}
}

// With returns a copy of q with p added.
func (q Query) With(p Predicate) Query {
	out := q.clone()
	out.Predicates = append(out.Predicates, p)
	return out
}

// HasAggregate reports whether the query fills the given derived count.
func (q Query) HasAggregate(f Field) bool {
	for _, a := range q.Aggregates {
		if a.Into == f {
			return true
		}
	}
	return false
}

// WithAttendeeCounts adds the total attendee count plus one count per answer.
func WithAttendeeCounts(q Query) Query {
	out := q.clone()
	out.Aggregates = append(out.Aggregates,
		Aggregate{Into: FieldAttendeeCount},
		Aggregate{Into: FieldAttendeeAccepted, Answer: domain.AnswerAccepted},
		Aggregate{Into: FieldAttendeeMaybe, Answer: domain.AnswerMaybe},
		Aggregate{Into: FieldAttendeeRejected, Answer: domain.AnswerRejected},
	)
	return out
}

func countedQuery() Query {
	return WithAttendeeCounts(BaseQuery())
}

// FilteredQuery lists events with counts, optionally restricted to the
// calendar window selected by when relative to now.
func FilteredQuery(when domain.WhenFilter, now time.Time) Query {
	q := countedQuery()
	if from, to, ok := when.Range(now); ok {
		q = q.With(Between(FieldWhen, from, to))
	}
	return q
}

func OrganizedByQuery(userID int64) Query {
	return countedQuery().With(Eq(FieldOrganizerID, userID))
}

func AttendedByQuery(userID int64) Query {
	return countedQuery().With(AttendedBy(userID))
}

func ByIDQuery(id int64) Query {
	return countedQuery().With(Eq(FieldID, id))
}
