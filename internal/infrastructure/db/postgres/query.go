package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/baechuer/events-api/internal/application/event"
	"github.com/baechuer/events-api/internal/domain"
)

const eventSelectColumns = "e.id, e.name, e.description, e.address, e.occurs_at, e.organizer_id"

var eventColumns = map[event.Field]string{
	event.FieldID:          "e.id",
	event.FieldWhen:        "e.occurs_at",
	event.FieldOrganizerID: "e.organizer_id",
}

// queryBuilder accumulates positional args while rendering an event.Query.
type queryBuilder struct {
	args []any
}

func (b *queryBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func column(f event.Field) (string, error) {
	c, ok := eventColumns[f]
	if !ok {
		return "", fmt.Errorf("unsupported event field %q", f)
	}
	return c, nil
}

func (b *queryBuilder) where(q event.Query) (string, error) {
	if len(q.Predicates) == 0 {
		return "", nil
	}

	conds := make([]string, 0, len(q.Predicates))
	for _, p := range q.Predicates {
		switch p.Op {
		case event.OpEq:
			c, err := column(p.Field)
			if err != nil {
				return "", err
			}
			conds = append(conds, c+" = "+b.bind(p.Int))
		case event.OpRange:
			c, err := column(p.Field)
			if err != nil {
				return "", err
			}
			conds = append(conds, c+" >= "+b.bind(p.From)+" AND "+c+" < "+b.bind(p.To))
		case event.OpAttendedBy:
			conds = append(conds,
				"EXISTS (SELECT 1 FROM attendees a WHERE a.event_id = e.id AND a.user_id = "+b.bind(p.Int)+")")
		default:
			return "", fmt.Errorf("unsupported predicate op %d", p.Op)
		}
	}
	return " WHERE " + strings.Join(conds, " AND "), nil
}

func aggregateSQL(a event.Aggregate) (string, error) {
	switch a.Into {
	case event.FieldAttendeeCount, event.FieldAttendeeAccepted, event.FieldAttendeeMaybe, event.FieldAttendeeRejected:
	default:
		return "", fmt.Errorf("unsupported aggregate %q", a.Into)
	}

	sub := "(SELECT COUNT(*) FROM attendees a WHERE a.event_id = e.id"
	if a.Answer != 0 {
		if !a.Answer.Valid() {
			return "", fmt.Errorf("invalid attendee answer %d", a.Answer)
		}
		// validated enum, safe to inline
		sub += " AND a.answer = " + strconv.Itoa(int(a.Answer))
	}
	return sub + ") AS " + string(a.Into), nil
}

func orderBy(q event.Query) (string, error) {
	if len(q.Sort) == 0 {
		return " ORDER BY e.id DESC", nil
	}
	parts := make([]string, 0, len(q.Sort))
	for _, o := range q.Sort {
		c, err := column(o.Field)
		if err != nil {
			return "", err
		}
		if o.Desc {
			c += " DESC"
		} else {
			c += " ASC"
		}
		parts = append(parts, c)
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// buildSelect renders q as a row query limited to [offset, offset+limit).
func buildSelect(q event.Query, offset, limit int) (string, []any, error) {
	var b queryBuilder

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(eventSelectColumns)
	for _, a := range q.Aggregates {
		s, err := aggregateSQL(a)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(", ")
		sb.WriteString(s)
	}
	sb.WriteString(" FROM events e")

	where, err := b.where(q)
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(where)

	order, err := orderBy(q)
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(order)

	sb.WriteString(" LIMIT " + b.bind(limit))
	sb.WriteString(" OFFSET " + b.bind(offset))

	return sb.String(), b.args, nil
}

// buildCount renders the same predicates as buildSelect without
// aggregates, ordering or paging.
func buildCount(q event.Query) (string, []any, error) {
	var b queryBuilder
	where, err := b.where(q)
	if err != nil {
		return "", nil, err
	}
	return "SELECT COUNT(*) FROM events e" + where, b.args, nil
}

// aggregateTarget returns the Event field an aggregate column scans into.
func aggregateTarget(e *domain.Event, f event.Field) *int {
	switch f {
	case event.FieldAttendeeCount:
		return &e.AttendeeCount
	case event.FieldAttendeeAccepted:
		return &e.AttendeeAccepted
	case event.FieldAttendeeMaybe:
		return &e.AttendeeMaybe
	case event.FieldAttendeeRejected:
		return &e.AttendeeRejected
	}
	return nil
}
