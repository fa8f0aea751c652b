package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/bushboy/bookingswap/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EventRepository defines the interface for the targeting history log
type EventRepository interface {
	Append(ctx context.Context, event *models.TargetingEvent) error
	Search(ctx context.Context, filter models.EventFilter, page models.Page) (*models.EventPage, error)
}

type eventRepository struct {
	q Querier
}

// NewEventRepository creates a new EventRepository over the given Querier
func NewEventRepository(q Querier) EventRepository {
	return &eventRepository{q: q}
}

func (r *eventRepository) Append(ctx context.Context, event *models.TargetingEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Severity == "" {
		event.Severity = models.SeverityInfo
	}

	query := `
		INSERT INTO targeting_events (id, listing_id, target_id, actor_id, type, severity, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.q.QueryRowContext(ctx, query,
		event.ID,
		event.ListingID,
		event.TargetID,
		event.ActorID,
		event.Type,
		event.Severity,
		event.Detail,
	).Scan(&event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append targeting event: %w", err)
	}

	return nil
}

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// Search returns matching events newest first along with the total match
// count for pagination.
func (r *eventRepository) Search(ctx context.Context, filter models.EventFilter, page models.Page) (*models.EventPage, error) {
	where, args := buildEventWhere(filter)

	limit := page.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}

	countQuery := `SELECT COUNT(*) FROM targeting_events` + where
	var total int
	if err := r.q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count targeting events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, listing_id, target_id, actor_id, type, severity, detail, created_at
		FROM targeting_events%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	rows, err := r.q.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to search targeting events: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows close

	events := make([]models.TargetingEvent, 0, limit)
	for rows.Next() {
		var e models.TargetingEvent
		err := rows.Scan(
			&e.ID,
			&e.ListingID,
			&e.TargetID,
			&e.ActorID,
			&e.Type,
			&e.Severity,
			&e.Detail,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan targeting event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate targeting events: %w", err)
	}

	return &models.EventPage{
		Events: events,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func buildEventWhere(filter models.EventFilter) (string, []any) {
	var clauses []string
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.ListingID != nil {
		add("listing_id = $%d", *filter.ListingID)
	}
	if filter.ActorID != nil {
		add("actor_id = $%d", *filter.ActorID)
	}
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		add("type = ANY($%d)", pq.Array(types))
	}
	if len(filter.Severity) > 0 {
		severities := make([]string, len(filter.Severity))
		for i, s := range filter.Severity {
			severities[i] = string(s)
		}
		add("severity = ANY($%d)", pq.Array(severities))
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at <= $%d", *filter.To)
	}
	if filter.Search != "" {
		add("detail ILIKE $%d", "%"+filter.Search+"%")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
