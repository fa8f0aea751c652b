package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bushboy/bookingswap/internal/models"
	"github.com/bushboy/bookingswap/internal/service"
	"github.com/google/uuid"
)

type eventResponse struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	TargetID  *string   `json:"target_id,omitempty"`
	ActorID   *string   `json:"actor_id,omitempty"`
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

type historyResponse struct {
	Events []eventResponse `json:"events"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// GetHistory handles GET /api/v1/history
//
// Query parameters: listing_id, actor_id, types (comma separated), severity
// (comma separated), from, to (RFC 3339), q (free text), limit, offset.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	filter, page, err := parseHistoryQuery(r)
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, service.ErrCodeInvalidInput, err.Error())
		return
	}

	result, err := h.history.Search(r.Context(), filter, page)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	events := make([]eventResponse, 0, len(result.Events))
	for i := range result.Events {
		events = append(events, toEventResponse(&result.Events[i]))
	}

	respondJSON(w, http.StatusOK, historyResponse{
		Events: events,
		Total:  result.Total,
		Limit:  result.Limit,
		Offset: result.Offset,
	})
}

func toEventResponse(e *models.TargetingEvent) eventResponse {
	resp := eventResponse{
		ID:        e.ID.String(),
		ListingID: e.ListingID.String(),
		Type:      string(e.Type),
		Severity:  string(e.Severity),
		Detail:    e.Detail,
		CreatedAt: e.CreatedAt,
	}
	if e.TargetID != nil {
		id := e.TargetID.String()
		resp.TargetID = &id
	}
	if e.ActorID != nil {
		id := e.ActorID.String()
		resp.ActorID = &id
	}
	return resp
}

func parseHistoryQuery(r *http.Request) (models.EventFilter, models.Page, error) {
	var filter models.EventFilter
	var page models.Page
	q := r.URL.Query()

	if v := q.Get("listing_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, page, err
		}
		filter.ListingID = &id
	}
	if v := q.Get("actor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, page, err
		}
		filter.ActorID = &id
	}
	if v := q.Get("types"); v != "" {
		for _, t := range strings.Split(v, ",") {
			filter.Types = append(filter.Types, models.EventType(strings.TrimSpace(t)))
		}
	}
	if v := q.Get("severity"); v != "" {
		for _, s := range strings.Split(v, ",") {
			filter.Severity = append(filter.Severity, models.EventSeverity(strings.TrimSpace(s)))
		}
	}
	if v := q.Get("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, page, err
		}
		filter.From = &ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, page, err
		}
		filter.To = &ts
	}
	filter.Search = q.Get("q")

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, page, err
		}
		page.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, page, err
		}
		page.Offset = n
	}

	return filter, page, nil
}
