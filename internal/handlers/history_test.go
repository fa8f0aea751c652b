package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bushboy/bookingswap/internal/models"
	"github.com/bushboy/bookingswap/internal/service/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetHistory_Success(t *testing.T) {
	mockHistory := mocks.NewMockHistoryReader(t)
	handler := newTestHandler(nil, nil, nil, mockHistory)

	listingID := uuid.New()

	mockHistory.On("Search", mock.Anything,
		mock.MatchedBy(func(filter models.EventFilter) bool {
			return filter.ListingID != nil && *filter.ListingID == listingID &&
				len(filter.Types) == 2 && filter.Search == "refund"
		}),
		mock.MatchedBy(func(page models.Page) bool {
			return page.Limit == 10 && page.Offset == 20
		})).Return(&models.EventPage{
		Events: []models.TargetingEvent{
			{
				ID:        uuid.New(),
				ListingID: listingID,
				Type:      models.EventTargetCreated,
				Severity:  models.SeverityInfo,
				Detail:    "target created",
				CreatedAt: time.Now(),
			},
		},
		Total:  1,
		Limit:  10,
		Offset: 20,
	}, nil)

	url := "/api/v1/history?listing_id=" + listingID.String() +
		"&types=TARGET_CREATED,TARGET_SUPERSEDED&q=refund&limit=10&offset=20"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req = authed(req, uuid.New())
	rec := httptest.NewRecorder()

	handler.GetHistory(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Contains(t, rec.Body.String(), `"type":"TARGET_CREATED"`)
}

func TestGetHistory_EmptyResult(t *testing.T) {
	mockHistory := mocks.NewMockHistoryReader(t)
	handler := newTestHandler(nil, nil, nil, mockHistory)

	mockHistory.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.EventPage{Events: []models.TargetingEvent{}, Total: 0, Limit: 50}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	req = authed(req, uuid.New())
	rec := httptest.NewRecorder()

	handler.GetHistory(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"events":[]`)
}

func TestGetHistory_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad listing id", "listing_id=abc"},
		{"bad actor id", "actor_id=abc"},
		{"bad from timestamp", "from=yesterday"},
		{"bad limit", "limit=ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(nil, nil, nil, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/history?"+tt.query, nil)
			req = authed(req, uuid.New())
			rec := httptest.NewRecorder()

			handler.GetHistory(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetHistory_Unauthenticated(t *testing.T) {
	handler := newTestHandler(nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	rec := httptest.NewRecorder()

	handler.GetHistory(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
