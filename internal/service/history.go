package service

import (
	"context"

	"github.com/bushboy/bookingswap/internal/db"
	"github.com/bushboy/bookingswap/internal/models"
	"github.com/bushboy/bookingswap/internal/repository"
)

// HistoryService serves read-only targeting history queries
type HistoryService struct {
	db *db.DB
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(database *db.DB) *HistoryService {
	return &HistoryService{db: database}
}

// Search returns targeting events matching the filter, newest first
func (s *HistoryService) Search(ctx context.Context, filter models.EventFilter, page models.Page) (*models.EventPage, error) {
	if err := ValidatePage(page); err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidInput,
			Message: err.Error(),
		}
	}

	eventRepo := repository.NewEventRepository(s.db)

	result, err := eventRepo.Search(ctx, filter, page)
	if err != nil {
		return nil, internalError("failed to search targeting history", err)
	}

	return result, nil
}
