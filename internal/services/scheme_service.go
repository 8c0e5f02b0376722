package services

import (
	"context"
	"errors"

	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/repositories"
)

// SchemeService manages the single active scheme configuration.
type SchemeService struct {
	schemeRepo repositories.SchemeRepository
}

// NewSchemeService creates a new SchemeService
func NewSchemeService(schemeRepo repositories.SchemeRepository) *SchemeService {
	return &SchemeService{schemeRepo: schemeRepo}
}

// Upsert updates the active scheme or creates one when none exists.
func (s *SchemeService) Upsert(ctx context.Context, title, prize string, totalWeeks, costPerWeek int) (*models.Scheme, error) {
	if totalWeeks <= 0 {
		totalWeeks = models.DefaultTotalWeeks
	}
	if costPerWeek <= 0 {
		costPerWeek = models.DefaultCostPerWeek
	}

	scheme, err := s.schemeRepo.FindActive(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		scheme = &models.Scheme{
			Title:       title,
			Prize:       prize,
			TotalWeeks:  totalWeeks,
			CostPerWeek: costPerWeek,
			IsActive:    true,
		}
		if err := s.schemeRepo.Create(ctx, scheme); err != nil {
			return nil, err
		}
		return scheme, nil
	}

	scheme.Title = title
	scheme.Prize = prize
	scheme.TotalWeeks = totalWeeks
	scheme.CostPerWeek = costPerWeek
	if err := s.schemeRepo.Update(ctx, scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

// Active returns the active scheme.
func (s *SchemeService) Active(ctx context.Context) (*models.Scheme, error) {
	return s.schemeRepo.FindActive(ctx)
}
