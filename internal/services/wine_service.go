package services

import (
	"fmt"

	"tiproom_backend/internal/models"
	"tiproom_backend/internal/repositories"
)

// WineService exposes the wine list to the presentation layer.
type WineService interface {
	GetWines() ([]models.Wine, error)
}

type wineService struct {
	wineRepo repositories.WineRepository
}

// NewWineService creates a new instance of WineService.
func NewWineService(wineRepo repositories.WineRepository) WineService {
	return &wineService{wineRepo: wineRepo}
}

func (s *wineService) GetWines() ([]models.Wine, error) {
	wines, err := s.wineRepo.GetWines()
	if err != nil {
		return nil, fmt.Errorf("failed to get wines: %w", err)
	}
	return wines, nil
}
