package services

import (
	"fmt"
	"strings"

	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/repository"
)

type RestaurantService struct {
	repo *repository.RestaurantRepository
}

func NewRestaurantService(repo *repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo}
}

func (s *RestaurantService) List(f repository.RestaurantFilter) ([]entity.Restaurant, error) {
	return s.repo.List(f)
}

type RestaurantDetail struct {
	entity.Restaurant
	Dishes []entity.Dish `json:"dishes"`
}

func (s *RestaurantService) Detail(id uint) (*RestaurantDetail, error) {
	rest, err := s.repo.FindByIDWithDishes(id)
	if err != nil {
		return nil, notFoundOr(err, ErrMsgRestaurantMissing, "load restaurant")
	}
	dishes := rest.Dishes
	if dishes == nil {
		dishes = []entity.Dish{}
	}
	return &RestaurantDetail{Restaurant: *rest, Dishes: dishes}, nil
}

type RestaurantInput struct {
	Name     string  `json:"name" binding:"required"`
	Area     string  `json:"area"`
	Cuisine  string  `json:"cuisine"`
	Rating   float64 `json:"rating"`
	ImageURL string  `json:"imageUrl"`
}

// Create opens a restaurant owned by the caller.
func (s *RestaurantService) Create(ownerID uint, in RestaurantInput) (*entity.Restaurant, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, NewValidation("name is required")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return nil, NewValidation("rating must be between 0 and 5")
	}
	rest := &entity.Restaurant{
		Name:     name,
		Area:     strings.TrimSpace(in.Area),
		Cuisine:  strings.TrimSpace(in.Cuisine),
		Rating:   in.Rating,
		IsOpen:   true,
		ImageURL: strings.TrimSpace(in.ImageURL),
		OwnerID:  ownerID,
	}
	if err := s.repo.Create(rest); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	return rest, nil
}

func (s *RestaurantService) ListMine(ownerID uint) ([]entity.Restaurant, error) {
	return s.repo.ListByOwner(ownerID)
}
