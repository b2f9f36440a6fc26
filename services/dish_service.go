package services

import (
	"fmt"
	"strings"

	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/repository"
)

type DishService struct {
	repo     *repository.DishRepository
	restRepo *repository.RestaurantRepository
}

func NewDishService(repo *repository.DishRepository, restRepo *repository.RestaurantRepository) *DishService {
	return &DishService{repo: repo, restRepo: restRepo}
}

// ListByRestaurant returns the dishes a customer can order right now.
func (s *DishService) ListByRestaurant(restaurantID uint) ([]entity.Dish, error) {
	if _, err := s.restRepo.FindByID(restaurantID); err != nil {
		return nil, notFoundOr(err, ErrMsgRestaurantMissing, "load restaurant")
	}
	return s.repo.ListAvailable(restaurantID)
}

type DishInput struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	IsVeg       bool   `json:"isVeg"`
	ImageURL    string `json:"imageUrl"`
}

func (s *DishService) checkOwner(actor Actor, restaurantID uint) error {
	exists, owns, err := s.restRepo.IsOwner(restaurantID, actor.UserID)
	if err != nil {
		return fmt.Errorf("check restaurant owner: %w", err)
	}
	if !exists {
		return NewNotFound(ErrMsgRestaurantMissing)
	}
	if !owns && !actor.IsAdmin() {
		return NewForbidden("you do not own this restaurant")
	}
	return nil
}

// POST /owner/restaurants/:id/dishes
func (s *DishService) Create(actor Actor, restaurantID uint, in DishInput) (*entity.Dish, error) {
	if err := s.checkOwner(actor, restaurantID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, NewValidation("name is required")
	}
	if in.Price < 0 {
		return nil, NewValidation("price cannot be negative")
	}
	d := &entity.Dish{
		Name:         name,
		Category:     strings.TrimSpace(in.Category),
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		IsVeg:        in.IsVeg,
		IsAvailable:  true,
		ImageURL:     strings.TrimSpace(in.ImageURL),
		RestaurantID: restaurantID,
	}
	if err := s.repo.Create(d); err != nil {
		return nil, fmt.Errorf("create dish: %w", err)
	}
	return d, nil
}

// DishPatch carries the fields an owner may change. The restaurant is fixed
// at creation.
type DishPatch struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	IsAvailable *bool   `json:"isAvailable"`
}

// PATCH /owner/dishes/:id
func (s *DishService) Update(actor Actor, dishID uint, in DishPatch) (*entity.Dish, error) {
	d, err := s.repo.Get(dishID)
	if err != nil {
		return nil, notFoundOr(err, ErrMsgDishNotFound, "load dish")
	}
	if err := s.checkOwner(actor, d.RestaurantID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return nil, NewValidation("name cannot be empty")
		}
		fields["name"] = n
	}
	if in.Category != nil {
		fields["category"] = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, NewValidation("price cannot be negative")
		}
		fields["price"] = *in.Price
	}
	if in.IsAvailable != nil {
		fields["is_available"] = *in.IsAvailable
	}
	if len(fields) > 0 {
		if err := s.repo.Update(d.ID, fields); err != nil {
			return nil, fmt.Errorf("update dish: %w", err)
		}
	}
	return s.repo.Get(d.ID)
}
