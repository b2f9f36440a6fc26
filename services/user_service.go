package services

import (
	"fmt"
	"strings"

	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/repository"
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{userRepo: repo}
}

func (s *UserService) Me(userID uint) (*entity.User, error) {
	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, notFoundOr(err, "user not found", "load user")
	}
	return u, nil
}

type UpdateMeInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

func (s *UserService) UpdateMe(userID uint, in UpdateMeInput) (*entity.User, error) {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		updates["phone"] = strings.TrimSpace(*in.Phone)
	}
	if len(updates) > 0 {
		if err := s.userRepo.Update(userID, updates); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}
	return s.Me(userID)
}

func (s *UserService) ListAddresses(userID uint) ([]entity.Address, error) {
	return s.userRepo.ListAddresses(userID)
}

type AddressInput struct {
	Label      string `json:"label"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

func (s *UserService) AddAddress(userID uint, in AddressInput) (*entity.Address, error) {
	if strings.TrimSpace(in.Line1) == "" {
		return nil, NewValidation("line1 is required")
	}
	a := &entity.Address{
		UserID:     userID,
		Label:      strings.TrimSpace(in.Label),
		Line1:      strings.TrimSpace(in.Line1),
		Line2:      strings.TrimSpace(in.Line2),
		City:       strings.TrimSpace(in.City),
		PostalCode: strings.TrimSpace(in.PostalCode),
	}
	if err := s.userRepo.CreateAddress(a); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return a, nil
}
