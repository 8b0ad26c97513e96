package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/nazhanhafiz/psikometrik/internal/dto"
	"github.com/nazhanhafiz/psikometrik/internal/repository"
	"github.com/rs/zerolog/log"
)

// AccountService covers admin user management.
type AccountService interface {
	ListUsers() ([]dto.UserDTO, error)
	GetUser(id uint) (*dto.UserDTO, error)
	UpdateUser(id uint, req dto.UserUpdateDTO) (*dto.UserDTO, error)
}

type accountService struct {
	userRepo repository.UserRepository
}

func NewAccountService(userRepo repository.UserRepository) AccountService {
	return &accountService{userRepo: userRepo}
}

func (s *accountService) ListUsers() ([]dto.UserDTO, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}
	var dtos []dto.UserDTO
	for i := range users {
		var u dto.UserDTO
		if err := copier.Copy(&u, &users[i]); err != nil {
			log.Error().Err(err).Uint("userID", users[i].ID).Msg("Failed to copy user to DTO")
			continue
		}
		dtos = append(dtos, u)
	}
	return dtos, nil
}

func (s *accountService) GetUser(id uint) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("user not found with ID %d: %w", id, err)
	}
	var u dto.UserDTO
	if err := copier.Copy(&u, user); err != nil {
		return nil, fmt.Errorf("error preparing user response: %w", err)
	}
	return &u, nil
}

func (s *accountService) UpdateUser(id uint, req dto.UserUpdateDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("user not found with ID %d: %w", id, err)
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Plan != "" {
		user.Plan = req.Plan
	}
	if req.PlanExpiresAt != nil {
		user.PlanExpiresAt = req.PlanExpiresAt
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return s.GetUser(id)
}
