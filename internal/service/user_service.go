package service

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/dto"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService covers the users/roles admin page. actorID is the
// authenticated admin performing the call — used to refuse self-deactivation.
type UserService interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	ChangeRole(ctx context.Context, id uuid.UUID, actorID uuid.UUID, role string) (*dto.UserResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func mapUser(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, fmt.Errorf("%w : rôle inconnu", ErrInvalid)
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, conflict("un compte existe déjà pour cette adresse")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	resp := mapUser(*u)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error) {
	list, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, mapUser(u))
	}
	return out, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := mapUser(*u)
	return &resp, nil
}

func (s *userService) ChangeRole(ctx context.Context, id uuid.UUID, actorID uuid.UUID, role string) (*dto.UserResponse, error) {
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w : rôle inconnu", ErrInvalid)
	}
	// An admin demoting their own account would lock everyone out of user
	// management when they are the last admin; refuse outright.
	if id == actorID && role != model.RoleAdmin {
		return nil, conflict("impossible de rétrograder votre propre compte")
	}

	u, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Role = role
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := mapUser(*u)
	return &resp, nil
}

func (s *userService) Deactivate(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	if id == actorID {
		return conflict("impossible de désactiver votre propre compte")
	}
	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *userService) Reactivate(ctx context.Context, id uuid.UUID) error {
	u, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}
	u.IsActive = true
	return s.repo.Update(ctx, u)
}

func (s *userService) findUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w : utilisateur", ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}
