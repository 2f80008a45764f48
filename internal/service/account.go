package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/orderdesk/order-api/internal/models"
	"github.com/orderdesk/order-api/internal/repo"
	"github.com/orderdesk/order-api/internal/transport"
)

type AccountService struct {
	Repo *repo.AccountRepo
}

func (s *AccountService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *AccountService) ListUsers(ctx context.Context, limit, offset int) (int64, []models.User, error) {
	return s.Repo.ListUsers(ctx, limit, offset)
}

func (s *AccountService) CreateUser(ctx context.Context, req transport.CreateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: full_name required", ErrValidation)
	}
	if !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
	}
	if _, err := s.Repo.CreateUser(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("%w: email already exists", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}
