package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/orderdesk/order-api/internal/models"
)

type AccountRepo struct {
	DB *gorm.DB
}

func (r *AccountRepo) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user := models.User{}
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AccountRepo) ListUsers(ctx context.Context, limit, offset int) (int64, []models.User, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.User
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *AccountRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
