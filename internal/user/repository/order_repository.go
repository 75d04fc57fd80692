package repository

import (
	"context"
	"errors"

	"social_network_service/internal/user/domain"
	errprocess "social_network_service/pkg/err"

	"gorm.io/gorm"
)

// OrderRepository 註冊單, 核准後刪除
type OrderRepository interface {
	AutoMigrate() error
	Create(ctx context.Context, order *domain.RegistrationOrder) error
	GetByID(ctx context.Context, id string) (*domain.RegistrationOrder, error)
	List(ctx context.Context) ([]domain.RegistrationOrder, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository create OrderRepository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// AutoMigrate 建立 registration_orders table
func (r *orderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.RegistrationOrder{})
}

func (r *orderRepository) Create(ctx context.Context, order *domain.RegistrationOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.RegistrationOrder, error) {
	var o domain.RegistrationOrder
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errprocess.Wrap(errprocess.ErrNotFound, "order %s", id)
		}
		return nil, err
	}
	return &o, nil
}

// List 新的在前
func (r *orderRepository) List(ctx context.Context) ([]domain.RegistrationOrder, error) {
	var orders []domain.RegistrationOrder
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.RegistrationOrder{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.RegistrationOrder{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errprocess.Wrap(errprocess.ErrNotFound, "order %s", id)
	}
	return nil
}
