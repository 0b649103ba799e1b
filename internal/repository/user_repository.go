package repository

import (
	"errors"
	"time"

	"github.com/mobipos/mobipos/internal/models"

	"gorm.io/gorm"
)

// UserRepository is the user data access interface
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateLastLogin(id uint, at time.Time) error
	BumpTokenVersion(id uint) error
	GetActiveWorkerShop(userID uint) (*models.ShopWorker, error)
	ListWorkersByShop(shopID uint) ([]models.ShopWorker, error)
	CreateWorker(worker *models.ShopWorker) error
	UpdateWorker(worker *models.ShopWorker) error
	WithTx(tx *gorm.DB) UserRepository
}

// GormUserRepository is the GORM implementation
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx binds the repository to a transaction
func (r *GormUserRepository) WithTx(tx *gorm.DB) UserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// GetByID fetches a user by id
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername fetches a user by username
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update saves a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateLastLogin stamps the last login time
func (r *GormUserRepository) UpdateLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_login_at", at).Error
}

// BumpTokenVersion invalidates all outstanding tokens for a user
func (r *GormUserRepository) BumpTokenVersion(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("token_version", gorm.Expr("token_version + 1")).Error
}

// GetActiveWorkerShop fetches the active worker membership for a user.
// A worker belongs to at most one shop.
func (r *GormUserRepository) GetActiveWorkerShop(userID uint) (*models.ShopWorker, error) {
	var worker models.ShopWorker
	if err := r.db.Preload("Shop").
		Where("user_id = ? AND active = ?", userID, true).
		First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &worker, nil
}

// ListWorkersByShop fetches all worker memberships of a shop
func (r *GormUserRepository) ListWorkersByShop(shopID uint) ([]models.ShopWorker, error) {
	var workers []models.ShopWorker
	if err := r.db.Where("shop_id = ?", shopID).Order("id ASC").Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

// CreateWorker inserts a worker membership
func (r *GormUserRepository) CreateWorker(worker *models.ShopWorker) error {
	return r.db.Create(worker).Error
}

// UpdateWorker saves a worker membership
func (r *GormUserRepository) UpdateWorker(worker *models.ShopWorker) error {
	return r.db.Save(worker).Error
}
