package service

import (
	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"
)

// ShopResolver maps an authenticated staff user to the shop every
// request operates on. Owners land on their oldest shop, workers on
// the shop of their active membership.
type ShopResolver struct {
	shopRepo repository.ShopRepository
	userRepo repository.UserRepository
}

// NewShopResolver creates a shop resolver
func NewShopResolver(shopRepo repository.ShopRepository, userRepo repository.UserRepository) *ShopResolver {
	return &ShopResolver{
		shopRepo: shopRepo,
		userRepo: userRepo,
	}
}

// Resolve determines the operating shop for a user
func (s *ShopResolver) Resolve(userID uint, role string) (*models.Shop, error) {
	switch role {
	case constants.RoleOwner:
		shop, err := s.shopRepo.FirstByOwner(userID)
		if err != nil {
			return nil, err
		}
		if shop == nil {
			return nil, ErrNoShopForUser
		}
		return shop, nil
	case constants.RoleWorker:
		worker, err := s.userRepo.GetActiveWorkerShop(userID)
		if err != nil {
			return nil, err
		}
		if worker == nil || worker.Shop == nil {
			return nil, ErrNoShopForUser
		}
		return worker.Shop, nil
	default:
		return nil, ErrNoShopForUser
	}
}

// ResolveByID checks that a user may operate a specific shop
func (s *ShopResolver) ResolveByID(userID uint, role string, shopID uint) (*models.Shop, error) {
	switch role {
	case constants.RoleOwner:
		shop, err := s.shopRepo.GetByID(shopID)
		if err != nil {
			return nil, err
		}
		if shop == nil || shop.OwnerID != userID {
			return nil, ErrNoShopForUser
		}
		return shop, nil
	case constants.RoleWorker:
		worker, err := s.userRepo.GetActiveWorkerShop(userID)
		if err != nil {
			return nil, err
		}
		if worker == nil || worker.ShopID != shopID || worker.Shop == nil {
			return nil, ErrNoShopForUser
		}
		return worker.Shop, nil
	default:
		return nil, ErrNoShopForUser
	}
}
