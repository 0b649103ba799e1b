package service

import (
	"context"
	"strings"

	"github.com/mobipos/mobipos/internal/authz"
	"github.com/mobipos/mobipos/internal/cache"
	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/logger"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/repository"
)

// WorkerEntry is one worker row with its account detail
type WorkerEntry struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Status   string `json:"status"`
	Active   bool   `json:"active"`
}

// CreateWorkerInput is the payload for a new counter worker
type CreateWorkerInput struct {
	Username string
	Password string
	FullName string
	Phone    string
}

// StaffService manages counter worker accounts for a shop owner
type StaffService struct {
	userRepo     repository.UserRepository
	authService  *AuthService
	authzService *authz.Service
}

// NewStaffService creates a staff service
func NewStaffService(userRepo repository.UserRepository, authService *AuthService, authzService *authz.Service) *StaffService {
	return &StaffService{
		userRepo:     userRepo,
		authService:  authService,
		authzService: authzService,
	}
}

// ListWorkers lists the workers assigned to a shop
func (s *StaffService) ListWorkers(shopID uint) ([]WorkerEntry, error) {
	workers, err := s.userRepo.ListWorkersByShop(shopID)
	if err != nil {
		return nil, err
	}
	entries := make([]WorkerEntry, 0, len(workers))
	for _, w := range workers {
		entry := WorkerEntry{
			ID:     w.ID,
			UserID: w.UserID,
			Active: w.Active,
		}
		user, err := s.userRepo.GetByID(w.UserID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			entry.Username = user.Username
			entry.FullName = user.FullName
			entry.Phone = user.Phone
			entry.Status = user.Status
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// CreateWorker creates a worker account and assigns it to the shop
func (s *StaffService) CreateWorker(shopID uint, input CreateWorkerInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrInvalidCredentials
	}
	if err := s.authService.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := s.authService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         constants.RoleWorker,
		Status:       constants.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.CreateWorker(&models.ShopWorker{
		UserID: user.ID,
		ShopID: shopID,
		Active: true,
	}); err != nil {
		return nil, err
	}

	if s.authzService != nil {
		if err := s.authzService.AssignAccountRole(user.ID, constants.RoleWorker); err != nil {
			logger.Warnw("staff_assign_worker_role_failed", "user_id", user.ID, "error", err)
		}
	}
	return user, nil
}

// SetWorkerActive flips a worker assignment on or off. Deactivated
// workers keep their account but can no longer resolve a shop.
func (s *StaffService) SetWorkerActive(shopID, workerID uint, active bool) (*models.ShopWorker, error) {
	workers, err := s.userRepo.ListWorkersByShop(shopID)
	if err != nil {
		return nil, err
	}
	for i := range workers {
		if workers[i].ID != workerID {
			continue
		}
		worker := &workers[i]
		if worker.Active == active {
			return worker, nil
		}
		worker.Active = active
		if err := s.userRepo.UpdateWorker(worker); err != nil {
			return nil, err
		}
		if !active {
			// cut outstanding sessions once the assignment is gone
			if err := s.userRepo.BumpTokenVersion(worker.UserID); err != nil {
				return nil, err
			}
			_ = cache.DelUserAuthState(context.Background(), worker.UserID)
		}
		return worker, nil
	}
	return nil, ErrUserNotFound
}
