package admin

import (
	"errors"

	"github.com/mobipos/mobipos/internal/http/response"
	"github.com/mobipos/mobipos/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkerRequest creates a counter worker account
type WorkerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// WorkerActiveRequest flips a worker assignment on or off
type WorkerActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ListWorkers lists the shop's workers
func (h *Handler) ListWorkers(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	workers, err := h.StaffService.ListWorkers(shopID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list workers", err)
		return
	}
	response.Success(c, workers)
}

// CreateWorker creates a worker account assigned to the shop
func (h *Handler) CreateWorker(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req WorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "username and password are required", err)
		return
	}

	user, err := h.StaffService.CreateWorker(shopID, service.CreateWorkerInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			respondError(c, response.CodeConflict, "username already exists", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeBadRequest, "username is required", nil)
		default:
			respondError(c, response.CodeInternal, "failed to create worker", err)
		}
		return
	}
	response.Success(c, user)
}

// SetWorkerActive enables or disables a worker assignment. Disabling
// also revokes the worker's outstanding tokens.
func (h *Handler) SetWorkerActive(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req WorkerActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		respondError(c, response.CodeBadRequest, "active is required", err)
		return
	}

	worker, err := h.StaffService.SetWorkerActive(shopID, id, *req.Active)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "worker not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update worker", err)
		return
	}
	response.Success(c, worker)
}
