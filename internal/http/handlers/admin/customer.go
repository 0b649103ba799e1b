package admin

import (
	"errors"

	"github.com/mobipos/mobipos/internal/http/response"
	"github.com/mobipos/mobipos/internal/repository"
	"github.com/mobipos/mobipos/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerRequest carries customer create/update fields
type CustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	CNIC    string `json:"cnic"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// ListCustomers lists the customer book
func (h *Handler) ListCustomers(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	page, pageSize := getPagination(c)

	customers, total, err := h.CustomerService.List(repository.CustomerListFilter{
		Page:     page,
		PageSize: pageSize,
		ShopID:   shopID,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list customers", err)
		return
	}
	response.SuccessWithPage(c, customers, pageMeta(page, pageSize, total))
}

// GetCustomer returns one customer
func (h *Handler) GetCustomer(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	customer, err := h.CustomerService.Get(shopID, id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(c, response.CodeNotFound, "customer not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load customer", err)
		return
	}
	response.Success(c, customer)
}

// CreateCustomer adds a customer
func (h *Handler) CreateCustomer(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		respondError(c, response.CodeBadRequest, "name is required", err)
		return
	}

	customer, err := h.CustomerService.Create(service.UpsertCustomerInput{
		ShopID:  shopID,
		Name:    req.Name,
		Phone:   req.Phone,
		CNIC:    req.CNIC,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to create customer", err)
		return
	}
	response.Success(c, customer)
}

// UpdateCustomer rewrites a customer
func (h *Handler) UpdateCustomer(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid customer payload", err)
		return
	}

	customer, err := h.CustomerService.Update(id, service.UpsertCustomerInput{
		ShopID:  shopID,
		Name:    req.Name,
		Phone:   req.Phone,
		CNIC:    req.CNIC,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(c, response.CodeNotFound, "customer not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update customer", err)
		return
	}
	response.Success(c, customer)
}

// DeleteCustomer removes a customer
func (h *Handler) DeleteCustomer(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CustomerService.Delete(shopID, id); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(c, response.CodeNotFound, "customer not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete customer", err)
		return
	}
	response.SuccessWithMsg(c, "customer deleted", nil)
}
