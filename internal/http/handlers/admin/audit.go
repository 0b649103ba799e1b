package admin

import (
	"github.com/mobipos/mobipos/internal/http/response"
	"github.com/mobipos/mobipos/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs lists the audit trail
func (h *Handler) ListAuditLogs(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	page, pageSize := getPagination(c)

	logs, total, err := h.AuditLogRepo.List(repository.AuditLogListFilter{
		Page:       page,
		PageSize:   pageSize,
		ShopID:     shopID,
		UserID:     parseUintQuery(c, "user_id"),
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
		DateFrom:   parseDateQuery(c, "date_from"),
		DateTo:     parseDateQuery(c, "date_to"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list audit logs", err)
		return
	}
	response.SuccessWithPage(c, logs, pageMeta(page, pageSize, total))
}
