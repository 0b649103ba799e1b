package pos

import (
	handlershared "github.com/mobipos/mobipos/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

func getShopID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "shop_id")
}

func getRole(c *gin.Context) string {
	role, _ := handlershared.GetContextString(c, "role")
	return role
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}
