package panel

import (
	handlershared "github.com/cashere-pos/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getOwnerID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "owner_id", "error.owner_id_invalid", "error.owner_id_type_invalid")
}
