package panel

import (
	"errors"

	"github.com/cashere-pos/internal/http/response"
	"github.com/cashere-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 店主登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.AuthService.Login(service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrCredentialsInvalid) {
			respondError(c, response.CodeUnauthorized, "error.login_failed", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt.Unix(),
		"owner": gin.H{
			"id":           result.Owner.ID,
			"email":        result.Owner.Email,
			"display_name": result.Owner.DisplayName,
			"locale":       result.Owner.Locale,
		},
	})
}

// Me 返回当前登录店主信息
func (h *Handler) Me(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	owner, err := h.UserRepo.GetByID(ownerID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if owner == nil {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	response.Success(c, gin.H{
		"id":           owner.ID,
		"email":        owner.Email,
		"display_name": owner.DisplayName,
		"locale":       owner.Locale,
	})
}
