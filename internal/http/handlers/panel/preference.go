package panel

import (
	"github.com/cashere-pos/internal/cache"
	"github.com/cashere-pos/internal/http/response"

	"github.com/gin-gonic/gin"
)

// PreferenceRequest 展示偏好请求
type PreferenceRequest struct {
	ShowOrderType    *bool `json:"show_order_type"`
	ShowCustomerName *bool `json:"show_customer_name"`
}

// GetPreferences 获取展示偏好
func (h *Handler) GetPreferences(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	pref, err := cache.GetDisplayPreference(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.preference_failed", err)
		return
	}
	response.Success(c, pref)
}

// UpdatePreferences 更新展示偏好
func (h *Handler) UpdatePreferences(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	var req PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	pref, err := cache.GetDisplayPreference(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.preference_failed", err)
		return
	}
	if req.ShowOrderType != nil {
		pref.ShowOrderType = *req.ShowOrderType
	}
	if req.ShowCustomerName != nil {
		pref.ShowCustomerName = *req.ShowCustomerName
	}
	if err := cache.SetDisplayPreference(c.Request.Context(), ownerID, pref); err != nil {
		respondError(c, response.CodeInternal, "error.preference_failed", err)
		return
	}
	response.Success(c, pref)
}
