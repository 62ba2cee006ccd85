package cache

import (
	"context"
	"fmt"
)

// DisplayPreference 收银界面展示偏好
// 不设置过期时间, 偏好与店主长期绑定
type DisplayPreference struct {
	ShowOrderType    bool `json:"show_order_type"`
	ShowCustomerName bool `json:"show_customer_name"`
}

func displayPreferenceKey(ownerID uint) string {
	return fmt.Sprintf("preference:display:%d", ownerID)
}

// DefaultDisplayPreference 默认展示偏好
func DefaultDisplayPreference() *DisplayPreference {
	return &DisplayPreference{
		ShowOrderType:    true,
		ShowCustomerName: true,
	}
}

// GetDisplayPreference 获取店主的展示偏好, 未设置时返回默认值
func GetDisplayPreference(ctx context.Context, ownerID uint) (*DisplayPreference, error) {
	if ownerID == 0 {
		return DefaultDisplayPreference(), nil
	}
	var pref DisplayPreference
	hit, err := GetJSON(ctx, displayPreferenceKey(ownerID), &pref)
	if err != nil {
		return nil, err
	}
	if !hit {
		return DefaultDisplayPreference(), nil
	}
	return &pref, nil
}

// SetDisplayPreference 写入店主的展示偏好
func SetDisplayPreference(ctx context.Context, ownerID uint, pref *DisplayPreference) error {
	if ownerID == 0 || pref == nil {
		return nil
	}
	return SetJSON(ctx, displayPreferenceKey(ownerID), pref, 0)
}
