package panel

import "github.com/cashere-pos/internal/provider"

// Handler 收银面板接口处理器入口
// 说明：所有接口都以店主身份访问, 数据按店主隔离。
type Handler struct {
	*provider.Container
}

// New 创建面板处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
