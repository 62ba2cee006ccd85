package models

import (
	"strings"

	"github.com/cashere-pos/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultOwner 初始化默认店主账号
// 仅在数据库中没有任何账号时创建，便于首次部署后直接登录。
func InitDefaultOwner(email, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "owner@cashere.local"
	}
	if password == "" {
		password = "cashere123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner := User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		DisplayName:  "Cashere",
	}
	if err := DB.Create(&owner).Error; err != nil {
		return err
	}

	if password == "cashere123" {
		logger.Warnw("default_owner_created_with_default_password", "email", owner.Email)
		logger.Warnw("default_owner_password_change_required", "email", owner.Email)
	} else {
		logger.Warnw("default_owner_created", "email", owner.Email, "password_hidden", true)
	}
	return nil
}
