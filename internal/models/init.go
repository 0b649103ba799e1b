package models

import (
	"github.com/mobipos/mobipos/internal/constants"
	"github.com/mobipos/mobipos/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultOwner seeds the first owner account and a shop for it
// when the users table is empty
func InitDefaultOwner(username, password, shopName string) error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "owner"
	}
	if password == "" {
		password = "owner123"
	}
	if shopName == "" {
		shopName = "Main Shop"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner := User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "Shop Owner",
		Role:         constants.RoleOwner,
		Status:       constants.UserStatusActive,
	}
	if err := DB.Create(&owner).Error; err != nil {
		return err
	}

	shop := Shop{
		Name:    shopName,
		OwnerID: owner.ID,
	}
	if err := DB.Create(&shop).Error; err != nil {
		return err
	}

	if password == "owner123" {
		logger.Warnw("default_owner_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_owner_password_change_required", "username", username)
	} else {
		logger.Warnw("default_owner_created", "username", username, "password_hidden", true)
	}

	return nil
}
