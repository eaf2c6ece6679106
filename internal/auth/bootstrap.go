package auth

import (
	"fmt"

	"bidtrack/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EnsureAdmin creates the bootstrap admin account when the user table is
// empty. An empty password leaves the table untouched so that a fresh
// deployment without ADMIN_PASSWORD stays read-only.
func EnsureAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		logrus.Warn("no admin account exists and ADMIN_PASSWORD is unset; mutating endpoints will be unusable")
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logrus.Infof("✓ Bootstrap admin user %q created", username)
	return nil
}
