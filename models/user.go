package models

import (
	"context"
	"errors"
	"time"

	"github.com/tiktrack/tiktrack_backend/config"
	"github.com/tiktrack/tiktrack_backend/utils"
	"gorm.io/gorm"
)

type User struct {
	ID             int       `gorm:"primary_key" json:"id"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	db := config.GetDB()
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUser(ctx context.Context, id int) (*User, error) {
	var user User
	db := config.GetDB()
	err := db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and issues a bearer token. Wrong email and
// wrong password are indistinguishable to the caller.
func Login(ctx context.Context, input *LoginInput) (string, error) {
	user, err := GetUserByEmail(ctx, input.Email)
	if err != nil {
		if utils.KindOf(err) == utils.ErrorKindNotFound {
			return "", utils.NewAuthorizationError("incorrect email or password")
		}
		return "", err
	}
	if err := utils.ComparePassword(user.HashedPassword, input.Password); err != nil {
		return "", utils.NewAuthorizationError("incorrect email or password")
	}
	return utils.JwtGenerate(user.ID, user.Email)
}

// ChangePassword rotates the credential after verifying the old one.
func ChangePassword(ctx context.Context, userId int, input *ChangePasswordInput) error {
	user, err := GetUser(ctx, userId)
	if err != nil {
		return err
	}
	if err := utils.ComparePassword(user.HashedPassword, input.OldPassword); err != nil {
		return utils.NewValidationError("incorrect old password")
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	db := config.GetDB()
	return db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", user.ID).
		Update("hashed_password", string(hashed)).Error
}

// SeedUser creates the user if the email is not taken yet. Used on startup
// for bootstrap accounts.
func SeedUser(ctx context.Context, email, password string) error {
	_, err := GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if utils.KindOf(err) != utils.ErrorKindNotFound {
		return err
	}

	hashed, herr := utils.HashPassword(password)
	if herr != nil {
		return herr
	}
	db := config.GetDB()
	return db.WithContext(ctx).Create(&User{Email: email, HashedPassword: string(hashed)}).Error
}
