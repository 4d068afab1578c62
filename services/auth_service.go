package services

import (
	"errors"
	"time"

	"github.com/MrazzKa/CalorieCam-sub001/config"
	"github.com/MrazzKa/CalorieCam-sub001/logger"
	"github.com/MrazzKa/CalorieCam-sub001/models"
	"github.com/MrazzKa/CalorieCam-sub001/utils"
)

func RegisterUser(email, password, firstName, lastName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return err
	}

	if err := utils.SendWelcomeEmail(email, firstName); err != nil {
		logger.Warn("welcome email failed", "error", err)
	}
	return nil
}

func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return "", errors.New("user not found or disabled")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	return utils.GenerateJWT(user.ID, user.Email)
}

// RequestPasswordReset always reports success to the caller so the
// endpoint doesn't leak which emails exist.
func RequestPasswordReset(email string) {
	var user models.User
	if err := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user).Error; err != nil {
		return
	}

	user.ResetToken = utils.GenerateRandomToken(8)
	user.ResetTokenExpiry = time.Now().Add(30 * time.Minute)
	if err := config.DB.Save(&user).Error; err != nil {
		logger.Warn("reset token save failed", "error", err)
		return
	}

	if err := utils.SendResetEmail(user.Email, user.ResetToken); err != nil {
		logger.Warn("reset email failed", "error", err)
	}
}

func ResetPassword(email, token, newPassword string) error {
	var user models.User
	if err := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user).Error; err != nil {
		return errors.New("invalid reset request")
	}
	if user.ResetToken == "" || user.ResetToken != token || time.Now().After(user.ResetTokenExpiry) {
		return errors.New("invalid or expired reset code")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ResetToken = ""
	return config.DB.Save(&user).Error
}
