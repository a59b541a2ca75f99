package dto

import (
	"time"

	"github.com/exeai/exeai/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                 uint64     `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	SubscriptionTier   string     `json:"subscription_tier"`
	SubscriptionStatus string     `json:"subscription_status"`
	TrialEndsAt        *time.Time `json:"trial_ends_at"`
	GmailConnected     bool       `json:"gmail_connected"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		SubscriptionTier:   string(user.SubscriptionTier),
		SubscriptionStatus: user.SubscriptionStatus,
		TrialEndsAt:        user.TrialEndsAt,
		GmailConnected:     user.GmailConnected(),
	}
}
