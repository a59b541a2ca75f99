package models

import (
	"time"

	"gorm.io/gorm"
)

type SubscriptionTier string

const (
	TierFreeTrial SubscriptionTier = "free_trial"
	TierFree      SubscriptionTier = "free"
	TierPro       SubscriptionTier = "pro"
)

type User struct {
	ID                 uint64           `gorm:"primarykey" json:"id"`
	Email              string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash       string           `gorm:"type:varchar(255);not null" json:"-"`
	Name               string           `gorm:"type:varchar(255)" json:"name"`
	SubscriptionTier   SubscriptionTier `gorm:"type:varchar(20);not null;default:'free_trial'" json:"subscription_tier"`
	SubscriptionStatus string           `gorm:"type:varchar(20);not null;default:'active'" json:"subscription_status"`
	TrialEndsAt        *time.Time       `json:"trial_ends_at"`

	// Gmail integration tokens; empty when the account is not connected.
	GmailAddress      string     `gorm:"type:varchar(255)" json:"-"`
	GmailAccessToken  string     `gorm:"type:text" json:"-"`
	GmailRefreshToken string     `gorm:"type:text" json:"-"`
	GmailTokenExpiry  *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Tasks      []Task      `gorm:"foreignKey:UserID" json:"-"`
	Pages      []Page      `gorm:"foreignKey:UserID" json:"-"`
	DailyNotes []DailyNote `gorm:"foreignKey:UserID" json:"-"`
}

// GmailConnected reports whether the user has linked a Gmail account.
func (u *User) GmailConnected() bool {
	return u.GmailRefreshToken != ""
}
