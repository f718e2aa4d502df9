package models

import "time"

// Plan tiers.
const (
	PlanFree     = "free"
	PlanPro      = "pro"
	PlanBusiness = "business"
)

// UserModel is an account owning interviews, insights, and themes.
type UserModel struct {
	Base
	Email         string     `json:"email"    gorm:"uniqueIndex;size:255;not null"`
	Password      string     `json:"-"        gorm:"not null"`
	Name          string     `json:"name"`
	AvatarURL     string     `json:"avatar_url"`
	Plan          string     `json:"plan"     gorm:"size:20;default:'free'"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"-"`
}

func (UserModel) TableName() string { return "users" }
