package model

import "time"

// User is keyed by the Telegram chat id handed over by the registration bot,
// so the primary key is a string and never auto-generated here.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"-"`
	LastName     string `json:"-"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Snapshot of the last issued session tokens. Kept for parity with the
	// bot side, the verification path only trusts the signature.
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`

	IsBlocked bool `gorm:"default:false" json:"-"`

	OneTimeToken        *string    `json:"-"`
	OneTimeTokenExpires *time.Time `json:"-"`

	Todos []Todo `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users_data"
}
