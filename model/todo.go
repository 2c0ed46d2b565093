// Package model defines database models
package model

type Todo struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Text string `gorm:"not null" json:"text"`

	// Nullable on purpose. Items whose owner was removed on the bot side
	// stay listed as orphans.
	UserID *string `json:"-"`
	User   *User   `gorm:"foreignKey:UserID" json:"-"`
}

func (Todo) TableName() string {
	return "todos_data"
}
