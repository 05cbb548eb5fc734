package domain

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"column:full_name" json:"full_name"`
	Email     string    `gorm:"column:email;unique" json:"email"`
	Age       int       `gorm:"column:age" json:"age"`
	Gender    string    `gorm:"column:gender" json:"gender"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
