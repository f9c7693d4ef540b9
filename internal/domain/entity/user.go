package entity

import "time"

// User is the only persisted record. A zero ID means the user has not been
// saved yet; the database assigns it on first insert.
type User struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewUser(name, email string) *User {
	return &User{
		Name:  name,
		Email: email,
	}
}

func (u *User) IsPersisted() bool {
	return u.ID != 0
}
