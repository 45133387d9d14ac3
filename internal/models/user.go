package models

import "gastos/internal/credential"

// User represents a registered account holder. The password hash and salt
// never leave the server.
type User struct {
	Base
	Username     string        `gorm:"size:20;uniqueIndex;not null" json:"username"`
	PasswordHash string        `gorm:"size:64;not null" json:"-"`
	PasswordSalt string        `gorm:"size:32;not null" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}

// Credential returns the stored login secret of the user.
func (u *User) Credential() *credential.Credential {
	return &credential.Credential{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		PasswordSalt: u.PasswordSalt,
	}
}
