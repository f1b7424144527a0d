package models

import (
	"time"
)

type User struct {
	ID                      string
	Username                string
	Email                   string
	PasswordHash            string // empty for code-authenticated accounts
	IsAdmin                 bool
	VerificationCode        *string
	VerificationCodeExpires *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
