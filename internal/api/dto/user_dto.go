package dto

import "time"

type RegisterDTO struct {
	Email    string  `json:"email" binding:"required" validate:"required,email"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Password string  `json:"password" binding:"required" validate:"min=8,max=72"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenDTO struct {
	Token string `json:"token"`
}

type UserDTO struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      *string   `json:"username,omitempty"`
	Roles         []string  `json:"roles"`
	EmailVerified bool      `json:"emailVerified"`
	IsBanned      bool      `json:"isBanned"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ForgotPasswordDTO struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordDTO struct {
	Token    string `json:"token" binding:"required" validate:"required"`
	Password string `json:"password" binding:"required" validate:"min=8,max=72"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required" validate:"min=8,max=72"`
}
