package domain

import (
	"errors"
)

var (
	MessageSuccessRegister      = "user registered successfully"
	MessageSuccessLogin         = "login success"
	MessageSuccessGetProfile    = "success get profile"
	MessageSuccessUpdateProfile = "profile updated successfully"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedGetProfile    = "failed to get profile"
	MessageFailedUpdateProfile = "failed to update profile"

	ErrEmailRequired      = errors.New("email must be provided")
	ErrEmailInvalid       = errors.New("email address is not valid")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrPasswordTooShort   = errors.New("password must be at least 5 characters")
	ErrCredentialsInvalid = errors.New("unable to authenticate with provided credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrSuperuserFlags     = errors.New("superuser must have is_staff=true and is_superuser=true")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=5"`
		Name     string `json:"name"`
	}

	CreateSuperuserRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=5"`
		Name     string `json:"name"`

		// Optional overrides; rejected unless both resolve to true.
		IsStaff     *bool `json:"is_staff,omitempty"`
		IsSuperuser *bool `json:"is_superuser,omitempty"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UpdateProfileRequest struct {
		Name     *string `json:"name"`
		Password *string `json:"password" validate:"omitempty,min=5"`
	}

	UserResponse struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}
)
