package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessRegister        = "user registered successfully"
	MessageSuccessLogin           = "login success"
	MessageSuccessGetMe           = "success get profile"
	MessageSuccessUpdateUser      = "profile updated successfully"
	MessageSuccessVerifyEmail     = "email verified successfully"
	MessageSuccessSendVerifyEmail = "verification email sent"
	MessageSuccessSubscribe       = "subscribed to author"
	MessageSuccessUnsubscribe     = "unsubscribed from author"

	MessageFailedRegister        = "failed to register user"
	MessageFailedLogin           = "failed to login"
	MessageFailedGetMe           = "failed to get profile"
	MessageFailedUpdateUser      = "failed to update profile"
	MessageFailedVerifyEmail     = "failed to verify email"
	MessageFailedSendVerifyEmail = "failed to send verification email"
	MessageFailedSubscribe       = "failed to subscribe to author"
	MessageFailedUnsubscribe     = "failed to unsubscribe from author"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrSubscribeSelf      = errors.New("cannot subscribe to yourself")
)

type (
	RegisterRequest struct {
		Username  string `json:"username" form:"username" validate:"required,min=3,max=30"`
		Email     string `json:"email" form:"email" validate:"required,email"`
		Password  string `json:"password" form:"password" validate:"required,min=8"`
		FirstName string `json:"first_name" form:"first_name"`
		LastName  string `json:"last_name" form:"last_name"`
	}

	LoginRequest struct {
		Email    string `json:"email" form:"email" validate:"required,email"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateUserRequest struct {
		FirstName string                `json:"first_name" form:"first_name"`
		LastName  string                `json:"last_name" form:"last_name"`
		Avatar    *multipart.FileHeader `json:"-" form:"avatar"`
	}

	SubscribeRequest struct {
		AuthorID string `json:"author_id" validate:"required,uuid"`
	}

	// Author is the public projection of a user joined onto recipe data. It
	// deliberately omits email, password and account flags.
	Author struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"first_name,omitempty"`
		LastName  string `json:"last_name,omitempty"`
		AvatarURL string `json:"avatar_url,omitempty"`
	}

	Profile struct {
		Author
		Email      string `json:"email"`
		IsPremium  bool   `json:"is_premium"`
		IsVerified bool   `json:"is_verified"`
	}
)
