package brawler

import "errors"

var (
	ErrBrawlerNotFound       = errors.New("brawler not found")
	ErrUsernameTaken         = errors.New("username already taken")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrInvalidInput          = errors.New("username, password and display name are required")
	ErrInvalidImage          = errors.New("image must be a base64 encoded picture")
	ErrUploaderNotConfigured = errors.New("image upload is not configured")
)
