package dto

import "time"

// RefreshRequest identifies whose refresh token cookie should be validated.
type RefreshRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// AuthResponse is returned on successful login or token refresh.
// The refresh token itself travels in an HTTP-only cookie, not in the body.
type AuthResponse struct {
	AccessToken          string       `json:"accessToken"`
	AccessTokenExpiresAt time.Time    `json:"accessTokenExpiresAt"`
	User                 UserResponse `json:"user"`
}
