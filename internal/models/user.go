// Package models holds the typed shapes exchanged with the DamageSnap API.
package models

// User is the account returned by the auth endpoints.
type User struct {
	ID        Ref       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

// UserCreate is the registration payload.
type UserCreate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLogin is the login payload.
type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// StatusMessage is the acknowledgement body several mutating endpoints
// return (like, join, set-ai-server).
type StatusMessage struct {
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
}
