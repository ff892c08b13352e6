// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/penshort/userlinks/internal/model"

// UserRequest is the body of POST /users and PUT /user/{id}.
// A nil field was not sent by the client.
type UserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserListResponse wraps a list of users.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// SuccessResponse is the envelope for successful mutations.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// MessageData carries a human readable confirmation.
type MessageData struct {
	Message string `json:"message"`
}

// LoginData is returned after a successful login.
type LoginData struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HomeResponse is the payload of GET /.
type HomeResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

// Success wraps data in the success envelope.
func Success(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// ToUserListResponse converts users to a list response. The list is never nil.
func ToUserListResponse(users []model.User) UserListResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return UserListResponse{Users: out}
}
