package handler

import (
	"time"

	"github.com/msomdec/userfile/internal/domain"
)

// UserDTO is the JSON representation of a user. The field names match the
// persisted file format, _id included.
type UserDTO struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       *int   `json:"age,omitempty"`
	Country   string `json:"country"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		Country:   u.Country,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

func toUserDTOs(users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	return dtos
}

// createUserRequest is the POST /users body.
type createUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Age     *int   `json:"age"`
	Country string `json:"country"`
}

// updateUserRequest is the PUT /users/{id} body. Only these four fields are
// mutable; anything else in the body is ignored, so a client cannot overwrite
// _id or createdAt.
type updateUserRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Age     *int    `json:"age"`
	Country *string `json:"country"`
}

func (r updateUserRequest) toPatch() domain.UserUpdate {
	return domain.UserUpdate{
		Name:    r.Name,
		Email:   r.Email,
		Age:     r.Age,
		Country: r.Country,
	}
}
