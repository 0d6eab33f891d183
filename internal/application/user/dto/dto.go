package dto

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/user"
)

type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ClientID  *string   `json:"client_id"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StaffMemberDTO is the trimmed shape used by assignee pickers.
type StaffMemberDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type TokenPairDTO struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	User         *UserDTO `json:"user,omitempty"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID(),
		Email:     u.Email().String(),
		Name:      u.Name(),
		Role:      u.Role().String(),
		ClientID:  u.ClientID(),
		Disabled:  u.IsDisabled(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func ToUserDTOs(users []*user.User) []*UserDTO {
	out := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}

func ToStaffMemberDTO(u *user.User) StaffMemberDTO {
	return StaffMemberDTO{ID: u.ID(), Name: u.Name(), Role: u.Role().String()}
}
