package client

import (
	clientuc "github.com/orris-inc/helpdesk/internal/application/client/usecases"
	taguc "github.com/orris-inc/helpdesk/internal/application/servicetag/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
)

type CreateClientRequest struct {
	ContactName string `json:"contact_name" binding:"required,notblank,max=100"`
	CompanyName string `json:"company_name" binding:"required,notblank,max=200"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"max=50"`
	Address     string `json:"address" binding:"max=500"`
}

func (r *CreateClientRequest) ToCommand(caller *permission.Principal) clientuc.CreateClientCommand {
	return clientuc.CreateClientCommand{
		Caller:      caller,
		ContactName: r.ContactName,
		CompanyName: r.CompanyName,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
	}
}

type UpdateClientRequest struct {
	ContactName *string `json:"contact_name" binding:"omitempty,notblank,max=100"`
	CompanyName *string `json:"company_name" binding:"omitempty,notblank,max=200"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
}

func (r *UpdateClientRequest) ToCommand(caller *permission.Principal, clientID string) clientuc.UpdateClientCommand {
	return clientuc.UpdateClientCommand{
		Caller:      caller,
		ClientID:    clientID,
		ContactName: r.ContactName,
		CompanyName: r.CompanyName,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
	}
}

type CreateServiceTagRequest struct {
	ClientID     string `json:"client_id" binding:"required,uuid"`
	Tag          string `json:"tag" binding:"required,notblank,max=100"`
	Description  string `json:"description" binding:"max=1000"`
	HardwareType string `json:"hardware_type" binding:"max=100"`
	Location     string `json:"location" binding:"max=200"`
}

func (r *CreateServiceTagRequest) ToCommand(caller *permission.Principal) taguc.CreateServiceTagCommand {
	return taguc.CreateServiceTagCommand{
		Caller:       caller,
		ClientID:     r.ClientID,
		Tag:          r.Tag,
		Description:  r.Description,
		HardwareType: r.HardwareType,
		Location:     r.Location,
	}
}

// UpdateServiceTagRequest cannot move a tag to another client.
type UpdateServiceTagRequest struct {
	Tag          *string `json:"tag" binding:"omitempty,notblank,max=100"`
	Description  *string `json:"description" binding:"omitempty,max=1000"`
	HardwareType *string `json:"hardware_type" binding:"omitempty,max=100"`
	Location     *string `json:"location" binding:"omitempty,max=200"`
}

func (r *UpdateServiceTagRequest) ToCommand(caller *permission.Principal, tagID string) taguc.UpdateServiceTagCommand {
	return taguc.UpdateServiceTagCommand{
		Caller:       caller,
		ServiceTagID: tagID,
		Tag:          r.Tag,
		Description:  r.Description,
		HardwareType: r.HardwareType,
		Location:     r.Location,
	}
}
