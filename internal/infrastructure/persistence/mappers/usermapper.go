package mappers

import (
	"fmt"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between user mirror rows and entities.
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create email value object: %w", err)
	}

	role, err := permission.ParseRole(model.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to parse role: %w", err)
	}

	entity, err := user.ReconstructUser(
		model.ID,
		email,
		model.Name,
		role,
		model.ClientID,
		model.Disabled,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}
	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:        entity.ID(),
		Email:     entity.Email().String(),
		Name:      entity.Name(),
		Role:      entity.Role().String(),
		ClientID:  entity.ClientID(),
		Disabled:  entity.IsDisabled(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *UserMapperImpl) ToEntities(list []*models.UserModel) ([]*user.User, error) {
	return mapSlice(list, m.ToEntity, func(model *models.UserModel) string { return model.ID })
}
