package mappers

import (
	"fmt"

	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

// ClientMapper converts between client entities and rows.
type ClientMapper interface {
	ToEntity(model *models.ClientModel) (*client.Client, error)
	ToModel(entity *client.Client) *models.ClientModel
	ToEntities(models []*models.ClientModel) ([]*client.Client, error)
}

type ClientMapperImpl struct{}

func NewClientMapper() ClientMapper {
	return &ClientMapperImpl{}
}

func (m *ClientMapperImpl) ToEntity(model *models.ClientModel) (*client.Client, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := client.ReconstructClient(
		model.ID,
		model.ContactName,
		model.CompanyName,
		model.Email,
		model.Phone,
		model.Address,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct client entity: %w", err)
	}
	return entity, nil
}

func (m *ClientMapperImpl) ToModel(entity *client.Client) *models.ClientModel {
	if entity == nil {
		return nil
	}
	return &models.ClientModel{
		ID:          entity.ID(),
		ContactName: entity.ContactName(),
		CompanyName: entity.CompanyName(),
		Email:       entity.Email(),
		Phone:       entity.Phone(),
		Address:     entity.Address(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (m *ClientMapperImpl) ToEntities(list []*models.ClientModel) ([]*client.Client, error) {
	return mapSlice(list, m.ToEntity, func(model *models.ClientModel) string { return model.ID })
}
