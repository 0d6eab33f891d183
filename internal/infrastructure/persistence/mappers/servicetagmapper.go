package mappers

import (
	"fmt"

	"github.com/orris-inc/helpdesk/internal/domain/servicetag"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

type ServiceTagMapper interface {
	ToEntity(model *models.ServiceTagModel) (*servicetag.ServiceTag, error)
	ToModel(entity *servicetag.ServiceTag) *models.ServiceTagModel
	ToEntities(models []*models.ServiceTagModel) ([]*servicetag.ServiceTag, error)
}

type ServiceTagMapperImpl struct{}

func NewServiceTagMapper() ServiceTagMapper {
	return &ServiceTagMapperImpl{}
}

func (m *ServiceTagMapperImpl) ToEntity(model *models.ServiceTagModel) (*servicetag.ServiceTag, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := servicetag.ReconstructServiceTag(
		model.ID,
		model.ClientID,
		model.Tag,
		model.Description,
		model.HardwareType,
		model.Location,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct service tag entity: %w", err)
	}
	return entity, nil
}

func (m *ServiceTagMapperImpl) ToModel(entity *servicetag.ServiceTag) *models.ServiceTagModel {
	if entity == nil {
		return nil
	}
	return &models.ServiceTagModel{
		ID:           entity.ID(),
		ClientID:     entity.ClientID(),
		Tag:          entity.Tag(),
		Description:  entity.Description(),
		HardwareType: entity.HardwareType(),
		Location:     entity.Location(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (m *ServiceTagMapperImpl) ToEntities(list []*models.ServiceTagModel) ([]*servicetag.ServiceTag, error) {
	return mapSlice(list, m.ToEntity, func(model *models.ServiceTagModel) string { return model.ID })
}
