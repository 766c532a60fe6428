package repository

import (
	"orderapi/internal/domain/model"

	"gorm.io/gorm"
)

type ClientGormRepository struct {
	softDeleteRepository[model.Client, *model.Client]
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{
		softDeleteRepository: newSoftDeleteRepository[model.Client, *model.Client](db),
	}
}
