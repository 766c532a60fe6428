package repository

import "orderapi/internal/domain/model"

type CategoryRepository interface {
	CRUDRepository[model.Category]
}
