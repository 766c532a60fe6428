package repository

import "orderapi/internal/domain/model"

type ClientRepository interface {
	CRUDRepository[model.Client]
}
