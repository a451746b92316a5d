package catalog

import "CartPilot/entity"

type Core interface {
	Products() []entity.Product
	Stores() []entity.Store
}
