// Package gateway declares the ports to the remote shop inventory API. All
// business persistence, stock arithmetic and authorization live behind that
// API; this service only orchestrates form entry on top of it.
package gateway

import (
	"context"

	"github.com/dukahub/reception-api/internal/domain/entity"
)

// InventoryGateway is the boundary to the remote inventory API. Every call
// is scoped to a shop and carries the caller's bearer token in the context.
type InventoryGateway interface {
	ListProducts(ctx context.Context, shopID string) ([]entity.Product, error)
	CreateProduct(ctx context.Context, shopID string, payload *entity.ProductPayload) (*entity.Product, error)

	ListSuppliers(ctx context.Context, shopID string) ([]entity.Supplier, error)
	CreateSupplier(ctx context.Context, shopID string, payload *entity.SupplierPayload) (*entity.Supplier, error)

	ListReceptions(ctx context.Context, shopID string) ([]entity.Reception, error)
	GetReception(ctx context.Context, shopID, receptionID string) (*entity.Reception, error)
	CreateReception(ctx context.Context, shopID string, payload *entity.ReceptionPayload) (*entity.Reception, error)
	UpdateReception(ctx context.Context, shopID, receptionID string, payload *entity.ReceptionPayload) (*entity.Reception, error)
	DeleteReception(ctx context.Context, shopID, receptionID string) error
}
