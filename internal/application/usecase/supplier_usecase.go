package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/application/ports"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	suppliers ports.SupplierGateway
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(suppliers ports.SupplierGateway) *SupplierUseCase {
	return &SupplierUseCase{suppliers: suppliers}
}

func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	created, err := uc.suppliers.CreateSupplier(ctx, entity.Supplier{
		Name:   in.Name,
		TaxID:  in.TaxID,
		Phone:  in.Phone,
		Email:  in.Email,
		Active: true,
	})
	if err != nil {
		return nil, fmt.Errorf("proveedores: crear: %w", err)
	}
	out := dto.ToSupplierResponse(*created)
	return &out, nil
}

func (uc *SupplierUseCase) GetByID(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetSupplier(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("proveedores: obtener %d: %w", id, err)
	}
	out := dto.ToSupplierResponse(*s)
	return &out, nil
}

func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.suppliers.ListSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("proveedores: listar: %w", err)
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSupplierResponse(s))
	}
	return out, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	s, err := uc.suppliers.GetSupplier(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("proveedores: obtener %d: %w", id, err)
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.TaxID != nil {
		s.TaxID = *in.TaxID
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	updated, err := uc.suppliers.UpdateSupplier(ctx, *s)
	if err != nil {
		return nil, fmt.Errorf("proveedores: modificar %d: %w", id, err)
	}
	out := dto.ToSupplierResponse(*updated)
	return &out, nil
}

// Delete baja lógica del proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.suppliers.DeleteSupplier(ctx, id); err != nil {
		return fmt.Errorf("proveedores: baja %d: %w", id, err)
	}
	return nil
}
