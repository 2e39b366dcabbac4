package repository

import (
	"context"

	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrdenCompraRepository interface {
	Create(ctx context.Context, tx *gorm.DB, o *model.OrdenCompra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.OrdenCompra, error)
	UpdateDetalleRecibidoTx(tx *gorm.DB, detalleID uuid.UUID, recibido decimal.Decimal) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, desde, hacia model.EstadoOrdenCompra) error
	List(ctx context.Context, filter dto.OrdenCompraFilter) ([]model.OrdenCompra, int64, error)
	DB() *gorm.DB
}

type ordenCompraRepo struct{ db *gorm.DB }

func NewOrdenCompraRepository(db *gorm.DB) OrdenCompraRepository { return &ordenCompraRepo{db: db} }

func (r *ordenCompraRepo) DB() *gorm.DB { return r.db }

func (r *ordenCompraRepo) Create(ctx context.Context, tx *gorm.DB, o *model.OrdenCompra) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *ordenCompraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error) {
	var o model.OrdenCompra
	err := r.db.WithContext(ctx).Preload("Detalles.Producto").Preload("Proveedor").First(&o, id).Error
	return &o, err
}

// FindByIDTx carga la orden con lock de fila para que dos recepciones
// concurrentes de la misma orden serialicen.
func (r *ordenCompraRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.OrdenCompra, error) {
	// El lock aplica a la fila de la orden; los detalles se leen en la
	// query separada del Preload, alcanza con serializar sobre el padre.
	var o model.OrdenCompra
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Detalles").First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenCompraRepo) UpdateDetalleRecibidoTx(tx *gorm.DB, detalleID uuid.UUID, recibido decimal.Decimal) error {
	return tx.Model(&model.OrdenCompraDetalle{}).
		Where("id = ?", detalleID).
		Update("cantidad_recibida", recibido).Error
}

// UpdateEstadoTx cambia el estado sólo desde el estado esperado. Una
// cancelación que pisa una recepción concurrente recibe ErrCondicionNoCumplida
// en lugar de marcar cancelada una orden con mercadería ya ingresada.
func (r *ordenCompraRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, desde, hacia model.EstadoOrdenCompra) error {
	res := tx.Model(&model.OrdenCompra{}).
		Where("id = ? AND estado = ?", id, desde).
		Update("estado", hacia)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCondicionNoCumplida
	}
	return nil
}

func (r *ordenCompraRepo) List(ctx context.Context, filter dto.OrdenCompraFilter) ([]model.OrdenCompra, int64, error) {
	var ordenes []model.OrdenCompra
	var total int64

	q := r.db.WithContext(ctx).Model(&model.OrdenCompra{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ProveedorID != "" {
		q = q.Where("proveedor_id = ?", filter.ProveedorID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Detalles.Producto").Preload("Proveedor").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ordenes).Error

	return ordenes, total, err
}
