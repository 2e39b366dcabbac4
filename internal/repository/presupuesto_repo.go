package repository

import (
	"context"
	"time"

	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PresupuestoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Presupuesto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Presupuesto, error)
	FindByToken(ctx context.Context, token string) (*model.Presupuesto, error)
	Update(ctx context.Context, p *model.Presupuesto) error
	ReplaceDetalles(ctx context.Context, tx *gorm.DB, presupuestoID uuid.UUID, detalles []model.PresupuestoDetalle) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, desde, hacia model.EstadoPresupuesto) error
	MarcarVencidos(ctx context.Context, ahora time.Time) (int64, error)
	List(ctx context.Context, filter dto.PresupuestoFilter) ([]model.Presupuesto, int64, error)
	DB() *gorm.DB
}

type presupuestoRepo struct{ db *gorm.DB }

func NewPresupuestoRepository(db *gorm.DB) PresupuestoRepository { return &presupuestoRepo{db: db} }

func (r *presupuestoRepo) DB() *gorm.DB { return r.db }

func (r *presupuestoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Presupuesto) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *presupuestoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Presupuesto, error) {
	var p model.Presupuesto
	err := r.db.WithContext(ctx).Preload("Detalles.Producto").Preload("Cliente").First(&p, id).Error
	return &p, err
}

func (r *presupuestoRepo) FindByToken(ctx context.Context, token string) (*model.Presupuesto, error) {
	var p model.Presupuesto
	err := r.db.WithContext(ctx).Preload("Detalles.Producto").Preload("Cliente").
		Where("token = ?", token).First(&p).Error
	return &p, err
}

func (r *presupuestoRepo) Update(ctx context.Context, p *model.Presupuesto) error {
	return r.db.WithContext(ctx).Omit("Detalles").Save(p).Error
}

// ReplaceDetalles reemplaza el detalle completo. La edición siempre manda
// la lista entera, no hay edición parcial de renglones.
func (r *presupuestoRepo) ReplaceDetalles(ctx context.Context, tx *gorm.DB, presupuestoID uuid.UUID, detalles []model.PresupuestoDetalle) error {
	if err := tx.WithContext(ctx).
		Where("presupuesto_id = ?", presupuestoID).
		Delete(&model.PresupuestoDetalle{}).Error; err != nil {
		return err
	}
	for i := range detalles {
		detalles[i].PresupuestoID = presupuestoID
	}
	return tx.WithContext(ctx).Create(&detalles).Error
}

func (r *presupuestoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, desde, hacia model.EstadoPresupuesto) error {
	res := tx.Model(&model.Presupuesto{}).
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

// MarcarVencidos pasa a vencido todo presupuesto pendiente cuya fecha de
// vencimiento ya pasó. Un solo UPDATE, lo corre el barrido periódico.
func (r *presupuestoRepo) MarcarVencidos(ctx context.Context, ahora time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Presupuesto{}).
		Where("estado = ? AND fecha_vencimiento < ?", model.PresupuestoPendiente, ahora).
		Update("estado", model.PresupuestoVencido)
	return res.RowsAffected, res.Error
}

func (r *presupuestoRepo) List(ctx context.Context, filter dto.PresupuestoFilter) ([]model.Presupuesto, int64, error) {
	var presupuestos []model.Presupuesto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Presupuesto{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Anio > 0 {
		q = q.Where("anio = ?", filter.Anio)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Detalles.Producto").Preload("Cliente").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&presupuestos).Error

	return presupuestos, total, err
}
