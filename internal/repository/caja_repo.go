package repository

import (
	"context"

	"github.com/mateoadann/ferrerp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CajaRepository interface {
	Create(ctx context.Context, c *model.Caja) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	FindAbierta(ctx context.Context) (*model.Caja, error)
	FindAbiertaTx(tx *gorm.DB) (*model.Caja, error)
	CerrarTx(tx *gorm.DB, id uuid.UUID, cierre model.CierreCaja) error
	CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCaja) error
	ListMovimientos(ctx context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error)
	ListCerradas(ctx context.Context, page, limit int) ([]model.Caja, int64, error)
	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

// Create inserta la sesión. El índice único parcial sobre estado = 'abierta'
// (ver infra.applySchemaPatches) garantiza una sola caja abierta aunque dos
// aperturas lleguen a la vez; la segunda falla con violación de unicidad.
func (r *cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Preload("Movimientos").First(&c, id).Error
	return &c, err
}

func (r *cajaRepo) FindAbierta(ctx context.Context) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Where("estado = ?", model.CajaAbierta).First(&c).Error
	return &c, err
}

// FindAbiertaTx bloquea la sesión abierta con FOR UPDATE y recién entonces
// lee su ledger, de modo que el esperado del arqueo salga de la lista
// definitiva de movimientos.
func (r *cajaRepo) FindAbiertaTx(tx *gorm.DB) (*model.Caja, error) {
	var c model.Caja
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("estado = ?", model.CajaAbierta).First(&c).Error; err != nil {
		return nil, err
	}
	err := tx.Where("caja_id = ?", c.ID).Order("created_at ASC").Find(&c.Movimientos).Error
	return &c, err
}

// CerrarTx asienta el arqueo sólo si la sesión sigue abierta. El segundo de
// dos cierres concurrentes recibe ErrCondicionNoCumplida.
func (r *cajaRepo) CerrarTx(tx *gorm.DB, id uuid.UUID, cierre model.CierreCaja) error {
	values := map[string]interface{}{
		"estado":            model.CajaCerrada,
		"fecha_cierre":      cierre.FechaCierre,
		"usuario_cierre_id": cierre.UsuarioCierreID,
		"monto_esperado":    cierre.MontoEsperado,
		"monto_real":        cierre.MontoReal,
		"diferencia":        cierre.Diferencia,
	}
	if cierre.Observaciones != nil {
		values["observaciones"] = cierre.Observaciones
	}
	res := tx.Model(&model.Caja{}).
		Where("id = ? AND estado = ?", id, model.CajaAbierta).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCondicionNoCumplida
	}
	return nil
}

func (r *cajaRepo) CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).Where("caja_id = ?", cajaID).Order("created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) ListCerradas(ctx context.Context, page, limit int) ([]model.Caja, int64, error) {
	var cajas []model.Caja
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Caja{}).Where("estado = ?", model.CajaCerrada)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("fecha_cierre DESC").Offset(offset).Limit(limit).Find(&cajas).Error
	return cajas, total, err
}
