package repository

import (
	"context"

	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClienteRepository administra clientes y su cuenta corriente. El saldo
// vive desnormalizado en la fila del cliente; los movimientos son el
// historial inmutable.
type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error)
	Update(ctx context.Context, c *model.Cliente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// CargarSaldoTx incrementa el saldo sólo si el resultado no supera el
	// límite de crédito y el límite es positivo. Devuelve el saldo
	// posterior; ErrCondicionNoCumplida si la guarda falló.
	CargarSaldoTx(tx *gorm.DB, id uuid.UUID, monto decimal.Decimal) (decimal.Decimal, error)

	// PagarSaldoTx decrementa el saldo sin dejarlo negativo.
	PagarSaldoTx(tx *gorm.DB, id uuid.UUID, monto decimal.Decimal) (decimal.Decimal, error)

	CreateMovimientoCC(ctx context.Context, tx *gorm.DB, m *model.MovimientoCuentaCorriente) error
	ListMovimientosCC(ctx context.Context, clienteID uuid.UUID) ([]model.MovimientoCuentaCorriente, error)

	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) DB() *gorm.DB { return r.db }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var clientes []model.Cliente
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cliente{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
	default:
		q = q.Where("activo = true")
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.ConDeuda {
		q = q.Where("saldo_cuenta_corriente > 0")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&clientes).Error
	return clientes, total, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *clienteRepo) CargarSaldoTx(tx *gorm.DB, id uuid.UUID, monto decimal.Decimal) (decimal.Decimal, error) {
	// Misma técnica que el ajuste de stock: la guarda en el WHERE evita
	// que dos cargos concurrentes superen el límite entre el check y el set.
	var posterior decimal.Decimal
	res := tx.Raw(`
		UPDATE clientes
		SET saldo_cuenta_corriente = saldo_cuenta_corriente + ?, updated_at = NOW()
		WHERE id = ? AND limite_credito > 0
		  AND saldo_cuenta_corriente + ? <= limite_credito
		RETURNING saldo_cuenta_corriente`, monto, id, monto).Scan(&posterior)
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, ErrCondicionNoCumplida
	}
	return posterior, nil
}

func (r *clienteRepo) PagarSaldoTx(tx *gorm.DB, id uuid.UUID, monto decimal.Decimal) (decimal.Decimal, error) {
	var posterior decimal.Decimal
	res := tx.Raw(`
		UPDATE clientes
		SET saldo_cuenta_corriente = saldo_cuenta_corriente - ?, updated_at = NOW()
		WHERE id = ? AND saldo_cuenta_corriente - ? >= 0
		RETURNING saldo_cuenta_corriente`, monto, id, monto).Scan(&posterior)
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, ErrCondicionNoCumplida
	}
	return posterior, nil
}

func (r *clienteRepo) CreateMovimientoCC(ctx context.Context, tx *gorm.DB, m *model.MovimientoCuentaCorriente) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *clienteRepo) ListMovimientosCC(ctx context.Context, clienteID uuid.UUID) ([]model.MovimientoCuentaCorriente, error) {
	var movs []model.MovimientoCuentaCorriente
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("created_at DESC").Find(&movs).Error
	return movs, err
}
