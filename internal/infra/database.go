package infra

import (
	"fmt"

	"github.com/mateoadann/ferrerp/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial unique indexes, pgcrypto for gen_random_uuid).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// gen_random_uuid() needs pgcrypto on Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return nil, fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Producto{},
		&model.Proveedor{},
		&model.Cliente{},
		&model.MovimientoCuentaCorriente{},
		&model.Caja{},
		&model.MovimientoCaja{},
		&model.Venta{},
		&model.VentaDetalle{},
		&model.Presupuesto{},
		&model.PresupuestoDetalle{},
		&model.OrdenCompra{},
		&model.OrdenCompraDetalle{},
		&model.MovimientoStock{},
		&model.Secuencia{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// A lo sumo una caja abierta en todo el sistema. El chequeo previo en
		// el servicio deja una ventana entre SELECT e INSERT; este índice
		// parcial la cierra a nivel base.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_cajas_abierta') THEN
		    CREATE UNIQUE INDEX uni_cajas_abierta ON cajas ((estado)) WHERE estado = 'abierta';
		  END IF;
		END $$`,
		// El barrido de vencimientos sólo mira presupuestos pendientes
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_presupuestos_pendientes_vto') THEN
		    CREATE INDEX idx_presupuestos_pendientes_vto
		        ON presupuestos (fecha_vencimiento)
		        WHERE estado = 'pendiente';
		  END IF;
		END $$`,
		// El stock nunca queda negativo aunque un UPDATE saltee el guard
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_productos_stock_no_negativo') THEN
		    ALTER TABLE productos ADD CONSTRAINT chk_productos_stock_no_negativo CHECK (stock_actual >= 0);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_clientes_saldo_no_negativo') THEN
		    ALTER TABLE clientes ADD CONSTRAINT chk_clientes_saldo_no_negativo CHECK (saldo_cuenta_corriente >= 0);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// RunMigrations applies AutoMigrate plus schema patches for integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Producto{},
		&model.Proveedor{},
		&model.Cliente{},
		&model.MovimientoCuentaCorriente{},
		&model.Caja{},
		&model.MovimientoCaja{},
		&model.Venta{},
		&model.VentaDetalle{},
		&model.Presupuesto{},
		&model.PresupuestoDetalle{},
		&model.OrdenCompra{},
		&model.OrdenCompraDetalle{},
		&model.MovimientoStock{},
		&model.Secuencia{},
	); err != nil {
		return err
	}
	return applySchemaPatches(db)
}
