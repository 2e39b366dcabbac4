package repository

import (
	"github.com/mateoadann/ferrerp/internal/model"

	"gorm.io/gorm"
)

// SecuenciaRepository entrega números de documento correlativos. Siguiente
// debe llamarse dentro de la transacción que crea el documento para que un
// rollback descarte también el número.
type SecuenciaRepository interface {
	Siguiente(tx *gorm.DB, alcance model.AlcanceSecuencia, anio int) (int, error)
}

type secuenciaRepo struct{ db *gorm.DB }

func NewSecuenciaRepository(db *gorm.DB) SecuenciaRepository { return &secuenciaRepo{db: db} }

func (r *secuenciaRepo) Siguiente(tx *gorm.DB, alcance model.AlcanceSecuencia, anio int) (int, error) {
	// UPSERT atómico: dos transacciones concurrentes serializan sobre la
	// fila contadora y reciben números distintos.
	var num int
	err := tx.Raw(`
		INSERT INTO secuencias (alcance, anio, ultimo_numero)
		VALUES (?, ?, 1)
		ON CONFLICT (alcance, anio)
		DO UPDATE SET ultimo_numero = secuencias.ultimo_numero + 1
		RETURNING ultimo_numero`, alcance, anio).Scan(&num).Error
	return num, err
}
