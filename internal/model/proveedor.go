package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor es un proveedor de mercadería.
type Proveedor struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"index;not null"`
	Cuit          *string   `gorm:"type:varchar(13);uniqueIndex"`
	Telefono      *string   `gorm:"type:varchar(20)"`
	Email         *string   `gorm:"type:varchar(120)"`
	Direccion     *string
	CondicionPago *string `gorm:"type:varchar(50)"`
	Notas         *string
	Activo        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName evita la pluralización en inglés de GORM.
func (Proveedor) TableName() string { return "proveedores" }
