package model

import (
	"time"

	"github.com/google/uuid"
)

// RolUsuario define los permisos: administrador opera todo (incluye anular
// ventas y cancelar órdenes), vendedor opera el punto de venta.
type RolUsuario string

const (
	RolAdministrador RolUsuario = "administrador"
	RolVendedor      RolUsuario = "vendedor"
)

// Usuario es un operador del sistema.
type Usuario struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null"`
	Nombre       string     `gorm:"not null"`
	Rol          RolUsuario `gorm:"type:varchar(20);not null;default:'vendedor'"`
	Activo       bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
