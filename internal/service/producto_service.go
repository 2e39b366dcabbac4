package service

import (
	"context"

	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/model"
	"github.com/mateoadann/ferrerp/internal/repository"

	"github.com/google/uuid"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if req.PrecioCosto.IsNegative() || req.PrecioVenta.IsNegative() {
		return nil, ErrMontoInvalido("los precios no pueden ser negativos")
	}
	if req.StockActual.IsNegative() || req.StockMinimo.IsNegative() {
		return nil, ErrMontoInvalido("el stock no puede ser negativo")
	}

	p := &model.Producto{
		Codigo:       req.Codigo,
		CodigoBarras: req.CodigoBarras,
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Categoria:    req.Categoria,
		PrecioCosto:  req.PrecioCosto,
		PrecioVenta:  req.PrecioVenta,
		StockActual:  req.StockActual,
		StockMinimo:  req.StockMinimo,
		Ubicacion:    req.Ubicacion,
		Activo:       true,
	}
	if req.UnidadMedida != "" {
		p.UnidadMedida = req.UnidadMedida
	} else {
		p.UnidadMedida = "unidad"
	}
	if req.ProveedorID != nil && *req.ProveedorID != "" {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, ErrValidacion("proveedor_id inválido")
		}
		p.ProveedorID = &pid
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, ErrDuplicado("ya existe un producto con ese código")
	}
	return productoToResponse(p), nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado("producto")
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, ErrNoEncontrado("producto")
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Actualizar nunca toca stock_actual: los cambios de stock pasan por
// InventarioService para dejar su movimiento.
func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado("producto")
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.CodigoBarras != nil {
		p.CodigoBarras = req.CodigoBarras
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.Categoria != nil {
		p.Categoria = req.Categoria
	}
	if req.UnidadMedida != nil {
		p.UnidadMedida = *req.UnidadMedida
	}
	if req.PrecioCosto != nil {
		if req.PrecioCosto.IsNegative() {
			return nil, ErrMontoInvalido("el precio de costo no puede ser negativo")
		}
		p.PrecioCosto = *req.PrecioCosto
	}
	if req.PrecioVenta != nil {
		if req.PrecioVenta.IsNegative() {
			return nil, ErrMontoInvalido("el precio de venta no puede ser negativo")
		}
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.StockMinimo != nil {
		if req.StockMinimo.IsNegative() {
			return nil, ErrMontoInvalido("el stock mínimo no puede ser negativo")
		}
		p.StockMinimo = *req.StockMinimo
	}
	if req.Ubicacion != nil {
		p.Ubicacion = req.Ubicacion
	}
	if req.ProveedorID != nil {
		if *req.ProveedorID == "" {
			p.ProveedorID = nil
		} else {
			pid, err := uuid.Parse(*req.ProveedorID)
			if err != nil {
				return nil, ErrValidacion("proveedor_id inválido")
			}
			p.ProveedorID = &pid
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado("producto")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return ErrAlmacenamiento(err)
	}
	return nil
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado("producto")
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return ErrAlmacenamiento(err)
	}
	return nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:           p.ID.String(),
		Codigo:       p.Codigo,
		CodigoBarras: p.CodigoBarras,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		Categoria:    p.Categoria,
		UnidadMedida: p.UnidadMedida,
		PrecioCosto:  p.PrecioCosto,
		PrecioVenta:  p.PrecioVenta,
		MargenPct:    p.MargenGanancia(),
		StockActual:  p.StockActual,
		StockMinimo:  p.StockMinimo,
		StockBajo:    p.StockBajo(),
		Ubicacion:    p.Ubicacion,
		Activo:       p.Activo,
	}
	if p.ProveedorID != nil {
		pid := p.ProveedorID.String()
		resp.ProveedorID = &pid
	}
	return resp
}
