package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/model"
	"github.com/mateoadann/ferrerp/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stubs en memoria de los repositorios. Reproducen las guardas que en
// producción resuelven los UPDATE condicionales (stock no negativo, límite
// de crédito, CAS de estados) devolviendo repository.ErrCondicionNoCumplida
// cuando la guarda falla, igual que la implementación real.

// ─── Producto ────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: map[uuid.UUID]*model.Producto{}}
}

func (r *stubProductoRepo) Create(ctx context.Context, p *model.Producto) error {
	for _, existente := range r.productos {
		if existente.Codigo == p.Codigo {
			return errors.New("codigo duplicado")
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Codigo == codigo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(ctx context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

func (r *stubProductoRepo) ListStockBajo(ctx context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.StockBajo() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) AjustarStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	p, ok := r.productos[id]
	if !ok {
		return decimal.Zero, gorm.ErrRecordNotFound
	}
	posterior := p.StockActual.Add(delta)
	if posterior.IsNegative() {
		return decimal.Zero, repository.ErrCondicionNoCumplida
	}
	p.StockActual = posterior
	return posterior, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

// ─── Cliente ─────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
	movsCC   []model.MovimientoCuentaCorriente
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: map[uuid.UUID]*model.Cliente{}}
}

func (r *stubClienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Activo = false
	return nil
}

func (r *stubClienteRepo) CargarSaldoTx(tx *gorm.DB, id uuid.UUID, monto decimal.Decimal) (decimal.Decimal, error) {
	c, ok := r.clientes[id]
	if !ok {
		return decimal.Zero, gorm.ErrRecordNotFound
	}
	if !c.PuedeComprarACredito(monto) {
		return decimal.Zero, repository.ErrCondicionNoCumplida
	}
	c.SaldoCuentaCorriente = c.SaldoCuentaCorriente.Add(monto)
	return c.SaldoCuentaCorriente, nil
}

func (r *stubClienteRepo) PagarSaldoTx(tx *gorm.DB, id uuid.UUID, monto decimal.Decimal) (decimal.Decimal, error) {
	c, ok := r.clientes[id]
	if !ok {
		return decimal.Zero, gorm.ErrRecordNotFound
	}
	if monto.GreaterThan(c.SaldoCuentaCorriente) {
		return decimal.Zero, repository.ErrCondicionNoCumplida
	}
	c.SaldoCuentaCorriente = c.SaldoCuentaCorriente.Sub(monto)
	return c.SaldoCuentaCorriente, nil
}

func (r *stubClienteRepo) CreateMovimientoCC(ctx context.Context, tx *gorm.DB, m *model.MovimientoCuentaCorriente) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movsCC = append(r.movsCC, *m)
	return nil
}

func (r *stubClienteRepo) ListMovimientosCC(ctx context.Context, clienteID uuid.UUID) ([]model.MovimientoCuentaCorriente, error) {
	var out []model.MovimientoCuentaCorriente
	for _, m := range r.movsCC {
		if m.ClienteID == clienteID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) DB() *gorm.DB { return nil }

// ─── Caja ────────────────────────────────────────────────────────────────────

type stubCajaRepo struct {
	cajas map[uuid.UUID]*model.Caja
}

var _ repository.CajaRepository = (*stubCajaRepo)(nil)

func newStubCajaRepo() *stubCajaRepo {
	return &stubCajaRepo{cajas: map[uuid.UUID]*model.Caja{}}
}

func (r *stubCajaRepo) Create(ctx context.Context, c *model.Caja) error {
	for _, existente := range r.cajas {
		if existente.EstaAbierta() {
			return errors.New("ya hay una caja abierta")
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cajas[c.ID] = c
	return nil
}

func (r *stubCajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	c, ok := r.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCajaRepo) FindAbierta(ctx context.Context) (*model.Caja, error) {
	for _, c := range r.cajas {
		if c.EstaAbierta() {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCajaRepo) FindAbiertaTx(tx *gorm.DB) (*model.Caja, error) {
	return r.FindAbierta(context.Background())
}

func (r *stubCajaRepo) CerrarTx(tx *gorm.DB, id uuid.UUID, cierre model.CierreCaja) error {
	c, ok := r.cajas[id]
	if !ok || !c.EstaAbierta() {
		return repository.ErrCondicionNoCumplida
	}
	c.Estado = model.CajaCerrada
	c.FechaCierre = &cierre.FechaCierre
	c.UsuarioCierreID = &cierre.UsuarioCierreID
	c.MontoEsperado = &cierre.MontoEsperado
	c.MontoReal = &cierre.MontoReal
	c.Diferencia = &cierre.Diferencia
	if cierre.Observaciones != nil {
		c.Observaciones = cierre.Observaciones
	}
	return nil
}

func (r *stubCajaRepo) CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCaja) error {
	c, ok := r.cajas[m.CajaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	c.Movimientos = append(c.Movimientos, *m)
	return nil
}

func (r *stubCajaRepo) ListMovimientos(ctx context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	c, ok := r.cajas[cajaID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c.Movimientos, nil
}

func (r *stubCajaRepo) ListCerradas(ctx context.Context, page, limit int) ([]model.Caja, int64, error) {
	var out []model.Caja
	for _, c := range r.cajas {
		if !c.EstaAbierta() {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubCajaRepo) DB() *gorm.DB { return nil }

// ─── Venta ───────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: map[uuid.UUID]*model.Venta{}}
}

func (r *stubVentaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Detalles {
		if v.Detalles[i].ID == uuid.Nil {
			v.Detalles[i].ID = uuid.New()
		}
		v.Detalles[i].VentaID = v.ID
	}
	v.CreatedAt = time.Now()
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, desde, hacia model.EstadoVenta, motivo string) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v.Estado != desde {
		return repository.ErrCondicionNoCumplida
	}
	v.Estado = hacia
	if motivo != "" {
		v.MotivoAnulacion = &motivo
	}
	return nil
}

func (r *stubVentaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

// ─── Presupuesto ─────────────────────────────────────────────────────────────

type stubPresupuestoRepo struct {
	presupuestos map[uuid.UUID]*model.Presupuesto
	productos    *stubProductoRepo
}

var _ repository.PresupuestoRepository = (*stubPresupuestoRepo)(nil)

func newStubPresupuestoRepo(productos *stubProductoRepo) *stubPresupuestoRepo {
	return &stubPresupuestoRepo{
		presupuestos: map[uuid.UUID]*model.Presupuesto{},
		productos:    productos,
	}
}

// precargar emula los Preload de GORM colgando el producto en cada detalle.
func (r *stubPresupuestoRepo) precargar(p *model.Presupuesto) {
	if r.productos == nil {
		return
	}
	for i := range p.Detalles {
		if prod, ok := r.productos.productos[p.Detalles[i].ProductoID]; ok {
			p.Detalles[i].Producto = prod
		}
	}
}

func (r *stubPresupuestoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Presupuesto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Detalles {
		if p.Detalles[i].ID == uuid.Nil {
			p.Detalles[i].ID = uuid.New()
		}
		p.Detalles[i].PresupuestoID = p.ID
	}
	p.CreatedAt = time.Now()
	r.presupuestos[p.ID] = p
	return nil
}

func (r *stubPresupuestoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Presupuesto, error) {
	p, ok := r.presupuestos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r.precargar(p)
	return p, nil
}

func (r *stubPresupuestoRepo) FindByToken(ctx context.Context, token string) (*model.Presupuesto, error) {
	for _, p := range r.presupuestos {
		if p.Token == token {
			r.precargar(p)
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPresupuestoRepo) Update(ctx context.Context, p *model.Presupuesto) error {
	r.presupuestos[p.ID] = p
	return nil
}

func (r *stubPresupuestoRepo) ReplaceDetalles(ctx context.Context, tx *gorm.DB, presupuestoID uuid.UUID, detalles []model.PresupuestoDetalle) error {
	p, ok := r.presupuestos[presupuestoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range detalles {
		if detalles[i].ID == uuid.Nil {
			detalles[i].ID = uuid.New()
		}
		detalles[i].PresupuestoID = presupuestoID
	}
	p.Detalles = detalles
	return nil
}

func (r *stubPresupuestoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, desde, hacia model.EstadoPresupuesto) error {
	p, ok := r.presupuestos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Estado != desde {
		return repository.ErrCondicionNoCumplida
	}
	p.Estado = hacia
	return nil
}

func (r *stubPresupuestoRepo) MarcarVencidos(ctx context.Context, ahora time.Time) (int64, error) {
	var n int64
	for _, p := range r.presupuestos {
		if p.EstaVencido(ahora) {
			p.Estado = model.PresupuestoVencido
			n++
		}
	}
	return n, nil
}

func (r *stubPresupuestoRepo) List(ctx context.Context, filter dto.PresupuestoFilter) ([]model.Presupuesto, int64, error) {
	var out []model.Presupuesto
	for _, p := range r.presupuestos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPresupuestoRepo) DB() *gorm.DB { return nil }

// ─── Orden de compra ─────────────────────────────────────────────────────────

type stubOrdenCompraRepo struct {
	ordenes map[uuid.UUID]*model.OrdenCompra
}

var _ repository.OrdenCompraRepository = (*stubOrdenCompraRepo)(nil)

func newStubOrdenCompraRepo() *stubOrdenCompraRepo {
	return &stubOrdenCompraRepo{ordenes: map[uuid.UUID]*model.OrdenCompra{}}
}

func (r *stubOrdenCompraRepo) Create(ctx context.Context, tx *gorm.DB, o *model.OrdenCompra) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Detalles {
		if o.Detalles[i].ID == uuid.Nil {
			o.Detalles[i].ID = uuid.New()
		}
		o.Detalles[i].OrdenCompraID = o.ID
	}
	o.CreatedAt = time.Now()
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubOrdenCompraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error) {
	o, ok := r.ordenes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// Devuelve una copia como hace el repo real al escanear filas frescas;
	// el estado almacenado sólo cambia vía los métodos Update*.
	copia := *o
	copia.Detalles = make([]model.OrdenCompraDetalle, len(o.Detalles))
	copy(copia.Detalles, o.Detalles)
	return &copia, nil
}

func (r *stubOrdenCompraRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.OrdenCompra, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubOrdenCompraRepo) UpdateDetalleRecibidoTx(tx *gorm.DB, detalleID uuid.UUID, recibido decimal.Decimal) error {
	for _, o := range r.ordenes {
		for i := range o.Detalles {
			if o.Detalles[i].ID == detalleID {
				o.Detalles[i].CantidadRecibida = recibido
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubOrdenCompraRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, desde, hacia model.EstadoOrdenCompra) error {
	o, ok := r.ordenes[id]
	if !ok || o.Estado != desde {
		return repository.ErrCondicionNoCumplida
	}
	o.Estado = hacia
	return nil
}

func (r *stubOrdenCompraRepo) List(ctx context.Context, filter dto.OrdenCompraFilter) ([]model.OrdenCompra, int64, error) {
	var out []model.OrdenCompra
	for _, o := range r.ordenes {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrdenCompraRepo) DB() *gorm.DB { return nil }

// ─── Movimientos de stock ────────────────────────────────────────────────────

type stubMovimientoStockRepo struct {
	movimientos []model.MovimientoStock
}

var _ repository.MovimientoStockRepository = (*stubMovimientoStockRepo)(nil)

func newStubMovimientoStockRepo() *stubMovimientoStockRepo {
	return &stubMovimientoStockRepo{}
}

func (r *stubMovimientoStockRepo) CreateTx(tx *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoStockRepo) List(ctx context.Context, filter dto.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if filter.ProductoID != "" && m.ProductoID.String() != filter.ProductoID {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

// porProducto filtra los movimientos registrados de un producto.
func (r *stubMovimientoStockRepo) porProducto(id uuid.UUID) []model.MovimientoStock {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == id {
			out = append(out, m)
		}
	}
	return out
}

// ─── Secuencia ───────────────────────────────────────────────────────────────

type stubSecuenciaRepo struct {
	contadores map[string]int
}

var _ repository.SecuenciaRepository = (*stubSecuenciaRepo)(nil)

func newStubSecuenciaRepo() *stubSecuenciaRepo {
	return &stubSecuenciaRepo{contadores: map[string]int{}}
}

func (r *stubSecuenciaRepo) Siguiente(tx *gorm.DB, alcance model.AlcanceSecuencia, anio int) (int, error) {
	clave := fmt.Sprintf("%s/%d", alcance, anio)
	r.contadores[clave]++
	return r.contadores[clave], nil
}

// ─── Usuario ─────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: map[uuid.UUID]*model.Usuario{}}
}

func (r *stubUsuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	for _, existente := range r.usuarios {
		if existente.Username == u.Username {
			return errors.New("username duplicado")
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

// ─── Proveedor ───────────────────────────────────────────────────────────────

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: map[uuid.UUID]*model.Proveedor{}}
}

func (r *stubProveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) List(ctx context.Context) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	p, ok := r.proveedores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

// ─── Parámetros ──────────────────────────────────────────────────────────────

type stubParametros struct {
	diasValidez  int
	emailAlertas string
	comercio     string
}

func (p stubParametros) DiasValidezPresupuesto() int { return p.diasValidez }
func (p stubParametros) EmailAlertasStock() string   { return p.emailAlertas }
func (p stubParametros) NombreComercio() string      { return p.comercio }

// ─── Seeds ───────────────────────────────────────────────────────────────────

func seedProducto(r *stubProductoRepo, codigo, nombre string, precioVenta float64, stock int64) *model.Producto {
	p := &model.Producto{
		ID:           uuid.New(),
		Codigo:       codigo,
		Nombre:       nombre,
		UnidadMedida: "unidad",
		PrecioCosto:  decimal.NewFromFloat(precioVenta).Div(decimal.NewFromInt(2)).Round(2),
		PrecioVenta:  decimal.NewFromFloat(precioVenta),
		StockActual:  decimal.NewFromInt(stock),
		Activo:       true,
	}
	r.productos[p.ID] = p
	return p
}

func seedCliente(r *stubClienteRepo, nombre string, limite float64) *model.Cliente {
	c := &model.Cliente{
		ID:            uuid.New(),
		Nombre:        nombre,
		LimiteCredito: decimal.NewFromFloat(limite),
		Activo:        true,
	}
	r.clientes[c.ID] = c
	return c
}

func seedProveedor(r *stubProveedorRepo, nombre string) *model.Proveedor {
	p := &model.Proveedor{
		ID:     uuid.New(),
		Nombre: nombre,
		Activo: true,
	}
	r.proveedores[p.ID] = p
	return p
}

func seedCajaAbierta(r *stubCajaRepo, montoInicial float64) *model.Caja {
	c := &model.Caja{
		ID:                uuid.New(),
		FechaApertura:     time.Now(),
		UsuarioAperturaID: uuid.New(),
		MontoInicial:      decimal.NewFromFloat(montoInicial),
		Estado:            model.CajaAbierta,
	}
	r.cajas[c.ID] = c
	return c
}

func strDe(s string) *string { return &s }
