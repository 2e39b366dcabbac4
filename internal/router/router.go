package router

import (
	"time"

	"github.com/mateoadann/ferrerp/internal/config"
	"github.com/mateoadann/ferrerp/internal/handler"
	"github.com/mateoadann/ferrerp/internal/middleware"
	"github.com/mateoadann/ferrerp/internal/repository"
	"github.com/mateoadann/ferrerp/internal/service"
	"github.com/mateoadann/ferrerp/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	parametros := config.NewParametros(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	presupuestoRepo := repository.NewPresupuestoRepository(db)
	ordenCompraRepo := repository.NewOrdenCompraRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	secuenciaRepo := repository.NewSecuenciaRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoStockRepo, dispatcher, parametros)
	cajaSvc := service.NewCajaService(cajaRepo)
	cuentaCteSvc := service.NewCuentaCorrienteService(clienteRepo, cajaSvc)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, clienteRepo, secuenciaRepo, inventarioSvc, cajaSvc, cuentaCteSvc)
	presupuestoSvc := service.NewPresupuestoService(presupuestoRepo, productoRepo, clienteRepo, secuenciaRepo, ventaRepo, inventarioSvc, cajaSvc, cuentaCteSvc, parametros, dispatcher)
	compraSvc := service.NewCompraService(ordenCompraRepo, productoRepo, proveedorRepo, secuenciaRepo, inventarioSvc)
	reporteSvc := service.NewReporteService(reporteRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc, cuentaCteSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	presupuestosH := handler.NewPresupuestosHandler(presupuestoSvc, cfg.NombreComercio)
	comprasH := handler.NewComprasHandler(compraSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Enlace público de presupuestos — el token es la credencial
	r.GET("/v1/p/:token", presupuestosH.ObtenerPublico)
	r.GET("/v1/p/:token/pdf", presupuestosH.DescargarPDF)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: vendedor, administrador — declared per-endpoint.
		// Anulaciones, cancelaciones y gestión de usuarios quedan para el
		// administrador.
		v1.POST("/ventas", middleware.RequireRole("vendedor", "administrador"), ventasH.RegistrarVenta)
		v1.GET("/ventas", middleware.RequireRole("vendedor", "administrador"), ventasH.ListarVentas)
		v1.GET("/ventas/:id", middleware.RequireRole("vendedor", "administrador"), ventasH.ObtenerVenta)
		v1.DELETE("/ventas/:id", middleware.RequireRole("administrador"), ventasH.AnularVenta)

		pres := v1.Group("/presupuestos", middleware.RequireRole("vendedor", "administrador"))
		{
			pres.POST("", presupuestosH.CrearPresupuesto)
			pres.GET("", presupuestosH.ListarPresupuestos)
			pres.GET("/:id", presupuestosH.ObtenerPresupuesto)
			pres.PUT("/:id", presupuestosH.ActualizarPresupuesto)
			pres.PUT("/:id/estado", presupuestosH.CambiarEstado)
			pres.POST("/:id/convertir", presupuestosH.ConvertirAVenta)
			pres.POST("/:id/enviar", presupuestosH.EnviarPorEmail)
		}

		caja := v1.Group("/caja", middleware.RequireRole("vendedor", "administrador"))
		{
			caja.POST("/abrir", cajaH.AbrirCaja)
			caja.POST("/cerrar", cajaH.CerrarCaja)
			caja.POST("/movimientos", cajaH.RegistrarMovimiento)
			caja.GET("/actual", cajaH.CajaActual)
			caja.GET("/historial", cajaH.Historial)
		}

		v1.GET("/productos", middleware.RequireRole("vendedor", "administrador"), productosH.ListarProductos)
		v1.GET("/productos/:id", middleware.RequireRole("vendedor", "administrador"), productosH.ObtenerProducto)
		v1.GET("/productos/codigo/:codigo", middleware.RequireRole("vendedor", "administrador"), productosH.ObtenerPorCodigo)
		prods := v1.Group("/productos", middleware.RequireRole("administrador"))
		{
			prods.POST("", productosH.CrearProducto)
			prods.PUT("/:id", productosH.ActualizarProducto)
			prods.DELETE("/:id", productosH.DesactivarProducto)
			prods.PATCH("/:id/reactivar", productosH.ReactivarProducto)
		}

		inv := v1.Group("/inventario", middleware.RequireRole("vendedor", "administrador"))
		{
			inv.POST("/ajustes", inventarioH.AjustarStock)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
			inv.GET("/stock-bajo", inventarioH.StockBajoMinimo)
		}

		clientes := v1.Group("/clientes", middleware.RequireRole("vendedor", "administrador"))
		{
			clientes.POST("", clientesH.CrearCliente)
			clientes.GET("", clientesH.ListarClientes)
			clientes.GET("/:id", clientesH.ObtenerCliente)
			clientes.PUT("/:id", clientesH.ActualizarCliente)
			clientes.POST("/:id/pagos", clientesH.RegistrarPago)
			clientes.GET("/:id/movimientos", clientesH.MovimientosCuenta)
		}
		v1.DELETE("/clientes/:id", middleware.RequireRole("administrador"), clientesH.DesactivarCliente)

		compras := v1.Group("/compras", middleware.RequireRole("vendedor", "administrador"))
		{
			compras.POST("", comprasH.CrearOrden)
			compras.GET("", comprasH.ListarOrdenes)
			compras.GET("/:id", comprasH.ObtenerOrden)
			compras.POST("/:id/recibir", comprasH.Recibir)
		}
		v1.DELETE("/compras/:id", middleware.RequireRole("administrador"), comprasH.Cancelar)

		prov := v1.Group("/proveedores", middleware.RequireRole("administrador"))
		{
			prov.POST("", proveedoresH.CrearProveedor)
			prov.GET("", proveedoresH.ListarProveedores)
			prov.GET("/:id", proveedoresH.ObtenerProveedor)
			prov.PUT("/:id", proveedoresH.ActualizarProveedor)
			prov.DELETE("/:id", proveedoresH.DesactivarProveedor)
		}

		reportes := v1.Group("/reportes", middleware.RequireRole("administrador"))
		{
			reportes.GET("/ventas", reportesH.ResumenVentas)
			reportes.GET("/stock", reportesH.ValuacionStock)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
