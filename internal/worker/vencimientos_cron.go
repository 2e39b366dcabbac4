package worker

// vencimientos_cron.go
// Background goroutine that periodically marks as vencido every presupuesto
// pendiente whose fecha_vencimiento already passed. The sweep is a single
// UPDATE so concurrent instances are harmless.

import (
	"context"
	"time"

	"github.com/mateoadann/ferrerp/internal/repository"

	"github.com/rs/zerolog/log"
)

const vencimientosTickInterval = 10 * time.Minute

// StartVencimientosCron launches the expiry sweep goroutine. It runs once at
// startup and then on every tick, and respects ctx for graceful shutdown.
func StartVencimientosCron(ctx context.Context, repo repository.PresupuestoRepository) {
	go func() {
		ticker := time.NewTicker(vencimientosTickInterval)
		defer ticker.Stop()

		log.Info().Msg("vencimientos_cron: started")
		sweep(ctx, repo)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("vencimientos_cron: shutting down")
				return
			case <-ticker.C:
				sweep(ctx, repo)
			}
		}
	}()
}

func sweep(ctx context.Context, repo repository.PresupuestoRepository) {
	n, err := repo.MarcarVencidos(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("vencimientos_cron: sweep failed")
		return
	}
	if n > 0 {
		log.Info().Int64("count", n).Msg("vencimientos_cron: presupuestos vencidos")
	}
}
