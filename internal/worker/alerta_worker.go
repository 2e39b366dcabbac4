package worker

// alerta_worker.go
// Processes low-stock alert jobs from QueueAlertasStock.
// Composes and sends the notification email via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mateoadann/ferrerp/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertaStockPayload is the job envelope sent to QueueAlertasStock.
type AlertaStockPayload struct {
	ProductoID   string `json:"producto_id"`
	Producto     string `json:"producto"`
	StockActual  string `json:"stock_actual"`
	StockMinimo  string `json:"stock_minimo"`
	Destinatario string `json:"destinatario"`
}

// AlertaStockWorker sends low-stock notification emails.
type AlertaStockWorker struct {
	mailer   *infra.Mailer
	comercio string
}

func NewAlertaStockWorker(mailer *infra.Mailer, nombreComercio string) *AlertaStockWorker {
	return &AlertaStockWorker{mailer: mailer, comercio: nombreComercio}
}

// Process sends the alert email. Returns an error so the pool can retry.
func (w *AlertaStockWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload AlertaStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Malformed payload will never succeed, log and swallow
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return nil
	}
	if payload.Destinatario == "" {
		log.Warn().Msg("alerta_worker: empty destinatario, skipping")
		return nil
	}

	subject := fmt.Sprintf("[%s] Stock bajo: %s", w.comercio, payload.Producto)
	body := fmt.Sprintf(
		"El producto %q quedó por debajo de su stock mínimo.\n\n"+
			"Stock actual: %s\nStock mínimo: %s\n\n"+
			"Revisá si corresponde generar una orden de compra.",
		payload.Producto, payload.StockActual, payload.StockMinimo)

	if err := w.mailer.Send(payload.Destinatario, subject, body); err != nil {
		return fmt.Errorf("alerta_worker: enviar email: %w", err)
	}
	log.Info().
		Str("producto_id", payload.ProductoID).
		Str("to", payload.Destinatario).
		Msg("alerta_worker: alerta de stock enviada")
	return nil
}
