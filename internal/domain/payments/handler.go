package payments

import (
	"net/http"

	"petshop/internal/domain/orders"
	"petshop/internal/middleware"
	"petshop/internal/platform/apperr"
	"petshop/internal/platform/httpjson"
	"petshop/internal/platform/logger"
	"petshop/internal/platform/validation"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/payment", func(pr chi.Router) {
		// Callback del proveedor (sin identidad de usuario)
		pr.Post("/webhook", webhookHandler(svc, log))

		pr.Group(func(g chi.Router) {
			g.Use(middleware.RequireIdentity)
			g.Post("/card", payHandler(svc, orders.PayCard, log))
			g.Post("/sbp", payHandler(svc, orders.PaySBP, log))
			g.Post("/yandex-split", payHandler(svc, orders.PayYandexSplit, log))
		})
	})
}

type payRequest struct {
	OrderID    string          `json:"orderId" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	CardNumber string          `json:"cardNumber"`
}

type webhookRequest struct {
	Event  string `json:"event" validate:"required"`
	Object struct {
		Metadata struct {
			OrderID string `json:"orderId" validate:"required"`
		} `json:"metadata"`
	} `json:"object"`
}

// payHandler godoc
// @Summary Pagar un pedido (mock)
// @Description card, sbp o yandex-split. Tarda lo que tarda el proveedor (1s, 2s, 1.5s) y deja el pedido en processing.
// @Tags payment
// @Accept json
// @Produce json
// @Param Authorization header string true "Token (cualquier valor)"
// @Param body body payRequest true "Pago"
// @Success 200 {object} Receipt
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /payment/card [post]
// @Router /payment/sbp [post]
// @Router /payment/yandex-split [post]
func payHandler(svc *Service, method Method, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req payRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		if err := validation.Struct(req); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		if !req.Amount.IsPositive() {
			httpjson.Fail(w, r, log, apperr.Validation("amount", "must be greater than 0"))
			return
		}

		rec, err := svc.Pay(r.Context(), middleware.UserID(r.Context()), method, Charge{
			OrderID:    req.OrderID,
			Amount:     req.Amount,
			CardNumber: req.CardNumber,
		})
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, rec)
	}
}

// webhookHandler godoc
// @Summary Webhook del proveedor de pagos
// @Description payment.succeeded => pagado; payment.canceled => pago fallido.
// @Tags payment
// @Accept json
// @Produce json
// @Param body body webhookRequest true "Evento"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payment/webhook [post]
func webhookHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req webhookRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		if err := validation.Struct(req); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}

		if err := svc.HandleWebhook(r.Context(), WebhookEvent{
			Event:   req.Event,
			OrderID: req.Object.Metadata.OrderID,
		}); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
