package orders

import (
	"net/http"

	"petshop/internal/middleware"
	"petshop/internal/platform/httpjson"
	"petshop/internal/platform/logger"
	"petshop/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/orders", func(or chi.Router) {
		or.Use(middleware.RequireIdentity)
		or.Post("/", createOrderHandler(svc, log))
		or.Get("/", listOrdersHandler(svc, log))
		or.Get("/{orderID}", getOrderHandler(svc, log))
	})
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items" validate:"min=1,dive"`
	DeliveryMethod  string             `json:"deliveryMethod" validate:"omitempty,oneof=courier pickup post"`
	DeliveryAddress *addressRequest    `json:"deliveryAddress"`
	PaymentMethod   string             `json:"paymentMethod" validate:"omitempty,oneof=card sbp yandex-split"`
}

type orderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
	PetID     string `json:"petId"`
}

type addressRequest struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Apartment  string `json:"apartment"`
}

// createOrderHandler godoc
// @Summary Crear pedido (checkout)
// @Description El precio de cada ítem se toma del catálogo. Estado inicial pending/pending.
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Token (cualquier valor)"
// @Param body body createOrderRequest true "Pedido"
// @Success 201 {object} Order
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /orders [post]
func createOrderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		if err := validation.Struct(req); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}

		in := CreateInput{
			Items:          make([]ItemInput, 0, len(req.Items)),
			DeliveryMethod: DeliveryMethod(req.DeliveryMethod),
			PaymentMethod:  PaymentMethod(req.PaymentMethod),
		}
		for _, it := range req.Items {
			in.Items = append(in.Items, ItemInput{ProductID: it.ProductID, Quantity: it.Quantity, PetID: it.PetID})
		}
		if a := req.DeliveryAddress; a != nil {
			in.DeliveryAddress = &Address{Street: a.Street, City: a.City, PostalCode: a.PostalCode, Apartment: a.Apartment}
		}

		o, err := svc.Create(r.Context(), middleware.UserID(r.Context()), in)
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}

		log.Info("order created", map[string]any{
			"order_id": o.ID,
			"items":    len(o.Items),
			"total":    o.TotalAmount.String(),
		})
		httpjson.Write(w, http.StatusCreated, o)
	}
}

// @Summary Listar mis pedidos
// @Tags orders
// @Produce json
// @Param Authorization header string true "Token (cualquier valor)"
// @Success 200 {array} Order
// @Router /orders [get]
func listOrdersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, items)
	}
}

// @Summary Obtener pedido
// @Tags orders
// @Produce json
// @Param Authorization header string true "Token (cualquier valor)"
// @Param orderID path string true "ID del pedido"
// @Success 200 {object} Order
// @Failure 404 {object} map[string]string
// @Router /orders/{orderID} [get]
func getOrderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.Get(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "orderID"))
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, o)
	}
}
