package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/sweetlavka/storefront/internal/checkout"
	"github.com/sweetlavka/storefront/internal/gzip"
	"github.com/sweetlavka/storefront/internal/handler/config"
	"github.com/sweetlavka/storefront/internal/logger"
	"github.com/sweetlavka/storefront/internal/model"
	"github.com/sweetlavka/storefront/internal/service"
	"github.com/sweetlavka/storefront/internal/session"
)

func Serve(cfg config.Config, sessions *session.Registry, service service.Service, zaplog *zap.Logger) error {
	h := newHandler(sessions, service, zaplog)
	router := h.NewRouter()

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	return srv.ListenAndServe()
}

type handler struct {
	sessions *session.Registry
	service  service.Service
	zaplog   *zap.Logger
}

func newHandler(sessions *session.Registry, service service.Service, zaplog *zap.Logger) *handler {
	return &handler{
		sessions: sessions,
		service:  service,
		zaplog:   zaplog,
	}
}

func NewRouter(sessions *session.Registry, service service.Service, zaplog *zap.Logger) *http.ServeMux {
	return newHandler(sessions, service, zaplog).NewRouter()
}

func (h *handler) NewRouter() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", h.wrap(h.GetProducts))
	mux.HandleFunc("GET /api/cart", h.wrap(h.GetCart))
	mux.HandleFunc("POST /api/cart/items", h.wrap(h.PostCartItem))
	mux.HandleFunc("PUT /api/cart/items/{id}", h.wrap(h.PutCartItem))
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.wrap(h.DeleteCartItem))
	mux.HandleFunc("DELETE /api/cart", h.wrap(h.DeleteCart))
	mux.HandleFunc("POST /api/checkout", h.wrap(h.PostCheckout))
	mux.HandleFunc("GET /api/checkout", h.wrap(h.GetCheckout))
	mux.HandleFunc("PUT /api/checkout/customer", h.wrap(h.PutCheckoutCustomer))
	mux.HandleFunc("PUT /api/checkout/delivery", h.wrap(h.PutCheckoutDelivery))
	mux.HandleFunc("PUT /api/checkout/payment", h.wrap(h.PutCheckoutPayment))
	mux.HandleFunc("POST /api/checkout/submit", h.wrap(h.PostCheckoutSubmit))
	mux.HandleFunc("DELETE /api/checkout", h.wrap(h.DeleteCheckout))

	return mux
}

func (h *handler) wrap(hf http.HandlerFunc) http.HandlerFunc {
	return gzip.GzipMiddleware(logger.RequestLogMdlw(h.sessions.Middleware(hf), h.zaplog))
}

// Каталог

type ProductJSONResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Products()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	productsJSON := make([]ProductJSONResponse, 0, len(products))
	for _, product := range products {
		productsJSON = append(productsJSON, ProductJSONResponse{
			ID:          product.ID,
			Name:        product.Name,
			Price:       product.Price,
			Image:       product.Image,
			Description: product.Description,
			Category:    string(product.Category),
		})
	}
	h.writeJSON(w, productsJSON)
}

// Корзина

type LineItemJSONResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type CartJSONResponse struct {
	Items     []LineItemJSONResponse `json:"items"`
	Subtotal  int                    `json:"subtotal"`
	ItemCount int                    `json:"item_count"`
}

func (h *handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userCode := r.Header.Get(session.UserCodeKey)

	view, err := h.service.Cart(userCode)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.writeJSON(w, cartJSON(view))
}

type PostCartItemJSONRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

func (h *handler) PostCartItem(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var itemJSON PostCartItemJSONRequest
	err = json.Unmarshal(buf.Bytes(), &itemJSON)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// ядро количество не проверяет, отсекаем мусор на границе
	if itemJSON.Quantity < 0 {
		http.Error(w, "invalid quantity", http.StatusBadRequest)
		return
	}
	// количество не указано — кладем одну штуку
	if itemJSON.Quantity == 0 {
		itemJSON.Quantity = 1
	}

	userCode := r.Header.Get(session.UserCodeKey)

	view, err := h.service.CartAdd(userCode, itemJSON.ProductID, itemJSON.Quantity)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.writeJSON(w, cartJSON(view))
}

type PutCartItemJSONRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handler) PutCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var itemJSON PutCartItemJSONRequest
	err = json.Unmarshal(buf.Bytes(), &itemJSON)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userCode := r.Header.Get(session.UserCodeKey)

	view, err := h.service.CartUpdate(userCode, productID, itemJSON.Quantity)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.writeJSON(w, cartJSON(view))
}

func (h *handler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userCode := r.Header.Get(session.UserCodeKey)

	view, err := h.service.CartRemove(userCode, productID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.writeJSON(w, cartJSON(view))
}

func (h *handler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	userCode := r.Header.Get(session.UserCodeKey)

	if err := h.service.CartClear(userCode); err != nil {
		h.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Оформление заказа

type CustomerJSONRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type DeliveryJSONRequest struct {
	Type       string `json:"type"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Comment    string `json:"comment"`
}

type CheckoutJSONResponse struct {
	Open         bool                           `json:"open"`
	Customer     CustomerJSONRequest            `json:"customer"`
	Delivery     DeliveryJSONRequest            `json:"delivery"`
	Payment      string                         `json:"payment"`
	Subtotal     int                            `json:"subtotal"`
	DeliveryCost int                            `json:"delivery_cost"`
	Total        int                            `json:"total"`
	Errors       map[string]checkout.FieldError `json:"errors,omitempty"`
}

func (h *handler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	userCode := r.Header.Get(session.UserCodeKey)

	view, err := h.service.CheckoutOpen(userCode)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.writeJSON(w, checkoutJSON(view))
}

func (h *handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	userCode := r.Header.Get(session.UserCodeKey)

	view, err := h.service.Checkout(userCode)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.writeJSON(w, checkoutJSON(view))
}

func (h *handler) PutCheckoutCustomer(w http.ResponseWriter, r *http.Request) {
	var customerJSON CustomerJSONRequest
	if !h.readJSON(w, r, &customerJSON) {
		return
	}

	userCode := r.Header.Get(session.UserCodeKey)

	view, err := h.service.CheckoutSetCustomer(userCode, model.CustomerInfo{
		Name:  customerJSON.Name,
		Phone: customerJSON.Phone,
		Email: customerJSON.Email,
	})
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.writeJSON(w, checkoutJSON(view))
}

func (h *handler) PutCheckoutDelivery(w http.ResponseWriter, r *http.Request) {
	var deliveryJSON DeliveryJSONRequest
	if !h.readJSON(w, r, &deliveryJSON) {
		return
	}

	userCode := r.Header.Get(session.UserCodeKey)

	view, err := h.service.CheckoutSetDelivery(userCode, model.DeliveryInfo{
		Type:       model.DeliveryType(deliveryJSON.Type),
		Address:    deliveryJSON.Address,
		City:       deliveryJSON.City,
		PostalCode: deliveryJSON.PostalCode,
		Comment:    deliveryJSON.Comment,
	})
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.writeJSON(w, checkoutJSON(view))
}

type PutCheckoutPaymentJSONRequest struct {
	Method string `json:"method"`
}

func (h *handler) PutCheckoutPayment(w http.ResponseWriter, r *http.Request) {
	var paymentJSON PutCheckoutPaymentJSONRequest
	if !h.readJSON(w, r, &paymentJSON) {
		return
	}

	userCode := r.Header.Get(session.UserCodeKey)

	view, err := h.service.CheckoutSetPayment(userCode, model.PaymentMethod(paymentJSON.Method))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.writeJSON(w, checkoutJSON(view))
}

type OrderJSONResponse struct {
	Number       string                 `json:"number"`
	Items        []LineItemJSONResponse `json:"items"`
	Subtotal     int                    `json:"subtotal"`
	DeliveryCost int                    `json:"delivery_cost"`
	Total        int                    `json:"total"`
}

type PostCheckoutSubmitJSONResponse struct {
	Order   OrderJSONResponse `json:"order"`
	Message string            `json:"message"`
}

type PostCheckoutSubmitJSONError struct {
	Errors map[string]checkout.FieldError `json:"errors"`
}

func (h *handler) PostCheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	userCode := r.Header.Get(session.UserCodeKey)

	result, err := h.service.CheckoutSubmit(userCode)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	if len(result.Errors) > 0 {
		responseJSON, err := json.Marshal(PostCheckoutSubmitJSONError{Errors: result.Errors})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write(responseJSON)
		return
	}

	record := result.Record
	itemsJSON := make([]LineItemJSONResponse, 0, len(record.Items))
	for _, item := range record.Items {
		itemsJSON = append(itemsJSON, lineItemJSON(item))
	}
	h.writeJSON(w, PostCheckoutSubmitJSONResponse{
		Order: OrderJSONResponse{
			Number:       record.Number,
			Items:        itemsJSON,
			Subtotal:     record.Subtotal,
			DeliveryCost: record.DeliveryCost,
			Total:        record.Total,
		},
		Message: fmt.Sprintf("Спасибо за заказ, %s! Мы свяжемся с вами в ближайшее время.",
			record.Draft.Customer.Name),
	})
}

func (h *handler) DeleteCheckout(w http.ResponseWriter, r *http.Request) {
	userCode := r.Header.Get(session.UserCodeKey)

	if err := h.service.CheckoutCancel(userCode); err != nil {
		h.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Общее

func (h *handler) serviceError(w http.ResponseWriter, err error) {
	switch err {
	case service.ErrInsufficientData:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case service.ErrProductNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case service.ErrCartEmpty, service.ErrCheckoutClosed:
		http.Error(w, err.Error(), http.StatusConflict)
	case service.ErrUnknownDelivery, service.ErrUnknownPayment:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *handler) readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	if err = json.Unmarshal(buf.Bytes(), v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *handler) writeJSON(w http.ResponseWriter, v any) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(responseJSON)
}

func lineItemJSON(item model.LineItem) LineItemJSONResponse {
	return LineItemJSONResponse{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Image:    item.Image,
		Category: string(item.Category),
		Quantity: item.Quantity,
	}
}

func cartJSON(view service.CartView) CartJSONResponse {
	itemsJSON := make([]LineItemJSONResponse, 0, len(view.Items))
	for _, item := range view.Items {
		itemsJSON = append(itemsJSON, lineItemJSON(item))
	}
	return CartJSONResponse{
		Items:     itemsJSON,
		Subtotal:  view.Subtotal,
		ItemCount: view.ItemCount,
	}
}

func checkoutJSON(view service.CheckoutView) CheckoutJSONResponse {
	return CheckoutJSONResponse{
		Open: view.Open,
		Customer: CustomerJSONRequest{
			Name:  view.Draft.Customer.Name,
			Phone: view.Draft.Customer.Phone,
			Email: view.Draft.Customer.Email,
		},
		Delivery: DeliveryJSONRequest{
			Type:       string(view.Draft.Delivery.Type),
			Address:    view.Draft.Delivery.Address,
			City:       view.Draft.Delivery.City,
			PostalCode: view.Draft.Delivery.PostalCode,
			Comment:    view.Draft.Delivery.Comment,
		},
		Payment:      string(view.Draft.Payment),
		Subtotal:     view.Subtotal,
		DeliveryCost: view.DeliveryCost,
		Total:        view.Total,
		Errors:       view.Errors,
	}
}
