package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sweetlavka/storefront/internal/checkout"
	"github.com/sweetlavka/storefront/internal/model"
	"github.com/sweetlavka/storefront/internal/service/config"
	"github.com/sweetlavka/storefront/internal/service/fulfillment"
	"github.com/sweetlavka/storefront/internal/session"
	"github.com/sweetlavka/storefront/internal/store"
)

// CartView — корзина глазами витрины.
type CartView struct {
	Items     []model.LineItem
	Subtotal  int
	ItemCount int
}

// CheckoutView — форма заказа глазами витрины: черновик,
// актуальные суммы и ошибки последней попытки оформления.
type CheckoutView struct {
	Open         bool
	Draft        model.OrderDraft
	Subtotal     int
	DeliveryCost int
	Total        int
	Errors       map[string]checkout.FieldError
}

// SubmitResult — итог попытки оформления: либо заказ, либо ошибки полей.
type SubmitResult struct {
	Record model.OrderRecord
	Errors map[string]checkout.FieldError
}

type Service interface {
	Products() ([]model.Product, error)
	Cart(userCode string) (CartView, error)
	CartAdd(userCode string, productID int, quantity int) (CartView, error)
	CartUpdate(userCode string, productID int, quantity int) (CartView, error)
	CartRemove(userCode string, productID int) (CartView, error)
	CartClear(userCode string) error
	CheckoutOpen(userCode string) (CheckoutView, error)
	Checkout(userCode string) (CheckoutView, error)
	CheckoutSetCustomer(userCode string, info model.CustomerInfo) (CheckoutView, error)
	CheckoutSetDelivery(userCode string, info model.DeliveryInfo) (CheckoutView, error)
	CheckoutSetPayment(userCode string, method model.PaymentMethod) (CheckoutView, error)
	CheckoutSubmit(userCode string) (SubmitResult, error)
	CheckoutCancel(userCode string) error
}

var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrCheckoutClosed   = errors.New("checkout is not open")
	ErrUnknownDelivery  = errors.New("unknown delivery type")
	ErrUnknownPayment   = errors.New("unknown payment method")
)

type service struct {
	cfg         config.Config
	store       store.Store
	sessions    *session.Registry
	fulfillment fulfillment.Client
	zaplog      *zap.Logger
}

func NewService(cfg config.Config, store store.Store, sessions *session.Registry, zaplog *zap.Logger) Service {
	fulfillment := fulfillment.NewClient(cfg.FulfillmentAddr)

	return &service{
		cfg:         cfg,
		store:       store,
		sessions:    sessions,
		fulfillment: fulfillment,
		zaplog:      zaplog,
	}
}

func (service *service) Products() ([]model.Product, error) {
	ctx := context.Background()

	return service.store.ProductGetAll(ctx)
}

func (service *service) Cart(userCode string) (CartView, error) {
	if userCode == "" {
		return CartView{}, ErrInsufficientData
	}

	sess := service.sessions.Session(userCode)
	sess.Lock()
	defer sess.Unlock()

	return cartView(sess), nil
}

func (service *service) CartAdd(userCode string, productID int, quantity int) (CartView, error) {
	ctx := context.Background()

	if userCode == "" {
		return CartView{}, ErrInsufficientData
	}

	product, err := service.store.ProductGet(ctx, productID)
	if err != nil {
		switch err {
		case store.ErrNoRows:
			return CartView{}, ErrProductNotFound
		default:
			return CartView{}, err
		}
	}

	sess := service.sessions.Session(userCode)
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.AddItem(product, quantity)
	return cartView(sess), nil
}

func (service *service) CartUpdate(userCode string, productID int, quantity int) (CartView, error) {
	if userCode == "" {
		return CartView{}, ErrInsufficientData
	}

	sess := service.sessions.Session(userCode)
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.UpdateQuantity(productID, quantity)
	return cartView(sess), nil
}

func (service *service) CartRemove(userCode string, productID int) (CartView, error) {
	if userCode == "" {
		return CartView{}, ErrInsufficientData
	}

	sess := service.sessions.Session(userCode)
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.RemoveItem(productID)
	return cartView(sess), nil
}

func (service *service) CartClear(userCode string) error {
	if userCode == "" {
		return ErrInsufficientData
	}

	sess := service.sessions.Session(userCode)
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.Clear()
	return nil
}

func (service *service) CheckoutOpen(userCode string) (CheckoutView, error) {
	if userCode == "" {
		return CheckoutView{}, ErrInsufficientData
	}

	sess := service.sessions.Session(userCode)
	sess.Lock()
	defer sess.Unlock()

	if err := sess.Checkout.Open(); err != nil {
		switch err {
		case checkout.ErrCartEmpty:
			return CheckoutView{}, ErrCartEmpty
		default:
			return CheckoutView{}, err
		}
	}
	return checkoutView(sess), nil
}

func (service *service) Checkout(userCode string) (CheckoutView, error) {
	if userCode == "" {
		return CheckoutView{}, ErrInsufficientData
	}

	sess := service.sessions.Session(userCode)
	sess.Lock()
	defer sess.Unlock()

	return checkoutView(sess), nil
}

func (service *service) CheckoutSetCustomer(userCode string, info model.CustomerInfo) (CheckoutView, error) {
	if userCode == "" {
		return CheckoutView{}, ErrInsufficientData
	}

	sess := service.sessions.Session(userCode)
	sess.Lock()
	defer sess.Unlock()

	if err := sess.Checkout.SetCustomer(info); err != nil {
		return CheckoutView{}, ErrCheckoutClosed
	}
	return checkoutView(sess), nil
}

func (service *service) CheckoutSetDelivery(userCode string, info model.DeliveryInfo) (CheckoutView, error) {
	if userCode == "" {
		return CheckoutView{}, ErrInsufficientData
	}

	switch info.Type {
	case model.DeliveryCourier, model.DeliveryPickup, model.DeliveryPost:
	default:
		return CheckoutView{}, ErrUnknownDelivery
	}

	sess := service.sessions.Session(userCode)
	sess.Lock()
	defer sess.Unlock()

	if err := sess.Checkout.SetDelivery(info); err != nil {
		return CheckoutView{}, ErrCheckoutClosed
	}
	return checkoutView(sess), nil
}

func (service *service) CheckoutSetPayment(userCode string, method model.PaymentMethod) (CheckoutView, error) {
	if userCode == "" {
		return CheckoutView{}, ErrInsufficientData
	}

	switch method {
	case model.PaymentCash, model.PaymentCard, model.PaymentOnline:
	default:
		return CheckoutView{}, ErrUnknownPayment
	}

	sess := service.sessions.Session(userCode)
	sess.Lock()
	defer sess.Unlock()

	if err := sess.Checkout.SetPayment(method); err != nil {
		return CheckoutView{}, ErrCheckoutClosed
	}
	return checkoutView(sess), nil
}

func (service *service) CheckoutSubmit(userCode string) (SubmitResult, error) {
	if userCode == "" {
		return SubmitResult{}, ErrInsufficientData
	}

	sess := service.sessions.Session(userCode)
	sess.Lock()
	defer sess.Unlock()

	record, fieldErrs, err := sess.Checkout.Submit()
	if err != nil {
		return SubmitResult{}, ErrCheckoutClosed
	}
	if len(fieldErrs) > 0 {
		return SubmitResult{Errors: fieldErrs}, nil
	}

	// передача заказа службе исполнения: подтверждения не ждем,
	// неудача передачи оформление не отменяет
	if err := service.fulfillment.Send(record); err != nil {
		service.zaplog.Warn("fulfillment handoff failed",
			zap.String("order", record.Number),
			zap.Error(err),
		)
	}

	service.zaplog.Info("order submitted",
		zap.String("order", record.Number),
		zap.Int("total", record.Total),
	)

	return SubmitResult{Record: record}, nil
}

func (service *service) CheckoutCancel(userCode string) error {
	if userCode == "" {
		return ErrInsufficientData
	}

	sess := service.sessions.Session(userCode)
	sess.Lock()
	defer sess.Unlock()

	sess.Checkout.Cancel()
	return nil
}

// под мьютексом сессии

func cartView(sess *session.Session) CartView {
	return CartView{
		Items:     sess.Cart.Items(),
		Subtotal:  sess.Cart.Subtotal(),
		ItemCount: sess.Cart.ItemCount(),
	}
}

func checkoutView(sess *session.Session) CheckoutView {
	return CheckoutView{
		Open:         sess.Checkout.IsOpen(),
		Draft:        sess.Checkout.Draft(),
		Subtotal:     sess.Cart.Subtotal(),
		DeliveryCost: sess.Checkout.DeliveryCost(),
		Total:        sess.Checkout.GrandTotal(),
		Errors:       sess.Checkout.Errors(),
	}
}
