package checkout

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/sweetlavka/storefront/internal/cart"
	"github.com/sweetlavka/storefront/internal/model"
	"github.com/sweetlavka/storefront/internal/ordernum"
)

// Стоимость доставки

const (
	FreeCourierFrom = 2000
	CourierCost     = 300
	PostCost        = 350
)

// DeliveryCost — стоимость доставки для суммы товаров и способа доставки.
// Курьером бесплатно от FreeCourierFrom, почтой всегда PostCost, самовывоз бесплатно.
func DeliveryCost(subtotal int, delivery model.DeliveryType) int {
	switch delivery {
	case model.DeliveryCourier:
		if subtotal >= FreeCourierFrom {
			return 0
		}
		return CourierCost
	case model.DeliveryPost:
		return PostCost
	default:
		return 0
	}
}

// Ошибки полей формы

type ErrorKind string

const (
	ErrorRequired ErrorKind = "required"
	ErrorFormat   ErrorKind = "format"
)

type FieldError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

const (
	msgNameRequired    = "Введите ваше имя"
	msgPhoneRequired   = "Введите номер телефона"
	msgPhoneFormat     = "Некорректный номер телефона"
	msgEmailRequired   = "Введите email"
	msgEmailFormat     = "Некорректный email"
	msgAddressRequired = "Введите адрес доставки"
)

var (
	// необязательный ведущий +, дальше не меньше десяти символов
	// из цифр, пробелов, дефисов и скобок
	phoneRegexp = regexp.MustCompile(`^\+?[0-9\s\-()]{10,}$`)
	// проверка формы адреса, не полная проверка по RFC:
	// что-то@что-то.что-то, без пробелов и вторых @
	emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validate проверяет черновик заказа целиком и возвращает все найденные
// ошибки по именам полей. Пустая map — черновик корректен.
func Validate(draft model.OrderDraft) map[string]FieldError {
	errs := make(map[string]FieldError)

	if strings.TrimSpace(draft.Customer.Name) == "" {
		errs["name"] = FieldError{Kind: ErrorRequired, Message: msgNameRequired}
	}

	if strings.TrimSpace(draft.Customer.Phone) == "" {
		errs["phone"] = FieldError{Kind: ErrorRequired, Message: msgPhoneRequired}
	} else if !phoneRegexp.MatchString(draft.Customer.Phone) {
		errs["phone"] = FieldError{Kind: ErrorFormat, Message: msgPhoneFormat}
	}

	if strings.TrimSpace(draft.Customer.Email) == "" {
		errs["email"] = FieldError{Kind: ErrorRequired, Message: msgEmailRequired}
	} else if !emailRegexp.MatchString(draft.Customer.Email) {
		errs["email"] = FieldError{Kind: ErrorFormat, Message: msgEmailFormat}
	}

	// при самовывозе адрес не проверяется вовсе
	if draft.Delivery.Type != model.DeliveryPickup &&
		strings.TrimSpace(draft.Delivery.Address) == "" {
		errs["address"] = FieldError{Kind: ErrorRequired, Message: msgAddressRequired}
	}

	return errs
}

// Оформление заказа

var (
	ErrNotOpen   = errors.New("checkout is not open")
	ErrCartEmpty = errors.New("cart is empty")
)

// Engine владеет черновиком заказа. Корзину читает, а меняет
// только при успешном оформлении (очистка).
type Engine struct {
	cart   *cart.Cart
	open   bool
	draft  model.OrderDraft
	errors map[string]FieldError
}

func NewEngine(c *cart.Cart) *Engine {
	return &Engine{
		cart:  c,
		draft: model.DefaultDraft(),
	}
}

// Open открывает форму заказа. Для пустой корзины заказ не оформить.
func (e *Engine) Open() error {
	if e.cart.Empty() {
		return ErrCartEmpty
	}
	e.open = true
	e.errors = nil
	return nil
}

func (e *Engine) IsOpen() bool {
	return e.open
}

func (e *Engine) Draft() model.OrderDraft {
	return e.draft
}

// Errors — ошибки последней неудачной попытки оформления.
// Возвращается копия: как и Items у корзины, внутреннее состояние наружу не отдаем.
func (e *Engine) Errors() map[string]FieldError {
	return copyFieldErrors(e.errors)
}

func copyFieldErrors(errs map[string]FieldError) map[string]FieldError {
	if errs == nil {
		return nil
	}
	out := make(map[string]FieldError, len(errs))
	for field, fieldErr := range errs {
		out[field] = fieldErr
	}
	return out
}

func (e *Engine) SetCustomer(info model.CustomerInfo) error {
	if !e.open {
		return ErrNotOpen
	}
	e.draft.Customer = info
	return nil
}

func (e *Engine) SetDelivery(info model.DeliveryInfo) error {
	if !e.open {
		return ErrNotOpen
	}
	e.draft.Delivery = info
	return nil
}

func (e *Engine) SetPayment(method model.PaymentMethod) error {
	if !e.open {
		return ErrNotOpen
	}
	e.draft.Payment = method
	return nil
}

// DeliveryCost и GrandTotal каждый раз считаются заново от текущего
// состояния корзины и черновика, ничего не кешируется.
func (e *Engine) DeliveryCost() int {
	return DeliveryCost(e.cart.Subtotal(), e.draft.Delivery.Type)
}

func (e *Engine) GrandTotal() int {
	return e.cart.Subtotal() + e.DeliveryCost()
}

// Submit проверяет черновик и оформляет заказ.
// При ошибках полей возвращает их map, состояние не меняется,
// черновик сохраняется для исправления.
// При успехе возвращает снимок заказа, очищает корзину,
// сбрасывает черновик и закрывает форму.
func (e *Engine) Submit() (model.OrderRecord, map[string]FieldError, error) {
	if !e.open {
		return model.OrderRecord{}, nil, ErrNotOpen
	}

	errs := Validate(e.draft)
	if len(errs) > 0 {
		e.errors = copyFieldErrors(errs)
		return model.OrderRecord{}, errs, nil
	}

	subtotal := e.cart.Subtotal()
	cost := DeliveryCost(subtotal, e.draft.Delivery.Type)
	record := model.OrderRecord{
		Number:       ordernum.New(),
		Items:        e.cart.Items(),
		Subtotal:     subtotal,
		DeliveryCost: cost,
		Total:        subtotal + cost,
		Draft:        e.draft,
		CreatedAt:    time.Now(),
	}

	e.cart.Clear()
	e.draft = model.DefaultDraft()
	e.errors = nil
	e.open = false

	return record, nil, nil
}

// Cancel закрывает форму и отбрасывает черновик. Корзина не меняется.
func (e *Engine) Cancel() {
	e.open = false
	e.draft = model.DefaultDraft()
	e.errors = nil
}
