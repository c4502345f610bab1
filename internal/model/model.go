package model

import "time"

// Каталог

type Category string

const (
	CategoryCandy Category = "candy"
	CategoryTea   Category = "tea"
)

type Product struct {
	ID          int
	Name        string
	Price       int
	Image       string
	Description string
	Category    Category
}

// Корзина

type LineItem struct {
	ID       int
	Name     string
	Price    int
	Image    string
	Category Category
	Quantity int
}

// Оформление заказа

type DeliveryType string

const (
	DeliveryCourier DeliveryType = "courier"
	DeliveryPickup  DeliveryType = "pickup"
	DeliveryPost    DeliveryType = "post"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentOnline PaymentMethod = "online"
)

type CustomerInfo struct {
	Name  string
	Phone string
	Email string
}

type DeliveryInfo struct {
	Type       DeliveryType
	Address    string
	City       string
	PostalCode string
	Comment    string
}

type OrderDraft struct {
	Customer CustomerInfo
	Delivery DeliveryInfo
	Payment  PaymentMethod
}

const DefaultCity = "Москва"

// DefaultDraft — начальное состояние формы заказа.
// К нему же форма возвращается после оформления или отмены.
func DefaultDraft() OrderDraft {
	return OrderDraft{
		Delivery: DeliveryInfo{
			Type: DeliveryCourier,
			City: DefaultCity,
		},
		Payment: PaymentCash,
	}
}

// Оформленный заказ

type OrderRecord struct {
	Number       string
	Items        []LineItem
	Subtotal     int
	DeliveryCost int
	Total        int
	Draft        OrderDraft
	CreatedAt    time.Time
}
