package fulfillment

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sweetlavka/storefront/internal/model"
)

// JSON заявка для службы исполнения заказов
type OrderJSON struct {
	Number       string       `json:"number"`
	Items        []ItemJSON   `json:"items"`
	Subtotal     int          `json:"subtotal"`
	DeliveryCost int          `json:"delivery_cost"`
	Total        int          `json:"total"`
	Customer     CustomerJSON `json:"customer"`
	Delivery     DeliveryJSON `json:"delivery"`
	Payment      string       `json:"payment"`
	CreatedAt    time.Time    `json:"created_at"`
}

type ItemJSON struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

type CustomerJSON struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type DeliveryJSON struct {
	Type       string `json:"type"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Comment    string `json:"comment"`
}

// Client передает оформленный заказ внешней службе исполнения.
// Подтверждений и повторов нет: заказ считается переданным,
// статус исполнения лавку не интересует.
type Client interface {
	Send(record model.OrderRecord) error
}

type client struct {
	serviceAddr string
}

func NewClient(serviceAddr string) Client {
	return client{serviceAddr: serviceAddr}
}

func (client client) Send(record model.OrderRecord) error {
	// служба не настроена — заказ остается только в журнале
	if client.serviceAddr == "" {
		return nil
	}

	path := "/api/orders"

	setreq := resty.New().R()
	setreq.Method = http.MethodPost
	setreq.URL = client.serviceAddr + path
	setreq.SetHeader("Content-Type", "application/json")
	setreq.SetBody(orderToJSON(record))
	setresp, err := setreq.Send()
	if err != nil {
		return err
	}

	switch setresp.StatusCode() {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		return fmt.Errorf("fulfillment request status: %d", setresp.StatusCode())
	}
}

func orderToJSON(record model.OrderRecord) OrderJSON {
	items := make([]ItemJSON, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, ItemJSON{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	return OrderJSON{
		Number:       record.Number,
		Items:        items,
		Subtotal:     record.Subtotal,
		DeliveryCost: record.DeliveryCost,
		Total:        record.Total,
		Customer: CustomerJSON{
			Name:  record.Draft.Customer.Name,
			Phone: record.Draft.Customer.Phone,
			Email: record.Draft.Customer.Email,
		},
		Delivery: DeliveryJSON{
			Type:       string(record.Draft.Delivery.Type),
			Address:    record.Draft.Delivery.Address,
			City:       record.Draft.Delivery.City,
			PostalCode: record.Draft.Delivery.PostalCode,
			Comment:    record.Draft.Delivery.Comment,
		},
		Payment:   string(record.Draft.Payment),
		CreatedAt: record.CreatedAt,
	}
}
