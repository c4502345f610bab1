package checkout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweetlavka/storefront/internal/cart"
	"github.com/sweetlavka/storefront/internal/model"
	"github.com/sweetlavka/storefront/internal/ordernum"
)

func TestDeliveryCost(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int
		delivery model.DeliveryType
		want     int
	}{
		{"курьер ниже порога", 1999, model.DeliveryCourier, 300},
		{"курьер на пороге", 2000, model.DeliveryCourier, 0},
		{"курьер выше порога", 5000, model.DeliveryCourier, 0},
		{"почта при малой сумме", 100, model.DeliveryPost, 350},
		{"почта при большой сумме", 10000, model.DeliveryPost, 350},
		{"самовывоз при малой сумме", 100, model.DeliveryPickup, 0},
		{"самовывоз при большой сумме", 10000, model.DeliveryPickup, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DeliveryCost(tt.subtotal, tt.delivery))
		})
	}
}

func validDraft() model.OrderDraft {
	draft := model.DefaultDraft()
	draft.Customer = model.CustomerInfo{
		Name:  "Анна",
		Phone: "+7 (999) 123-45-67",
		Email: "anna@example.ru",
	}
	draft.Delivery.Address = "ул. Ленина, д. 1, кв. 2"
	return draft
}

func TestValidate(t *testing.T) {
	t.Run("все поля некорректны", func(t *testing.T) {
		draft := model.DefaultDraft()
		draft.Customer = model.CustomerInfo{
			Name:  "   ",
			Phone: "123",
			Email: "not-an-email",
		}
		// курьер, адрес пустой

		errs := Validate(draft)
		require.Len(t, errs, 4)
		require.Equal(t, ErrorRequired, errs["name"].Kind)
		require.Equal(t, ErrorFormat, errs["phone"].Kind)
		require.Equal(t, ErrorFormat, errs["email"].Kind)
		require.Equal(t, ErrorRequired, errs["address"].Kind)
	})

	t.Run("самовывоз не требует адреса", func(t *testing.T) {
		draft := model.DefaultDraft()
		draft.Customer = model.CustomerInfo{
			Name:  "",
			Phone: "123",
			Email: "not-an-email",
		}
		draft.Delivery.Type = model.DeliveryPickup

		errs := Validate(draft)
		require.Len(t, errs, 3)
		require.NotContains(t, errs, "address")
	})

	t.Run("пустые телефон и email", func(t *testing.T) {
		draft := validDraft()
		draft.Customer.Phone = ""
		draft.Customer.Email = "  "

		errs := Validate(draft)
		require.Equal(t, ErrorRequired, errs["phone"].Kind)
		require.Equal(t, ErrorRequired, errs["email"].Kind)
	})

	t.Run("корректный черновик", func(t *testing.T) {
		require.Empty(t, Validate(validDraft()))
	})
}

func TestValidatePhoneFormats(t *testing.T) {
	ok := []string{
		"+7 (999) 123-45-67",
		"89991234567",
		"999 123 45 67",
	}
	bad := []string{
		"123",
		"телефон",
		"+7999abc4567",
	}

	draft := validDraft()
	for _, phone := range ok {
		draft.Customer.Phone = phone
		require.NotContains(t, Validate(draft), "phone", "телефон %q", phone)
	}
	for _, phone := range bad {
		draft.Customer.Phone = phone
		require.Contains(t, Validate(draft), "phone", "телефон %q", phone)
	}
}

func TestValidateEmailFormats(t *testing.T) {
	ok := []string{
		"anna@example.ru",
		"a.b+c@mail.example.com",
	}
	bad := []string{
		"not-an-email",
		"a@b",
		"a b@example.ru",
		"a@b@example.ru",
	}

	draft := validDraft()
	for _, email := range ok {
		draft.Customer.Email = email
		require.NotContains(t, Validate(draft), "email", "email %q", email)
	}
	for _, email := range bad {
		draft.Customer.Email = email
		require.Contains(t, Validate(draft), "email", "email %q", email)
	}
}

func newTestEngine(t *testing.T) (*cart.Cart, *Engine) {
	t.Helper()
	c := cart.NewCart()
	return c, NewEngine(c)
}

var sweets = model.Product{
	ID:       1,
	Name:     "Медовая карамель",
	Price:    500,
	Category: model.CategoryCandy,
}

func TestEngineOpen(t *testing.T) {
	c, engine := newTestEngine(t)

	// пустая корзина — заказ не открыть
	require.ErrorIs(t, engine.Open(), ErrCartEmpty)
	require.False(t, engine.IsOpen())

	c.AddItem(sweets, 1)
	require.NoError(t, engine.Open())
	require.True(t, engine.IsOpen())
}

func TestEngineClosedForm(t *testing.T) {
	_, engine := newTestEngine(t)

	// пока форма закрыта, черновик менять нельзя
	require.ErrorIs(t, engine.SetCustomer(model.CustomerInfo{}), ErrNotOpen)
	require.ErrorIs(t, engine.SetDelivery(model.DeliveryInfo{}), ErrNotOpen)
	require.ErrorIs(t, engine.SetPayment(model.PaymentCard), ErrNotOpen)

	_, _, err := engine.Submit()
	require.ErrorIs(t, err, ErrNotOpen)
}

func TestEngineTotalRecomputed(t *testing.T) {
	c, engine := newTestEngine(t)
	c.AddItem(sweets, 3) // 1500
	require.NoError(t, engine.Open())

	// курьер, сумма ниже порога
	require.Equal(t, 300, engine.DeliveryCost())
	require.Equal(t, 1800, engine.GrandTotal())

	// изменение корзины сразу меняет итог
	c.AddItem(sweets, 1) // 2000
	require.Equal(t, 0, engine.DeliveryCost())
	require.Equal(t, 2000, engine.GrandTotal())

	// изменение способа доставки сразу меняет итог
	draft := engine.Draft()
	draft.Delivery.Type = model.DeliveryPost
	require.NoError(t, engine.SetDelivery(draft.Delivery))
	require.Equal(t, 350, engine.DeliveryCost())
	require.Equal(t, 2350, engine.GrandTotal())

	c.UpdateQuantity(sweets.ID, 1) // 500
	require.Equal(t, 350, engine.DeliveryCost())
	require.Equal(t, 850, engine.GrandTotal())
}

func TestEngineSubmitInvalid(t *testing.T) {
	c, engine := newTestEngine(t)
	c.AddItem(sweets, 2)
	require.NoError(t, engine.Open())

	record, errs, err := engine.Submit()
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	require.Zero(t, record)

	// состояние не изменилось: форма открыта, корзина цела,
	// черновик сохранен для исправления, ошибки доступны
	require.True(t, engine.IsOpen())
	require.Equal(t, 2, c.QuantityOf(sweets.ID))
	require.Equal(t, errs, engine.Errors())

	// исправляем поля и оформляем
	draft := validDraft()
	require.NoError(t, engine.SetCustomer(draft.Customer))
	require.NoError(t, engine.SetDelivery(draft.Delivery))

	record, errs, err = engine.Submit()
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Equal(t, 1000, record.Subtotal)
}

func TestEngineErrorsCopied(t *testing.T) {
	c, engine := newTestEngine(t)
	c.AddItem(sweets, 1)
	require.NoError(t, engine.Open())

	_, errs, err := engine.Submit()
	require.NoError(t, err)
	require.NotEmpty(t, errs)

	// изменение возвращенных map не задевает состояние формы
	delete(errs, "name")
	require.Contains(t, engine.Errors(), "name")

	got := engine.Errors()
	delete(got, "phone")
	require.Contains(t, engine.Errors(), "phone")
}

func TestEngineSubmitScenario(t *testing.T) {
	c, engine := newTestEngine(t)

	// товар 500, количество 3
	c.AddItem(sweets, 3)
	require.NoError(t, engine.Open())

	// количество меняется на 1 — сумма 500
	c.UpdateQuantity(sweets.ID, 1)
	require.Equal(t, 500, c.Subtotal())

	// доставка почтой — итог 850
	draft := validDraft()
	draft.Delivery.Type = model.DeliveryPost
	draft.Delivery.PostalCode = "123456"
	require.NoError(t, engine.SetCustomer(draft.Customer))
	require.NoError(t, engine.SetDelivery(draft.Delivery))
	require.NoError(t, engine.SetPayment(model.PaymentOnline))
	require.Equal(t, 850, engine.GrandTotal())

	record, errs, err := engine.Submit()
	require.NoError(t, err)
	require.Empty(t, errs)

	// снимок заказа
	require.Equal(t, 500, record.Subtotal)
	require.Equal(t, 350, record.DeliveryCost)
	require.Equal(t, 850, record.Total)
	require.Len(t, record.Items, 1)
	require.Equal(t, 1, record.Items[0].Quantity)
	require.Equal(t, model.PaymentOnline, record.Draft.Payment)
	require.True(t, ordernum.Valid(record.Number))
	require.False(t, record.CreatedAt.IsZero())

	// корзина пуста, черновик сброшен, форма закрыта
	require.True(t, c.Empty())
	require.Equal(t, model.DefaultDraft(), engine.Draft())
	require.False(t, engine.IsOpen())
}

func TestEngineCancel(t *testing.T) {
	c, engine := newTestEngine(t)
	c.AddItem(sweets, 2)
	require.NoError(t, engine.Open())

	draft := validDraft()
	require.NoError(t, engine.SetCustomer(draft.Customer))

	engine.Cancel()

	// форма закрыта, черновик отброшен, корзина не тронута
	require.False(t, engine.IsOpen())
	require.Equal(t, model.DefaultDraft(), engine.Draft())
	require.Equal(t, 2, c.QuantityOf(sweets.ID))
}
