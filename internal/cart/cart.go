package cart

import "github.com/sweetlavka/storefront/internal/model"

// Cart — корзина посетителя. Позиции хранятся в порядке добавления,
// не больше одной позиции на товар.
type Cart struct {
	items []model.LineItem
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem добавляет товар в корзину. Если позиция уже есть,
// ее количество увеличивается на quantity, иначе создается новая позиция.
// Значение quantity не проверяется: вызывающая сторона передает >= 1.
func (c *Cart) AddItem(product model.Product, quantity int) {
	for i := range c.items {
		if c.items[i].ID == product.ID {
			c.items[i].Quantity += quantity
			return
		}
	}

	c.items = append(c.items, model.LineItem{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Image:    product.Image,
		Category: product.Category,
		Quantity: quantity,
	})
}

// UpdateQuantity устанавливает количество позиции (не прибавляет).
// Количество <= 0 означает удаление позиции.
// Если позиции нет, ничего не происходит.
func (c *Cart) UpdateQuantity(id int, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(id)
		return
	}

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem удаляет позицию, если она есть.
func (c *Cart) RemoveItem(id int) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear очищает корзину.
func (c *Cart) Clear() {
	c.items = nil
}

// Items возвращает копию позиций: для отображения и для снимка заказа.
func (c *Cart) Items() []model.LineItem {
	items := make([]model.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Subtotal — стоимость товаров без доставки.
// Считается заново при каждом обращении.
func (c *Cart) Subtotal() int {
	var sum int
	for _, item := range c.items {
		sum += item.Price * item.Quantity
	}
	return sum
}

// ItemCount — суммарное количество товаров (не число позиций).
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Contains(id int) bool {
	for _, item := range c.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// QuantityOf возвращает количество позиции, 0 — если позиции нет.
func (c *Cart) QuantityOf(id int) int {
	for _, item := range c.items {
		if item.ID == id {
			return item.Quantity
		}
	}
	return 0
}

func (c *Cart) Empty() bool {
	return len(c.items) == 0
}
