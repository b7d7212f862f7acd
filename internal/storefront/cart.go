// Package storefront реализует покупательскую сессию витрины: корзину,
// машину состояний оформления и передачу оплаты внешнему депозит-виджету.
package storefront

import "github.com/linemk/tuuze-market/internal/domain/models"

// CartItem связывает товар с запрошенным количеством. Живёт только в памяти
// сессии покупателя и никогда не сохраняется
type CartItem struct {
	Product  *models.Product
	Quantity int
}

// Cart — корзина покупателя. Не потокобезопасна: сессия однопоточная,
// мутации приходят последовательно из обработчиков событий
type Cart struct {
	items []*CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add добавляет одну единицу товара; если товар уже в корзине,
// увеличивается количество существующей позиции (слияние по id)
func (c *Cart) Add(product *models.Product) {
	for _, item := range c.items {
		if item.Product.ID == product.ID {
			item.Quantity++
			return
		}
	}
	c.items = append(c.items, &CartItem{Product: product, Quantity: 1})
}

// Remove убирает позицию целиком по идентификатору товара.
func (c *Cart) Remove(productID string) {
	for i, item := range c.items {
		if item.Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Items возвращает позиции корзины в порядке добавления.
func (c *Cart) Items() []*CartItem {
	return c.items
}

// Total — сумма price×quantity по всем позициям. Производное значение,
// пересчитывается при каждом вызове и нигде не кэшируется
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// Count — суммарное количество единиц товара в корзине.
func (c *Cart) Count() int {
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// Clear опустошает корзину (завершение оформления или перезагрузка страницы).
func (c *Cart) Clear() {
	c.items = nil
}
