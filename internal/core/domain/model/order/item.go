package order

// Item is one line of an order as submitted by the client. Items are copied into
// the order at creation and never change afterwards.
type Item struct {
	id       string
	name     string
	quantity int
	price    float64
}

// NewItem builds an order line. Lines are taken as submitted; catalog lookups are
// not performed by the order service.
func NewItem(id, name string, quantity int, price float64) Item {
	return Item{
		id:       id,
		name:     name,
		quantity: quantity,
		price:    price,
	}
}

// ID returns the menu item identifier.
func (i Item) ID() string {
	return i.id
}

// Name returns the display name of the item.
func (i Item) Name() string {
	return i.name
}

// Quantity returns how many units were ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// Price returns the unit price.
func (i Item) Price() float64 {
	return i.price
}

// Subtotal is price × quantity.
func (i Item) Subtotal() float64 {
	return i.price * float64(i.quantity)
}

// TotalOf sums the subtotals of items.
func TotalOf(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}
