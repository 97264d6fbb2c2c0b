package models

import (
	"strconv"
	"time"
)

// Product is a row of the remote product catalog. Read-only, fetched fresh
// on every search.
type Product struct {
	Name      string  `json:"nombreProducto" gorm:"column:nombreProducto;primaryKey"`
	UnitValue float64 `json:"valor" gorm:"column:valor"`
}

func (Product) TableName() string {
	return "productos"
}

// FaqEntry is a row of the remote FAQ table.
type FaqEntry struct {
	Question string `json:"pregunta" gorm:"column:pregunta;primaryKey"`
	Answer   string `json:"respuesta" gorm:"column:respuesta"`
}

func (FaqEntry) TableName() string {
	return "faq"
}

// Order is the header of an in-progress or finalized order. The column
// names follow the remote backend tables (enc_pedido / pedido).
type Order struct {
	OrderID  string      `json:"pedidoid" gorm:"column:pedidoid;primaryKey"`
	Customer string      `json:"cliente" gorm:"column:cliente"`
	Address  string      `json:"direccion" gorm:"column:direccion"`
	Phone    string      `json:"celular" gorm:"column:celular"`
	Date     string      `json:"fecha" gorm:"column:fecha"`
	Total    float64     `json:"enc_total" gorm:"column:enc_total"`
	Items    []OrderItem `json:"items" gorm:"-"`
}

func (Order) TableName() string {
	return "enc_pedido"
}

// OrderItem is one detail line of an order. LineValue is always
// Quantity × UnitValue.
type OrderItem struct {
	OrderID     string  `json:"pedidoid" gorm:"column:pedidoid"`
	Date        string  `json:"fecha" gorm:"column:fecha"`
	ProductName string  `json:"nombreProducto" gorm:"column:nombreProducto"`
	Quantity    int     `json:"cantidadProducto" gorm:"column:cantidadProducto"`
	UnitValue   float64 `json:"valor_unit" gorm:"column:valor_unit"`
	LineValue   float64 `json:"valor" gorm:"column:valor"`
}

func (OrderItem) TableName() string {
	return "pedido"
}

// NewOrder creates an empty order. The order id is the creation timestamp
// in milliseconds, which is what the backend tables key on.
func NewOrder() *Order {
	now := time.Now()
	return &Order{
		OrderID: strconv.FormatInt(now.UnixMilli(), 10),
		Date:    now.Format("2006-01-02"),
	}
}

// AddItem appends a detail line and keeps Total in sync with the sum of
// the line values.
func (o *Order) AddItem(product Product, quantity int) OrderItem {
	item := OrderItem{
		OrderID:     o.OrderID,
		Date:        o.Date,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitValue:   product.UnitValue,
		LineValue:   product.UnitValue * float64(quantity),
	}
	o.Items = append(o.Items, item)
	o.Total += item.LineValue
	return item
}
