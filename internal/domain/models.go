package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User пользователь текущей сессии
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// Request складская заявка оператора (приемка, отгрузка, инвентаризация)
type Request struct {
	ID           int64         `json:"id"`
	RequestType  RequestType   `json:"request_type"`
	Status       RequestStatus `json:"status"`
	ContractorID *int64        `json:"contractor_id"`
	OperatorID   *int64        `json:"operator_id"`
	Notes        *string       `json:"notes"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Product позиция каталога
type Product struct {
	ID         int64           `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
	SupplierID *int64          `json:"supplier_id"`
	Status     ProductStatus   `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// OwnedBy проверяет, что товар заведён указанным поставщиком
func (p Product) OwnedBy(supplierID int64) bool {
	return p.SupplierID != nil && *p.SupplierID == supplierID
}

// CartItem строка корзины. Товар копируется в момент добавления.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
}

// Subtotal стоимость строки
func (c CartItem) Subtotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(c.Quantity))
}

// OrderItem позиция в заказе (снимок строки корзины)
type OrderItem struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Order сущность заказа
type Order struct {
	ID          int64           `json:"id"`
	ClientID    int64           `json:"client_id"`
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItem     `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Contractor контрагент: поставщик или покупатель
type Contractor struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Kind      ContractorKind `json:"kind"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
}

// Zone складская зона
type Zone struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int64  `json:"capacity"`
	Occupied    int64  `json:"occupied"`
}

// Free свободная вместимость зоны
func (z Zone) Free() int64 {
	if z.Occupied >= z.Capacity {
		return 0
	}
	return z.Capacity - z.Occupied
}
