package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Plant struct {
	ID               uuid.UUID       `json:"id"`
	CategoryID       uuid.UUID       `json:"categoryId"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	Description      string          `json:"description"`
	CareInstructions string          `json:"careInstructions"`
	ImageURL         string          `json:"imageUrl"`
	StockQty         int32           `json:"stockQty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

type CartItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	PlantID   uuid.UUID `json:"plantId"`
	Quantity  int32     `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartLine is a cart item joined with the plant it references.
type CartLine struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	PlantID       uuid.UUID       `json:"plantId"`
	Quantity      int32           `json:"quantity"`
	CreatedAt     time.Time       `json:"createdAt"`
	PlantName     string          `json:"plantName"`
	PlantPrice    decimal.Decimal `json:"plantPrice"`
	PlantImageURL string          `json:"plantImageUrl"`
	PlantStockQty int32           `json:"plantStockQty"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress"`
	Status          string          `json:"status"`
	StatusUpdatedAt time.Time       `json:"statusUpdatedAt"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type OrderLine struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"orderId"`
	PlantID   uuid.UUID       `json:"plantId"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// OrderLineDetail is an order line joined with the plant's display fields.
type OrderLineDetail struct {
	ID            uuid.UUID       `json:"id"`
	OrderID       uuid.UUID       `json:"orderId"`
	PlantID       uuid.UUID       `json:"plantId"`
	Quantity      int32           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	PlantName     string          `json:"plantName"`
	PlantImageURL string          `json:"plantImageUrl"`
}

type Payment struct {
	ID            uuid.UUID       `json:"id"`
	OrderID       uuid.UUID       `json:"orderId"`
	UserID        uuid.UUID       `json:"userId"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transactionId"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type OutboxEvent struct {
	ID          int64      `json:"id"`
	AggregateID uuid.UUID  `json:"aggregateId"`
	EventType   string     `json:"eventType"`
	Payload     []byte     `json:"payload"`
	Attempts    int32      `json:"attempts"`
	LastError   string     `json:"lastError"`
	CreatedAt   time.Time  `json:"createdAt"`
	PublishedAt *time.Time `json:"publishedAt"`
}
