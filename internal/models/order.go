package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderActive    OrderStatus = "active"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderActive, OrderCancelled:
		return true
	}
	return false
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderActive, OrderCancelled},
	OrderActive:    {OrderCancelled},
}

// CanTransition reports whether an order may move from s to next.
// Cancelled is terminal.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

const (
	PaymentVodafoneCash = "vodafone_cash"
	PaymentInstapay     = "instapay"
	PaymentBinance      = "binance"
)

// Order is a checkout submitted from the storefront. Exactly one of VPSID
// and DedicatedID is set.
type Order struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`
	CustomerName  string     `gorm:"type:varchar(120);not null" json:"customerName"`
	PhoneNumber   string     `gorm:"type:varchar(30);not null;index" json:"phoneNumber"`
	PaymentMethod string     `gorm:"type:varchar(30);not null" json:"paymentMethod"`
	OS            string     `gorm:"column:os;type:varchar(20);not null;default:'linux'" json:"os"`

	VPSID       *uint `gorm:"column:vps_id;index" json:"vpsId"`
	DedicatedID *uint `gorm:"index" json:"dedicatedId"`

	ProductName     string         `gorm:"type:varchar(160)" json:"productName"`
	Price           float64        `gorm:"type:numeric(10,2)" json:"price"`
	ProductSnapshot datatypes.JSON `json:"productSnapshot"`

	PaymentImageURL string      `gorm:"type:text" json:"imageUrl,omitempty"`
	Notes           string      `gorm:"type:text" json:"notes,omitempty"`
	Description     string      `gorm:"type:text" json:"description"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o Order) ProductKind() ProductType {
	if o.DedicatedID != nil {
		return ProductTypeDedicated
	}
	return ProductTypeVPS
}

// All lists every model for auto-migration.
func All() []any {
	return []any{
		&User{},
		&VPS{},
		&Dedicated{},
		&Package{},
		&PackageItem{},
		&Promo{},
		&Order{},
	}
}
