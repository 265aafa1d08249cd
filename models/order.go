package models

import (
	"strings"
	"time"
)

// OrderStatus represents all possible states of a marketplace order
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusAccepted  OrderStatus = "ACCEPTED"
	StatusCooking   OrderStatus = "COOKING"
	StatusOnTheWay  OrderStatus = "ON_THE_WAY"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// statusAliases maps the legacy vocabulary still sent by older clients
// onto the canonical enum. Parsing happens at the boundary only; stored
// rows always carry canonical values.
var statusAliases = map[string]OrderStatus{
	"PLACED":           StatusPending,
	"CONFIRMED":        StatusAccepted,
	"PREPARING":        StatusCooking,
	"OUT_FOR_DELIVERY": StatusOnTheWay,
}

// ParseStatus normalizes a status string to the canonical enum.
// Returns false for anything that is neither canonical nor a known alias.
func ParseStatus(s string) (OrderStatus, bool) {
	v := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch v {
	case StatusPending, StatusAccepted, StatusCooking, StatusOnTheWay, StatusDelivered, StatusCancelled:
		return v, true
	}
	if canonical, ok := statusAliases[string(v)]; ok {
		return canonical, true
	}
	return "", false
}

// IsTerminal reports whether no further transition is accepted from s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	OrderNumber     string      `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerID      uint        `json:"customer_id" gorm:"not null"`
	Customer        User        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ProviderID      uint        `json:"provider_id" gorm:"not null"`
	Provider        Provider    `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Status          OrderStatus `json:"status" gorm:"not null;default:'PENDING'"`
	TotalAmount     float64     `json:"total_amount"`
	DeliveryFee     float64     `json:"delivery_fee"`
	DeliveryAddress string      `json:"delivery_address" gorm:"not null"`
	Notes           string      `json:"notes"`
	Items           []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory   []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	OrderID  uint    `json:"order_id" gorm:"not null"`
	MealID   uint    `json:"meal_id" gorm:"not null"`
	Meal     Meal    `json:"meal,omitempty" gorm:"foreignKey:MealID"`
	Quantity int     `json:"quantity" gorm:"not null"`
	Price    float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	Name     string  `json:"name"`                  // snapshot name
}

// OrderStatusHistory tracks every status change for the audit trail.
// Admin overrides carry the Override flag so they are never mistaken
// for a normal provider-driven transition.
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	ActorRole  UserRole    `json:"actor_role"`
	Override   bool        `json:"override" gorm:"default:false"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
