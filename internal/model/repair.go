package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type RepairStatus string

const (
	RepairReceived   RepairStatus = "received"
	RepairInProgress RepairStatus = "in_progress"
	RepairReady      RepairStatus = "ready"
	RepairDelivered  RepairStatus = "delivered"
)

var repairStatusOrder = map[RepairStatus]int{
	RepairReceived:   0,
	RepairInProgress: 1,
	RepairReady:      2,
	RepairDelivered:  3,
}

// CanMoveTo reports whether a repair may go from s to next. Status only moves forward.
func (s RepairStatus) CanMoveTo(next RepairStatus) bool {
	from, ok := repairStatusOrder[s]
	if !ok {
		return false
	}
	to, ok := repairStatusOrder[next]
	return ok && to > from
}

type Repair struct {
	ID            int64           `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Item          string          `json:"item"`
	Description   string          `json:"description"`
	Gram          decimal.Decimal `json:"gram"`
	Price         decimal.Decimal `json:"price"`
	Currency      Currency        `json:"currency"`
	Status        RepairStatus    `json:"status"`
	ReceivedAt    time.Time       `json:"received_at"`
	DeliveredAt   *time.Time      `json:"delivered_at,omitempty"`
}

type RepairRequest struct {
	CustomerName  string          `json:"customer_name" binding:"required"`
	CustomerPhone string          `json:"customer_phone"`
	Item          string          `json:"item" binding:"required"`
	Description   string          `json:"description"`
	Gram          decimal.Decimal `json:"gram"`
	Price         decimal.Decimal `json:"price"`
	Currency      Currency        `json:"currency" binding:"required,currency"`
}

type RepairStatusRequest struct {
	Status RepairStatus `json:"status" binding:"required,oneof=received in_progress ready delivered"`
}
