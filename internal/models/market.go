package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a generic order as any broker would report it.
type Order struct {
	ID             string          `json:"id"`
	Symbol         string          `json:"symbol"`
	Qty            decimal.Decimal `json:"qty"`
	Side           string          `json:"side"`   // buy, sell
	Type           string          `json:"type"`   // market only in this system
	TimeInForce    string          `json:"time_in_force"`
	Status         string          `json:"status"` // new, filled, canceled, rejected
	FilledAvgPrice decimal.Decimal `json:"filled_avg_price"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Clock represents the market open/close status.
type Clock struct {
	Timestamp time.Time
	IsOpen    bool
	NextOpen  time.Time
	NextClose time.Time
}

// Asset represents a tradable instrument on the reference exchange.
type Asset struct {
	Symbol   string
	Name     string
	Exchange string
	Status   string // active, inactive
	Tradable bool
}
