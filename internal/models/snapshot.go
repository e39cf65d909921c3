package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot represents the account balances recorded for one week
type BalanceSnapshot struct {
	ID           int64           `json:"id"`
	SnapshotDate time.Time       `json:"snapshot_date"`
	Checking     decimal.Decimal `json:"checking"`
	Savings      decimal.Decimal `json:"savings"`
	Investments  decimal.Decimal `json:"investments"`
	Debt         decimal.Decimal `json:"debt"`
	Net          decimal.Decimal `json:"net"` // Checking + Savings + Investments - Debt
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
