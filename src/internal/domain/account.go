package domain

import "github.com/shopspring/decimal"

type Account struct {
	Number  string
	Type    string
	Balance decimal.Decimal
}
