package issuance

import (
	"math/big"
	"sort"

	"github.com/shopspring/decimal"
)

// Accounts returns the account IDs in a stable order.
func (balances Balances) Accounts() []string {
	accounts := make([]string, 0, len(balances))
	for accountID := range balances {
		accounts = append(accounts, accountID)
	}
	sort.Strings(accounts)
	return accounts
}

// Display renders an account's count scaled by the class decimals, e.g. 150
// with 2 decimals is "1.5". Non-fungible classes use 0 decimals.
func (balances Balances) Display(accountID string, decimals uint32) string {
	return FormatUnits(balances[accountID], decimals)
}

// FormatUnits renders a raw unit count with the given decimal precision.
func FormatUnits(count uint64, decimals uint32) string {
	amount := decimal.NewFromBigInt(new(big.Int).SetUint64(count), -int32(decimals))
	return amount.String()
}
