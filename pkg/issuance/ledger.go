package issuance

import "context"

// LedgerClient is the capability the workflow needs from a ledger network.
// Implementations own submission, signing, receipts and any retry policy.
type LedgerClient interface {
	// CreateAssetClass submits spec signed by the treasury and returns the new class.
	CreateAssetClass(ctx context.Context, spec AssetClassSpec, treasury AccountRef) (ClassHandle, error)

	// Mint creates one unit per metadata blob, signed by supplyKey, and returns
	// the new serial numbers in order.
	Mint(ctx context.Context, class ClassHandle, metadata [][]byte, supplyKey string) ([]int64, error)

	// Associate records that account may hold units of class. It is signed by
	// the account itself. An existing association yields ErrAlreadyAssociated.
	Associate(ctx context.Context, account AccountRef, class ClassHandle) (Status, error)

	// QueryBalance returns the unit count per class held by accountID.
	QueryBalance(ctx context.Context, accountID string) (map[ClassHandle]uint64, error)

	// TransferUnit moves one serial of class from the holder to toAccountID,
	// signed by the holder.
	TransferUnit(ctx context.Context, class ClassHandle, serial int64, from AccountRef, toAccountID string) (Status, error)
}
