package issuance

import "strings"

type UnitType string

const (
	UnitTypeFungible    UnitType = "FUNGIBLE_COMMON"
	UnitTypeNonFungible UnitType = "NON_FUNGIBLE_UNIQUE"
)

type SupplyType string

const (
	SupplyTypeFinite   SupplyType = "FINITE"
	SupplyTypeInfinite SupplyType = "INFINITE"
)

// Status is the ledger's receipt status for a submitted operation.
type Status string

const (
	StatusSuccess           Status = "SUCCESS"
	StatusAlreadyAssociated Status = "TOKEN_ALREADY_ASSOCIATED_TO_ACCOUNT"
)

// Succeeded reports whether the status represents the desired end state.
func (status Status) Succeeded() bool {
	return status == StatusSuccess || status == StatusAlreadyAssociated
}

// ClassHandle identifies a created asset class, e.g. a token ID "0.0.4821".
type ClassHandle string

func (handle ClassHandle) String() string {
	return string(handle)
}

// AccountRef pairs an account with the key that signs on its behalf.
type AccountRef struct {
	AccountID  string
	PrivateKey string
}

func (account AccountRef) isZero() bool {
	return strings.TrimSpace(account.AccountID) == "" && strings.TrimSpace(account.PrivateKey) == ""
}

// AssetClassSpec describes the class to create. The issuer doubles as
// treasury, so TreasuryAccountID is either empty or the issuer's account.
type AssetClassSpec struct {
	Name              string
	Symbol            string
	Memo              string
	UnitType          UnitType
	Decimals          uint32
	InitialSupply     uint64
	SupplyType        SupplyType
	MaxSupply         int64
	TreasuryAccountID string
	SupplyKey         string
}

// AssetUnit is one minted instance of a non-fungible class.
type AssetUnit struct {
	Class    ClassHandle
	Serial   int64
	Metadata []byte
}

// Balances maps account IDs to their unit count for one class.
type Balances map[string]uint64

type Config struct {
	Issuer    AccountRef
	Recipient AccountRef
	Class     AssetClassSpec
	Metadata  []byte

	// ReportFinalBalances reads balances again after the transfer. The read is
	// informational; a failure is logged and does not fail the run.
	ReportFinalBalances bool
}

type State string

const (
	StatePending      State = "pending"
	StateCreated      State = "created"
	StateMinted       State = "minted"
	StateAssociated   State = "associated"
	StateBalancesRead State = "balances_read"
	StateTransferred  State = "transferred"
)

type WorkflowResult struct {
	RunID             string
	State             State
	ClassHandle       ClassHandle
	Serial            int64
	Metadata          []byte
	AssociationStatus Status
	TransferStatus    Status
	BalancesBefore    Balances
	BalancesAfter     Balances
}
