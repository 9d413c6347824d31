package issuance

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type ledgerCall struct {
	Method  string
	Account string
	Class   ClassHandle
	Blobs   int
}

type nftKey struct {
	class  ClassHandle
	serial int64
}

type fakeClass struct {
	spec      AssetClassSpec
	minted    int64
	supplyKey string
}

// fakeLedger keeps class, ownership and association state in memory and
// checks signers the way the network would.
type fakeLedger struct {
	mu sync.Mutex

	calls        []ledgerCall
	nextTokenNum int64
	classes      map[ClassHandle]*fakeClass
	owners       map[nftKey]string
	associations map[string]map[ClassHandle]bool
	accountKeys  map[string]string

	createErr   error
	mintErr     error
	associateFn func(account AccountRef, class ClassHandle) (Status, error)
	balanceErr  map[string]error
	transferErr error
}

func newFakeLedger(accounts ...AccountRef) *fakeLedger {
	ledger := &fakeLedger{
		nextTokenNum: 5000,
		classes:      map[ClassHandle]*fakeClass{},
		owners:       map[nftKey]string{},
		associations: map[string]map[ClassHandle]bool{},
		accountKeys:  map[string]string{},
		balanceErr:   map[string]error{},
	}
	for _, account := range accounts {
		ledger.accountKeys[account.AccountID] = account.PrivateKey
	}
	return ledger
}

func (ledger *fakeLedger) record(call ledgerCall) {
	ledger.calls = append(ledger.calls, call)
}

func (ledger *fakeLedger) methods() []string {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	methods := make([]string, 0, len(ledger.calls))
	for _, call := range ledger.calls {
		methods = append(methods, call.Method)
	}
	return methods
}

func (ledger *fakeLedger) count(method string) int {
	total := 0
	for _, name := range ledger.methods() {
		if name == method {
			total++
		}
	}
	return total
}

func (ledger *fakeLedger) signerMatches(accountID string, key string) bool {
	expected, ok := ledger.accountKeys[accountID]
	return ok && expected == key
}

func (ledger *fakeLedger) CreateAssetClass(ctx context.Context, spec AssetClassSpec, treasury AccountRef) (ClassHandle, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	ledger.record(ledgerCall{Method: "createAssetClass", Account: treasury.AccountID})

	if ledger.createErr != nil {
		return "", ledger.createErr
	}
	if !ledger.signerMatches(spec.TreasuryAccountID, treasury.PrivateKey) {
		return "", errors.New("INVALID_SIGNATURE")
	}

	ledger.nextTokenNum++
	class := ClassHandle(fmt.Sprintf("0.0.%d", ledger.nextTokenNum))
	ledger.classes[class] = &fakeClass{spec: spec, supplyKey: spec.SupplyKey}
	ledger.associations[spec.TreasuryAccountID] = map[ClassHandle]bool{class: true}
	return class, nil
}

func (ledger *fakeLedger) Mint(ctx context.Context, class ClassHandle, metadata [][]byte, supplyKey string) ([]int64, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	ledger.record(ledgerCall{Method: "mint", Class: class, Blobs: len(metadata)})

	if ledger.mintErr != nil {
		return nil, ledger.mintErr
	}
	state, ok := ledger.classes[class]
	if !ok {
		return nil, errors.New("INVALID_TOKEN_ID")
	}
	if state.supplyKey != supplyKey {
		return nil, errors.New("INVALID_SIGNATURE")
	}
	if state.spec.SupplyType == SupplyTypeFinite && state.minted+int64(len(metadata)) > state.spec.MaxSupply {
		return nil, errors.New("TOKEN_MAX_SUPPLY_REACHED")
	}

	serials := make([]int64, 0, len(metadata))
	for range metadata {
		state.minted++
		ledger.owners[nftKey{class: class, serial: state.minted}] = state.spec.TreasuryAccountID
		serials = append(serials, state.minted)
	}
	return serials, nil
}

func (ledger *fakeLedger) Associate(ctx context.Context, account AccountRef, class ClassHandle) (Status, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	ledger.record(ledgerCall{Method: "associate", Account: account.AccountID, Class: class})

	if ledger.associateFn != nil {
		return ledger.associateFn(account, class)
	}
	if !ledger.signerMatches(account.AccountID, account.PrivateKey) {
		return "INVALID_SIGNATURE", errors.New("INVALID_SIGNATURE")
	}
	if ledger.associations[account.AccountID][class] {
		return StatusAlreadyAssociated, ErrAlreadyAssociated
	}
	if ledger.associations[account.AccountID] == nil {
		ledger.associations[account.AccountID] = map[ClassHandle]bool{}
	}
	ledger.associations[account.AccountID][class] = true
	return StatusSuccess, nil
}

func (ledger *fakeLedger) QueryBalance(ctx context.Context, accountID string) (map[ClassHandle]uint64, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	ledger.record(ledgerCall{Method: "queryBalance", Account: accountID})

	if err := ledger.balanceErr[accountID]; err != nil {
		return nil, err
	}
	counts := map[ClassHandle]uint64{}
	for key, owner := range ledger.owners {
		if owner == accountID {
			counts[key.class]++
		}
	}
	return counts, nil
}

func (ledger *fakeLedger) TransferUnit(ctx context.Context, class ClassHandle, serial int64, from AccountRef, toAccountID string) (Status, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	ledger.record(ledgerCall{Method: "transferUnit", Account: toAccountID, Class: class})

	if ledger.transferErr != nil {
		return "", ledger.transferErr
	}
	key := nftKey{class: class, serial: serial}
	owner, ok := ledger.owners[key]
	if !ok {
		return "INVALID_NFT_ID", errors.New("INVALID_NFT_ID")
	}
	if owner != from.AccountID {
		return "SENDER_DOES_NOT_OWN_NFT_SERIAL_NO", errors.New("SENDER_DOES_NOT_OWN_NFT_SERIAL_NO")
	}
	if !ledger.signerMatches(from.AccountID, from.PrivateKey) {
		return "INVALID_SIGNATURE", errors.New("INVALID_SIGNATURE")
	}
	if !ledger.associations[toAccountID][class] {
		return "TOKEN_NOT_ASSOCIATED_TO_ACCOUNT", errors.New("TOKEN_NOT_ASSOCIATED_TO_ACCOUNT")
	}
	ledger.owners[key] = toAccountID
	return StatusSuccess, nil
}
