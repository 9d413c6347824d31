package hts

import (
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/route-2/hedera-dump/pkg/issuance"
)

type TokenCreateTxParams struct {
	Spec           issuance.AssetClassSpec
	Treasury       hedera.AccountID
	SupplyKey      hedera.Key
	AdminKey       hedera.Key
	AutoRenewOwner *hedera.AccountID
}

// BuildTokenCreateTx maps an asset class spec onto a token create transaction.
func BuildTokenCreateTx(params TokenCreateTxParams) (*hedera.TokenCreateTransaction, error) {
	spec := params.Spec
	if strings.TrimSpace(spec.Name) == "" {
		return nil, fmt.Errorf("token name is required")
	}
	if strings.TrimSpace(spec.Symbol) == "" {
		return nil, fmt.Errorf("token symbol is required")
	}
	if params.SupplyKey == nil {
		return nil, fmt.Errorf("supply key is required")
	}

	tokenType, err := toTokenType(spec.UnitType)
	if err != nil {
		return nil, err
	}
	supplyType, err := toSupplyType(spec.SupplyType)
	if err != nil {
		return nil, err
	}

	transaction := hedera.NewTokenCreateTransaction().
		SetTokenName(strings.TrimSpace(spec.Name)).
		SetTokenSymbol(strings.TrimSpace(spec.Symbol)).
		SetTokenType(tokenType).
		SetDecimals(uint(spec.Decimals)).
		SetInitialSupply(spec.InitialSupply).
		SetTreasuryAccountID(params.Treasury).
		SetSupplyType(supplyType).
		SetSupplyKey(params.SupplyKey)

	if supplyType == hedera.TokenSupplyTypeFinite {
		transaction.SetMaxSupply(spec.MaxSupply)
	}
	if strings.TrimSpace(spec.Memo) != "" {
		transaction.SetTokenMemo(spec.Memo)
	}
	if params.AdminKey != nil {
		transaction.SetAdminKey(params.AdminKey)
	}
	if params.AutoRenewOwner != nil {
		transaction.SetAutoRenewAccount(*params.AutoRenewOwner)
	}

	return transaction, nil
}

// BuildTokenMintTx mints one serial per metadata blob.
func BuildTokenMintTx(tokenID string, metadata [][]byte) (*hedera.TokenMintTransaction, error) {
	parsedTokenID, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	if len(metadata) == 0 {
		return nil, fmt.Errorf("at least one metadata blob is required")
	}
	for index, blob := range metadata {
		if len(blob) == 0 {
			return nil, fmt.Errorf("metadata blob %d is empty", index)
		}
	}

	return hedera.NewTokenMintTransaction().
		SetTokenID(parsedTokenID).
		SetMetadatas(metadata), nil
}

// BuildTokenAssociateTx associates accountID with tokenID.
func BuildTokenAssociateTx(accountID string, tokenID string) (*hedera.TokenAssociateTransaction, error) {
	parsedAccountID, err := hedera.AccountIDFromString(strings.TrimSpace(accountID))
	if err != nil {
		return nil, fmt.Errorf("invalid account ID: %w", err)
	}
	parsedTokenID, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}

	return hedera.NewTokenAssociateTransaction().
		SetAccountID(parsedAccountID).
		SetTokenIDs(parsedTokenID), nil
}

// BuildNftTransferTx moves one serial of tokenID from sender to receiver.
func BuildNftTransferTx(
	tokenID string,
	serial int64,
	senderAccountID string,
	receiverAccountID string,
) (*hedera.TransferTransaction, error) {
	parsedTokenID, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	if serial <= 0 {
		return nil, fmt.Errorf("serial must be positive")
	}
	sender, err := hedera.AccountIDFromString(strings.TrimSpace(senderAccountID))
	if err != nil {
		return nil, fmt.Errorf("invalid sender account ID: %w", err)
	}
	receiver, err := hedera.AccountIDFromString(strings.TrimSpace(receiverAccountID))
	if err != nil {
		return nil, fmt.Errorf("invalid receiver account ID: %w", err)
	}
	if sender.String() == receiver.String() {
		return nil, fmt.Errorf("sender and receiver must differ")
	}

	return hedera.NewTransferTransaction().
		AddNftTransfer(hedera.NftID{TokenID: parsedTokenID, SerialNumber: serial}, sender, receiver), nil
}

func parseTokenID(tokenID string) (hedera.TokenID, error) {
	trimmed := strings.TrimSpace(tokenID)
	if trimmed == "" {
		return hedera.TokenID{}, fmt.Errorf("token ID is required")
	}
	parsed, err := hedera.TokenIDFromString(trimmed)
	if err != nil {
		return hedera.TokenID{}, fmt.Errorf("invalid token ID: %w", err)
	}
	return parsed, nil
}

func toTokenType(unitType issuance.UnitType) (hedera.TokenType, error) {
	switch unitType {
	case issuance.UnitTypeNonFungible:
		return hedera.TokenTypeNonFungibleUnique, nil
	case issuance.UnitTypeFungible:
		return hedera.TokenTypeFungibleCommon, nil
	}
	return hedera.TokenTypeFungibleCommon, fmt.Errorf("unsupported unit type %q", unitType)
}

func toSupplyType(supplyType issuance.SupplyType) (hedera.TokenSupplyType, error) {
	switch supplyType {
	case issuance.SupplyTypeFinite:
		return hedera.TokenSupplyTypeFinite, nil
	case issuance.SupplyTypeInfinite:
		return hedera.TokenSupplyTypeInfinite, nil
	}
	return hedera.TokenSupplyTypeInfinite, fmt.Errorf("unsupported supply type %q", supplyType)
}
