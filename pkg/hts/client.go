package hts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/route-2/hedera-dump/pkg/issuance"
	"github.com/route-2/hedera-dump/pkg/mirror"
	"github.com/route-2/hedera-dump/pkg/shared"
)

const (
	defaultMirrorPollInterval = 2 * time.Second
	defaultMirrorRetries      = 15
)

var _ issuance.LedgerClient = (*Client)(nil)

type Client struct {
	hederaClient       *hedera.Client
	mirrorClient       *mirror.Client
	operatorAccountID  hedera.AccountID
	operatorPrivateKey hedera.PrivateKey
	network            string
	pollInterval       time.Duration

	mu                sync.Mutex
	lastTransactionID string
}

// NewClient creates a token service client. The operator pays for every
// transaction; role signatures are added per call.
func NewClient(config ClientConfig) (*Client, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(config.OperatorAccountID) == "" {
		return nil, fmt.Errorf("operator account ID is required")
	}
	if strings.TrimSpace(config.OperatorPrivateKey) == "" {
		return nil, fmt.Errorf("operator private key is required")
	}

	accountID, err := shared.ParseAccountID(config.OperatorAccountID)
	if err != nil {
		return nil, fmt.Errorf("invalid operator account ID: %w", err)
	}
	privateKey, err := shared.ParsePrivateKey(config.OperatorPrivateKey)
	if err != nil {
		return nil, err
	}

	hederaClient, err := shared.NewHederaClient(network)
	if err != nil {
		return nil, err
	}
	hederaClient.SetOperator(accountID, privateKey)

	mirrorClient, err := mirror.NewClient(mirror.Config{
		Network: network,
		BaseURL: config.MirrorBaseURL,
		APIKey:  config.MirrorAPIKey,
	})
	if err != nil {
		hederaClient.Close()
		return nil, err
	}

	pollInterval := config.MirrorPollInterval
	if pollInterval <= 0 {
		pollInterval = defaultMirrorPollInterval
	}

	return &Client{
		hederaClient:       hederaClient,
		mirrorClient:       mirrorClient,
		operatorAccountID:  accountID,
		operatorPrivateKey: privateKey,
		network:            network,
		pollInterval:       pollInterval,
	}, nil
}

// MirrorClient returns the configured mirror client.
func (c *Client) MirrorClient() *mirror.Client {
	return c.mirrorClient
}

// OperatorAccountID returns the paying account.
func (c *Client) OperatorAccountID() string {
	return c.operatorAccountID.String()
}

// Network returns the normalized network name.
func (c *Client) Network() string {
	return c.network
}

// Close releases the underlying network connections.
func (c *Client) Close() error {
	return c.hederaClient.Close()
}

// GenerateSupplyKey returns a fresh ED25519 private key for a new class.
func GenerateSupplyKey() (string, error) {
	supplyKey, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		return "", fmt.Errorf("failed to generate supply key: %w", err)
	}
	return supplyKey.String(), nil
}

// CreateAssetClass creates the token with the treasury signing.
func (c *Client) CreateAssetClass(
	ctx context.Context,
	spec issuance.AssetClassSpec,
	treasury issuance.AccountRef,
) (issuance.ClassHandle, error) {
	treasuryID, treasuryKey, err := parseAccountRef(treasury)
	if err != nil {
		return "", err
	}
	supplyKey, err := shared.ParsePrivateKey(spec.SupplyKey)
	if err != nil {
		return "", fmt.Errorf("invalid supply key: %w", err)
	}

	transaction, err := BuildTokenCreateTx(TokenCreateTxParams{
		Spec:           spec,
		Treasury:       treasuryID,
		SupplyKey:      supplyKey.PublicKey(),
		AutoRenewOwner: &treasuryID,
	})
	if err != nil {
		return "", err
	}

	frozenTransaction, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return "", fmt.Errorf("failed to freeze token create transaction: %w", err)
	}
	frozenTransaction = frozenTransaction.Sign(treasuryKey)

	receipt, err := c.execute(ctx, "token create", frozenTransaction)
	if err != nil {
		return "", err
	}
	if receipt.TokenID == "" {
		return "", fmt.Errorf("token create receipt did not include token ID")
	}

	return issuance.ClassHandle(receipt.TokenID), nil
}

// Mint mints one serial per blob, signed by the supply key.
func (c *Client) Mint(
	ctx context.Context,
	class issuance.ClassHandle,
	metadata [][]byte,
	supplyKey string,
) ([]int64, error) {
	parsedSupplyKey, err := shared.ParsePrivateKey(supplyKey)
	if err != nil {
		return nil, fmt.Errorf("invalid supply key: %w", err)
	}

	transaction, err := BuildTokenMintTx(class.String(), metadata)
	if err != nil {
		return nil, err
	}

	frozenTransaction, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return nil, fmt.Errorf("failed to freeze mint transaction: %w", err)
	}
	frozenTransaction = frozenTransaction.Sign(parsedSupplyKey)

	receipt, err := c.execute(ctx, "mint", frozenTransaction)
	if err != nil {
		return nil, err
	}
	if len(receipt.SerialNumbers) != len(metadata) {
		return nil, fmt.Errorf("mint receipt returned %d serials for %d metadata blobs", len(receipt.SerialNumbers), len(metadata))
	}

	return receipt.SerialNumbers, nil
}

// Associate associates the account with the class, signed by that account.
// An existing association returns StatusAlreadyAssociated with
// issuance.ErrAlreadyAssociated.
func (c *Client) Associate(
	ctx context.Context,
	account issuance.AccountRef,
	class issuance.ClassHandle,
) (issuance.Status, error) {
	_, accountKey, err := parseAccountRef(account)
	if err != nil {
		return "", err
	}

	transaction, err := BuildTokenAssociateTx(account.AccountID, class.String())
	if err != nil {
		return "", err
	}

	frozenTransaction, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return "", fmt.Errorf("failed to freeze associate transaction: %w", err)
	}
	frozenTransaction = frozenTransaction.Sign(accountKey)

	receipt, err := c.execute(ctx, "token associate", frozenTransaction)
	if err != nil {
		if status, ok := statusFromError(err); ok {
			if status == hedera.StatusTokenAlreadyAssociatedToAccount {
				return issuance.StatusAlreadyAssociated, fmt.Errorf("%w: %v", issuance.ErrAlreadyAssociated, err)
			}
			return issuance.Status(status.String()), err
		}
		return "", err
	}

	return issuance.Status(receipt.Status), nil
}

// QueryBalance returns the account's balance of every token it holds, as
// reported by the mirror node. It first waits for the mirror node to index
// the last transaction this client committed.
func (c *Client) QueryBalance(ctx context.Context, accountID string) (map[issuance.ClassHandle]uint64, error) {
	if err := c.waitForMirror(ctx); err != nil {
		return nil, err
	}

	relationships, err := c.mirrorClient.GetAccountTokens(ctx, accountID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to query token balances for %s: %w", accountID, err)
	}

	balances := make(map[issuance.ClassHandle]uint64, len(relationships))
	for _, relationship := range relationships {
		if relationship.Balance < 0 {
			continue
		}
		balances[issuance.ClassHandle(relationship.TokenID)] = uint64(relationship.Balance)
	}
	return balances, nil
}

// TransferUnit transfers one NFT serial, signed by the current holder.
func (c *Client) TransferUnit(
	ctx context.Context,
	class issuance.ClassHandle,
	serial int64,
	from issuance.AccountRef,
	toAccountID string,
) (issuance.Status, error) {
	_, fromKey, err := parseAccountRef(from)
	if err != nil {
		return "", err
	}

	transaction, err := BuildNftTransferTx(class.String(), serial, from.AccountID, toAccountID)
	if err != nil {
		return "", err
	}

	frozenTransaction, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return "", fmt.Errorf("failed to freeze transfer transaction: %w", err)
	}
	frozenTransaction = frozenTransaction.Sign(fromKey)

	receipt, err := c.execute(ctx, "nft transfer", frozenTransaction)
	if err != nil {
		if status, ok := statusFromError(err); ok {
			return issuance.Status(status.String()), err
		}
		return "", err
	}

	return issuance.Status(receipt.Status), nil
}

// WaitForNFTHolder polls the mirror node until serial of class is held by
// accountID. Mirror data trails consensus, so a fresh transfer may need a
// few polls before it shows up.
func (c *Client) WaitForNFTHolder(
	ctx context.Context,
	class issuance.ClassHandle,
	serial int64,
	accountID string,
	maxRetries int,
) (*mirror.NFT, error) {
	if maxRetries <= 0 {
		maxRetries = 10
	}
	expected := strings.TrimSpace(accountID)

	for attempt := 0; attempt < maxRetries; attempt++ {
		nft, err := c.mirrorClient.GetNFT(ctx, class.String(), serial)
		if err == nil && nft != nil && nft.AccountID == expected {
			return nft, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}

	return nil, fmt.Errorf("mirror node did not report %s serial %d held by %s", class, serial, expected)
}

func (c *Client) waitForMirror(ctx context.Context) error {
	c.mu.Lock()
	transactionID := c.lastTransactionID
	c.mu.Unlock()
	if transactionID == "" {
		return nil
	}

	for attempt := 0; attempt < defaultMirrorRetries; attempt++ {
		transaction, err := c.mirrorClient.GetTransaction(ctx, transactionID)
		if err == nil && transaction != nil {
			c.mu.Lock()
			if c.lastTransactionID == transactionID {
				c.lastTransactionID = ""
			}
			c.mu.Unlock()
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}

	return fmt.Errorf("mirror node did not index transaction %s", transactionID)
}

// mirrorTransactionID converts 0.0.1001@1700000000.000000123 into the
// 0.0.1001-1700000000-000000123 form used by the mirror node REST API.
func mirrorTransactionID(transactionID hedera.TransactionID) string {
	if transactionID.AccountID == nil || transactionID.ValidStart == nil {
		return ""
	}
	validStart := transactionID.ValidStart.UTC()
	return fmt.Sprintf("%s-%d-%09d", transactionID.AccountID.String(), validStart.Unix(), validStart.Nanosecond())
}

type executable interface {
	Execute(client *hedera.Client) (hedera.TransactionResponse, error)
}

func (c *Client) execute(ctx context.Context, label string, transaction executable) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	response, err := transaction.Execute(c.hederaClient)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to execute %s transaction: %w", label, err)
	}

	receipt, err := response.GetReceipt(c.hederaClient)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to retrieve %s receipt: %w", label, err)
	}
	if receipt.Status != hedera.StatusSuccess {
		return Receipt{}, fmt.Errorf(
			"%s transaction failed: %w",
			label,
			hedera.ErrHederaReceiptStatus{Status: receipt.Status, TxID: response.TransactionID, Receipt: receipt},
		)
	}

	if mirrorID := mirrorTransactionID(response.TransactionID); mirrorID != "" {
		c.mu.Lock()
		c.lastTransactionID = mirrorID
		c.mu.Unlock()
	}

	result := Receipt{
		TransactionID: response.TransactionID.String(),
		Status:        receipt.Status.String(),
		SerialNumbers: receipt.SerialNumbers,
	}
	if receipt.TokenID != nil {
		result.TokenID = receipt.TokenID.String()
	}
	return result, nil
}

func statusFromError(err error) (hedera.Status, bool) {
	var receiptErr hedera.ErrHederaReceiptStatus
	if errors.As(err, &receiptErr) {
		return receiptErr.Status, true
	}
	var precheckErr hedera.ErrHederaPreCheckStatus
	if errors.As(err, &precheckErr) {
		return precheckErr.Status, true
	}
	return hedera.StatusOk, false
}

func parseAccountRef(account issuance.AccountRef) (hedera.AccountID, hedera.PrivateKey, error) {
	accountID, err := shared.ParseAccountID(account.AccountID)
	if err != nil {
		return hedera.AccountID{}, hedera.PrivateKey{}, err
	}
	privateKey, err := shared.ParsePrivateKey(account.PrivateKey)
	if err != nil {
		return hedera.AccountID{}, hedera.PrivateKey{}, fmt.Errorf("invalid key for %s: %w", account.AccountID, err)
	}
	return accountID, privateKey, nil
}
