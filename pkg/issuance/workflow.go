package issuance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type WorkflowConfig struct {
	Ledger LedgerClient
	Logger *zerolog.Logger

	// ProgressCallback is invoked after every completed stage.
	ProgressCallback func(Progress)
}

type Progress struct {
	RunID      string
	Stage      Stage
	State      State
	Percentage int
}

// Workflow holds no per-run state; one value can serve concurrent runs as
// long as runs targeting the same finite class are serialized by the caller.
type Workflow struct {
	ledger   LedgerClient
	logger   zerolog.Logger
	progress func(Progress)
}

// NewWorkflow creates a workflow bound to a ledger client.
func NewWorkflow(config WorkflowConfig) (*Workflow, error) {
	if config.Ledger == nil {
		return nil, fmt.Errorf("ledger client is required")
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &Workflow{
		ledger:   config.Ledger,
		logger:   logger,
		progress: config.ProgressCallback,
	}, nil
}

// Run executes create, mint, associate, query and transfer in order and stops
// at the first failing stage. The returned result carries whatever was
// produced before the failure, with State naming the last state reached.
func (workflow *Workflow) Run(ctx context.Context, config Config) (WorkflowResult, error) {
	result := WorkflowResult{
		RunID: uuid.NewString(),
		State: StatePending,
	}
	if err := config.Validate(); err != nil {
		return result, err
	}

	logger := workflow.logger.With().Str("run_id", result.RunID).Logger()
	ctx = logger.WithContext(ctx)
	logger.Info().
		Str("issuer", config.Issuer.AccountID).
		Str("recipient", config.Recipient.AccountID).
		Str("class_name", config.Class.Name).
		Str("class_symbol", config.Class.Symbol).
		Msg("issuance workflow started")

	class, err := workflow.CreateClass(ctx, config.Issuer, config.Class)
	if err != nil {
		return result, err
	}
	result.ClassHandle = class
	result.State = StateCreated
	workflow.report(result, StageCreateClass, 20)

	unit, err := workflow.MintUnit(ctx, class, config.Metadata, config.Class.SupplyKey)
	if err != nil {
		return result, err
	}
	result.Serial = unit.Serial
	result.Metadata = unit.Metadata
	result.State = StateMinted
	workflow.report(result, StageMint, 40)

	associationStatus, err := workflow.AssociateRecipient(ctx, config.Recipient, class)
	if err != nil {
		return result, err
	}
	result.AssociationStatus = associationStatus
	result.State = StateAssociated
	workflow.report(result, StageAssociate, 60)

	balances, err := workflow.QueryBalances(ctx, class, config.Issuer.AccountID, config.Recipient.AccountID)
	if err != nil {
		return result, err
	}
	result.BalancesBefore = balances
	result.State = StateBalancesRead
	workflow.report(result, StageQueryBalances, 80)

	transferStatus, err := workflow.TransferUnit(ctx, unit, config.Issuer, config.Recipient.AccountID)
	if err != nil {
		return result, err
	}
	result.TransferStatus = transferStatus
	result.State = StateTransferred
	workflow.report(result, StageTransfer, 100)

	if config.ReportFinalBalances {
		finalBalances, finalErr := workflow.QueryBalances(ctx, class, config.Issuer.AccountID, config.Recipient.AccountID)
		if finalErr != nil {
			logger.Warn().Err(finalErr).Msg("post-transfer balance read failed")
		} else {
			result.BalancesAfter = finalBalances
		}
	}

	logger.Info().
		Str("token_id", class.String()).
		Int64("serial", result.Serial).
		Str("association_status", string(result.AssociationStatus)).
		Str("transfer_status", string(result.TransferStatus)).
		Msg("issuance workflow completed")

	return result, nil
}

// CreateClass submits the class spec with the issuer acting as treasury.
func (workflow *Workflow) CreateClass(ctx context.Context, issuer AccountRef, spec AssetClassSpec) (ClassHandle, error) {
	logger := workflow.loggerFrom(ctx)
	if strings.TrimSpace(spec.TreasuryAccountID) == "" {
		spec.TreasuryAccountID = issuer.AccountID
	}

	logger.Debug().Str("stage", string(StageCreateClass)).Str("treasury", spec.TreasuryAccountID).Msg("submitting asset class")
	class, err := workflow.ledger.CreateAssetClass(ctx, spec, issuer)
	if err == nil && strings.TrimSpace(class.String()) == "" {
		err = errors.New("ledger returned an empty class handle")
	}
	if err != nil {
		logger.Error().Err(err).Str("stage", string(StageCreateClass)).Msg("asset class creation failed")
		return "", ClassCreationError{
			WorkflowError: WorkflowError{Stage: StageCreateClass, Err: err},
			Name:          spec.Name,
			Symbol:        spec.Symbol,
		}
	}

	logger.Info().Str("stage", string(StageCreateClass)).Str("token_id", class.String()).Msg("asset class created")
	return class, nil
}

// MintUnit mints exactly one unit of class carrying metadata.
func (workflow *Workflow) MintUnit(ctx context.Context, class ClassHandle, metadata []byte, supplyKey string) (AssetUnit, error) {
	logger := workflow.loggerFrom(ctx)
	blob := append([]byte(nil), metadata...)

	serials, err := workflow.ledger.Mint(ctx, class, [][]byte{blob}, supplyKey)
	if err == nil && len(serials) != 1 {
		err = fmt.Errorf("expected 1 serial from mint, got %d", len(serials))
	}
	if err != nil {
		logger.Error().Err(err).Str("stage", string(StageMint)).Str("token_id", class.String()).Msg("mint failed")
		return AssetUnit{}, MintError{
			WorkflowError: WorkflowError{Stage: StageMint, Err: err},
			Class:         class,
		}
	}

	unit := AssetUnit{Class: class, Serial: serials[0], Metadata: blob}
	logger.Info().Str("stage", string(StageMint)).Str("token_id", class.String()).Int64("serial", unit.Serial).Msg("unit minted")
	return unit, nil
}

// AssociateRecipient associates the recipient with class. An existing
// association is reported as StatusAlreadyAssociated without an error.
func (workflow *Workflow) AssociateRecipient(ctx context.Context, recipient AccountRef, class ClassHandle) (Status, error) {
	logger := workflow.loggerFrom(ctx)

	status, err := workflow.ledger.Associate(ctx, recipient, class)
	if errors.Is(err, ErrAlreadyAssociated) || (err == nil && status == StatusAlreadyAssociated) {
		logger.Info().Str("stage", string(StageAssociate)).Str("account", recipient.AccountID).Str("token_id", class.String()).Msg("recipient already associated")
		return StatusAlreadyAssociated, nil
	}
	if err == nil && status != StatusSuccess {
		err = fmt.Errorf("association finished with status %s", status)
	}
	if err != nil {
		logger.Error().Err(err).Str("stage", string(StageAssociate)).Str("account", recipient.AccountID).Msg("association failed")
		return status, AssociationError{
			WorkflowError: WorkflowError{Stage: StageAssociate, Err: err},
			AccountID:     recipient.AccountID,
			Class:         class,
		}
	}

	logger.Info().Str("stage", string(StageAssociate)).Str("account", recipient.AccountID).Str("status", string(status)).Msg("recipient associated")
	return status, nil
}

// QueryBalances reads each account's unit count for class. Accounts without
// a balance entry for the class hold zero units.
func (workflow *Workflow) QueryBalances(ctx context.Context, class ClassHandle, accountIDs ...string) (Balances, error) {
	logger := workflow.loggerFrom(ctx)
	balances := make(Balances, len(accountIDs))

	for _, accountID := range accountIDs {
		counts, err := workflow.ledger.QueryBalance(ctx, accountID)
		if err != nil {
			logger.Error().Err(err).Str("stage", string(StageQueryBalances)).Str("account", accountID).Msg("balance query failed")
			return nil, BalanceQueryError{
				WorkflowError: WorkflowError{Stage: StageQueryBalances, Err: err},
				AccountID:     accountID,
			}
		}
		balances[accountID] = counts[class]
		logger.Info().Str("stage", string(StageQueryBalances)).Str("account", accountID).Str("token_id", class.String()).Uint64("units", counts[class]).Msg("balance read")
	}

	return balances, nil
}

// TransferUnit moves unit from the current holder to toAccountID.
func (workflow *Workflow) TransferUnit(ctx context.Context, unit AssetUnit, from AccountRef, toAccountID string) (Status, error) {
	logger := workflow.loggerFrom(ctx)

	status, err := workflow.ledger.TransferUnit(ctx, unit.Class, unit.Serial, from, toAccountID)
	if err == nil && status != StatusSuccess {
		err = fmt.Errorf("transfer finished with status %s", status)
	}
	if err != nil {
		logger.Error().Err(err).Str("stage", string(StageTransfer)).Str("token_id", unit.Class.String()).Int64("serial", unit.Serial).Msg("transfer failed")
		return status, TransferError{
			WorkflowError: WorkflowError{Stage: StageTransfer, Err: err},
			Class:         unit.Class,
			Serial:        unit.Serial,
			From:          from.AccountID,
			To:            toAccountID,
		}
	}

	logger.Info().
		Str("stage", string(StageTransfer)).
		Str("token_id", unit.Class.String()).
		Int64("serial", unit.Serial).
		Str("from", from.AccountID).
		Str("to", toAccountID).
		Msg("unit transferred")
	return status, nil
}

func (workflow *Workflow) loggerFrom(ctx context.Context) *zerolog.Logger {
	if logger := zerolog.Ctx(ctx); logger.GetLevel() != zerolog.Disabled {
		return logger
	}
	return &workflow.logger
}

func (workflow *Workflow) report(result WorkflowResult, stage Stage, percentage int) {
	if workflow.progress != nil {
		workflow.progress(Progress{
			RunID:      result.RunID,
			Stage:      stage,
			State:      result.State,
			Percentage: percentage,
		})
	}
}
