// Package issuance runs the single-asset issuance workflow: create a
// non-fungible token class, mint one unit carrying fixed metadata, associate
// the recipient with the class, read balances, and transfer the unit from the
// treasury to the recipient.
//
// The workflow only orders calls. Validation of supply caps, signatures and
// associations belongs to the ledger reached through the LedgerClient port;
// any stage failure stops the run and is returned as a stage-tagged error
// (ClassCreationError, MintError, AssociationError, BalanceQueryError or
// TransferError). Ledger operations are final once accepted, so nothing is
// rolled back.
//
// A recipient that is already associated with the class is treated as a
// successful association, which makes that stage safe to repeat.
package issuance
