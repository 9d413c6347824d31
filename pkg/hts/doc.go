// Package hts binds the issuance workflow to the Hedera Token Service.
//
// Client implements issuance.LedgerClient: every write is frozen, signed by
// the key its protocol role requires (treasury, supply key, associating
// account or current holder), executed, and confirmed through its receipt.
// Token balances are read from the mirror node because consensus nodes no
// longer report them in account balance queries.
//
// The Build*Tx helpers construct the unsigned transactions and can be used
// on their own.
package hts
