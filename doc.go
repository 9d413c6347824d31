// Package hedera_dump issues and transfers non-fungible tokens on the Hedera
// Token Service.
//
// A run creates an NFT class with the operator as treasury, mints a single
// serial carrying an IPFS content identifier, associates the recipient
// account, reads both balances and moves the serial to the recipient.
//
// # Packages
//
//   - pkg/issuance: the issuance workflow, its ledger port and error types
//   - pkg/hts: the Hedera Token Service ledger client
//   - pkg/mirror: mirror node REST reads for balances and NFT holders
//   - pkg/metadata: content identifier metadata helpers
//   - pkg/shared: network selection and credential loading
//
// # Running
//
// Set HEDERA_ACCOUNT_ID, HEDERA_PRIVATE_KEY, RECIPIENT_ACCOUNT_ID and
// RECIPIENT_PRIVATE_KEY (or place them in a .env file), then:
//
//	go run ./examples/nft-issue-transfer -name diploma -symbol GRAD -max-supply 250
package hedera_dump
