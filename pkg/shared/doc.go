// Package shared holds the plumbing every other package leans on: network
// selection, Hedera client construction, key and account parsing, and
// credential loading from the environment or a nearby .env file.
//
// # Environment Variables
//
// Operator (treasury) credentials come from HEDERA_ACCOUNT_ID and
// HEDERA_PRIVATE_KEY, with OPERATOR_ID/OPERATOR_KEY and MY_ACCOUNT_ID/
// MY_PRIVATE_KEY accepted as aliases. Network-scoped variants such as
// TESTNET_HEDERA_ACCOUNT_ID take precedence for the selected HEDERA_NETWORK.
//
// The receiving account is read from RECIPIENT_ACCOUNT_ID and
// RECIPIENT_PRIVATE_KEY (aliases SIGNER_ID and SIGNER_PVKEY).
package shared
