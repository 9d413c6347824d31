// Package mirror is a small client for the Hedera mirror node REST API. It
// reads token definitions, per-account token balances and individual NFTs,
// which lets callers confirm that a transfer has become visible to readers
// without submitting anything to the network.
//
// Mirror data lags consensus by a few seconds; callers that need to observe a
// fresh write should poll.
package mirror
