package hts

import "time"

type ClientConfig struct {
	OperatorAccountID  string
	OperatorPrivateKey string
	Network            string
	MirrorBaseURL      string
	MirrorAPIKey       string

	// MirrorPollInterval spaces mirror node polls in WaitForNFTHolder.
	MirrorPollInterval time.Duration
}

// Receipt is the outcome of one executed token transaction.
type Receipt struct {
	TransactionID string
	Status        string
	TokenID       string
	SerialNumbers []int64
}
