// Package metadata prepares the opaque metadata blob attached to a minted
// NFT. Blobs here are content identifiers pointing at off-ledger content.
package metadata

import (
	"fmt"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// MaxMetadataBytes is the largest metadata blob the token service accepts per serial.
const MaxMetadataBytes = 100

// FromCID validates an IPFS content identifier (CIDv0 "Qm..." or CIDv1) and
// returns the bytes to mint, which are the identifier text as given.
func FromCID(raw string) ([]byte, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("content identifier is required")
	}
	if _, err := cid.Decode(trimmed); err != nil {
		return nil, fmt.Errorf("invalid content identifier %q: %w", trimmed, err)
	}

	blob := []byte(trimmed)
	if err := Validate(blob); err != nil {
		return nil, err
	}
	return blob, nil
}

// CIDForContent derives a CIDv1 using the raw codec and a sha2-256 multihash.
func CIDForContent(data []byte) (string, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("failed to hash content: %w", err)
	}
	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

// FromContent hashes data and returns the metadata blob for its CIDv1.
func FromContent(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("content is empty")
	}
	identifier, err := CIDForContent(data)
	if err != nil {
		return nil, err
	}
	return FromCID(identifier)
}

// Validate checks the blob against the token service limits.
func Validate(blob []byte) error {
	if len(blob) == 0 {
		return fmt.Errorf("metadata is empty")
	}
	if len(blob) > MaxMetadataBytes {
		return fmt.Errorf("metadata is %d bytes, limit is %d", len(blob), MaxMetadataBytes)
	}
	return nil
}
