package hts

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/route-2/hedera-dump/pkg/issuance"
	"github.com/route-2/hedera-dump/pkg/metadata"
	"github.com/route-2/hedera-dump/pkg/shared"
)

const integrationMetadataCID = "QmTzWcVfk88JRqjTpVwHzBeULRTNzHY7mnBSG42CpwHmPa"

func TestHTSIntegration_IssueAndTransfer(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION") != "1" {
		t.Skip("set RUN_INTEGRATION=1 to run live Hedera integration tests")
	}

	operatorConfig, err := shared.OperatorConfigFromEnv()
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	if strings.EqualFold(operatorConfig.Network, shared.NetworkMainnet) && os.Getenv("ALLOW_MAINNET_INTEGRATION") != "1" {
		t.Skip("resolved mainnet credentials; set ALLOW_MAINNET_INTEGRATION=1 to allow live mainnet writes")
	}
	recipientConfig, err := shared.RecipientConfigFromEnv()
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}

	client, err := NewClient(ClientConfig{
		OperatorAccountID:  operatorConfig.AccountID,
		OperatorPrivateKey: operatorConfig.PrivateKey,
		Network:            operatorConfig.Network,
	})
	if err != nil {
		t.Fatalf("failed to create HTS client: %v", err)
	}
	defer client.Close()

	supplyKey, err := GenerateSupplyKey()
	if err != nil {
		t.Fatalf("failed to generate supply key: %v", err)
	}
	blob, err := metadata.FromCID(integrationMetadataCID)
	if err != nil {
		t.Fatalf("invalid metadata CID: %v", err)
	}

	workflow, err := issuance.NewWorkflow(issuance.WorkflowConfig{Ledger: client})
	if err != nil {
		t.Fatalf("failed to create workflow: %v", err)
	}

	suffix := time.Now().UTC().UnixNano() % 1_000_000
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := workflow.Run(ctx, issuance.Config{
		Issuer: issuance.AccountRef{
			AccountID:  operatorConfig.AccountID,
			PrivateKey: operatorConfig.PrivateKey,
		},
		Recipient: issuance.AccountRef{
			AccountID:  recipientConfig.AccountID,
			PrivateKey: recipientConfig.PrivateKey,
		},
		Class: issuance.AssetClassSpec{
			Name:       fmt.Sprintf("diploma-%d", suffix),
			Symbol:     "GRAD",
			UnitType:   issuance.UnitTypeNonFungible,
			SupplyType: issuance.SupplyTypeFinite,
			MaxSupply:  250,
			SupplyKey:  supplyKey,
		},
		Metadata: blob,
	})
	if err != nil {
		t.Fatalf("workflow failed in state %s: %v", result.State, err)
	}
	t.Logf("issued %s serial %d to %s", result.ClassHandle, result.Serial, recipientConfig.AccountID)

	if result.Serial != 1 {
		t.Fatalf("expected serial 1 for a fresh class, got %d", result.Serial)
	}
	if result.TransferStatus != issuance.StatusSuccess {
		t.Fatalf("unexpected transfer status: %s", result.TransferStatus)
	}

	nft, err := client.WaitForNFTHolder(ctx, result.ClassHandle, result.Serial, recipientConfig.AccountID, 15)
	if err != nil {
		t.Fatalf("mirror node never reported the transfer: %v", err)
	}
	t.Logf("mirror node reports %s serial %d held by %s", nft.TokenID, nft.SerialNumber, nft.AccountID)
}
