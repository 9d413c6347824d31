package shared

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// OperatorConfig holds the account that pays for and signs as treasury.
type OperatorConfig struct {
	AccountID  string
	PrivateKey string
	Network    string
}

// AccountConfig is an account identifier plus the key that signs for it.
type AccountConfig struct {
	AccountID  string
	PrivateKey string
}

type envAliases struct {
	accountKeys []string
	keyKeys     []string
}

var operatorAliases = envAliases{
	accountKeys: []string{"HEDERA_ACCOUNT_ID", "HEDERA_OPERATOR_ID", "ACCOUNT_ID", "OPERATOR_ID", "MY_ACCOUNT_ID"},
	keyKeys:     []string{"HEDERA_PRIVATE_KEY", "HEDERA_OPERATOR_KEY", "PRIVATE_KEY", "OPERATOR_KEY", "MY_PRIVATE_KEY"},
}

var recipientAliases = envAliases{
	accountKeys: []string{"RECIPIENT_ACCOUNT_ID", "RECIPIENT_ID", "SIGNER_ID"},
	keyKeys:     []string{"RECIPIENT_PRIVATE_KEY", "RECIPIENT_KEY", "SIGNER_PVKEY"},
}

var dotenvLoadOnce sync.Once

// OperatorConfigFromEnv resolves the operator (treasury) credentials and network
// selector. Network-scoped variables such as TESTNET_HEDERA_ACCOUNT_ID win over
// the unscoped ones.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	loadDotEnvIfPresent()

	network := firstNonEmptyEnv("HEDERA_NETWORK", "NETWORK")
	if network == "" {
		network = NetworkTestnet
	}

	account := resolveAccount(operatorAliases, network)
	if account.AccountID == "" {
		return OperatorConfig{}, fmt.Errorf("HEDERA_ACCOUNT_ID is required")
	}
	if account.PrivateKey == "" {
		return OperatorConfig{}, fmt.Errorf("HEDERA_PRIVATE_KEY is required")
	}

	return OperatorConfig{
		AccountID:  account.AccountID,
		PrivateKey: account.PrivateKey,
		Network:    network,
	}, nil
}

// RecipientConfigFromEnv resolves the receiving account and its key.
func RecipientConfigFromEnv() (AccountConfig, error) {
	loadDotEnvIfPresent()

	account := resolveAccount(recipientAliases, "")
	if account.AccountID == "" {
		return AccountConfig{}, fmt.Errorf("RECIPIENT_ACCOUNT_ID is required")
	}
	if account.PrivateKey == "" {
		return AccountConfig{}, fmt.Errorf("RECIPIENT_PRIVATE_KEY is required")
	}
	return account, nil
}

func resolveAccount(aliases envAliases, network string) AccountConfig {
	account := AccountConfig{
		AccountID:  firstNonEmptyEnv(aliases.accountKeys...),
		PrivateKey: firstNonEmptyEnv(aliases.keyKeys...),
	}

	prefix := ""
	switch strings.ToLower(strings.TrimSpace(network)) {
	case NetworkMainnet:
		prefix = "MAINNET_"
	case NetworkTestnet:
		prefix = "TESTNET_"
	case NetworkPreviewnet:
		prefix = "PREVIEWNET_"
	}
	if prefix == "" {
		return account
	}

	if scoped := firstNonEmptyEnv(
		prefix+"HEDERA_ACCOUNT_ID",
		prefix+"HEDERA_OPERATOR_ID",
		prefix+"OPERATOR_ID",
	); scoped != "" {
		account.AccountID = scoped
	}
	if scoped := firstNonEmptyEnv(
		prefix+"HEDERA_PRIVATE_KEY",
		prefix+"HEDERA_OPERATOR_KEY",
		prefix+"OPERATOR_KEY",
	); scoped != "" {
		account.PrivateKey = scoped
	}
	return account
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		startPaths := make([]string, 0, 2)

		if cwd, err := os.Getwd(); err == nil {
			startPaths = append(startPaths, cwd)
		}
		if _, currentFile, _, ok := runtime.Caller(0); ok {
			startPaths = append(startPaths, filepath.Dir(currentFile))
		}

		seenCandidates := make(map[string]struct{})
		for _, start := range startPaths {
			current := start
			for {
				candidate := filepath.Join(current, ".env")
				if _, exists := seenCandidates[candidate]; !exists {
					seenCandidates[candidate] = struct{}{}
					if _, statErr := os.Stat(candidate); statErr == nil {
						loadDotEnvFile(candidate)
						return
					}
				}

				parent := filepath.Dir(current)
				if parent == current {
					break
				}
				current = parent
			}
		}
	})
}

func loadDotEnvFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	loadedAny := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}

		separator := strings.Index(line, "=")
		if separator <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:separator])
		if !isValidEnvKey(key) {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}

		value := strings.TrimSpace(line[separator+1:])
		if len(value) >= 2 {
			first := value[0]
			last := value[len(value)-1]
			if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		if setErr := os.Setenv(key, value); setErr == nil {
			loadedAny = true
		}
	}

	return loadedAny
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}

// ParsePrivateKey accepts DER or raw hex keys, trying ED25519 before ECDSA.
func ParsePrivateKey(raw string) (hedera.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	ed25519Key, edErr := hedera.PrivateKeyFromStringEd25519(candidate)
	if edErr == nil {
		return ed25519Key, nil
	}

	ecdsaKey, ecdsaErr := hedera.PrivateKeyFromStringECDSA(candidate)
	if ecdsaErr == nil {
		return ecdsaKey, nil
	}

	genericKey, genericErr := hedera.PrivateKeyFromString(candidate)
	if genericErr == nil {
		return genericKey, nil
	}

	return hedera.PrivateKey{}, fmt.Errorf(
		"failed to parse private key as ED25519 (%v), ECDSA (%v), or generic (%v)",
		edErr,
		ecdsaErr,
		genericErr,
	)
}

// ParseAccountID parses a shard.realm.num account identifier.
func ParseAccountID(raw string) (hedera.AccountID, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.AccountID{}, fmt.Errorf("account ID cannot be empty")
	}
	accountID, err := hedera.AccountIDFromString(candidate)
	if err != nil {
		return hedera.AccountID{}, fmt.Errorf("invalid account ID %q: %w", raw, err)
	}
	return accountID, nil
}
