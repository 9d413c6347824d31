package issuance

import (
	"fmt"
	"strings"
)

// Validate reports every missing or inconsistent field at once.
func (config Config) Validate() error {
	problems := make([]string, 0)

	problems = append(problems, validateAccount("issuer", config.Issuer)...)
	problems = append(problems, validateAccount("recipient", config.Recipient)...)
	if !config.Issuer.isZero() && !config.Recipient.isZero() &&
		strings.TrimSpace(config.Issuer.AccountID) == strings.TrimSpace(config.Recipient.AccountID) {
		problems = append(problems, "recipient must differ from issuer")
	}

	problems = append(problems, config.Class.validate()...)
	treasury := strings.TrimSpace(config.Class.TreasuryAccountID)
	if treasury != "" && treasury != strings.TrimSpace(config.Issuer.AccountID) {
		problems = append(problems, "class treasury must be the issuer account")
	}

	if len(config.Metadata) == 0 {
		problems = append(problems, "metadata is required")
	}

	if len(problems) > 0 {
		return ConfigValidationError{Problems: problems}
	}
	return nil
}

func validateAccount(role string, account AccountRef) []string {
	problems := make([]string, 0, 2)
	if strings.TrimSpace(account.AccountID) == "" {
		problems = append(problems, fmt.Sprintf("%s account ID is required", role))
	}
	if strings.TrimSpace(account.PrivateKey) == "" {
		problems = append(problems, fmt.Sprintf("%s private key is required", role))
	}
	return problems
}

func (spec AssetClassSpec) validate() []string {
	problems := make([]string, 0)

	if strings.TrimSpace(spec.Name) == "" {
		problems = append(problems, "class name is required")
	}
	if strings.TrimSpace(spec.Symbol) == "" {
		problems = append(problems, "class symbol is required")
	}
	if strings.TrimSpace(spec.SupplyKey) == "" {
		problems = append(problems, "class supply key is required")
	}

	if spec.UnitType != UnitTypeNonFungible {
		problems = append(problems, fmt.Sprintf("unit type must be %s, got %q", UnitTypeNonFungible, spec.UnitType))
	}
	if spec.Decimals != 0 {
		problems = append(problems, "non-fungible classes must have 0 decimals")
	}
	if spec.InitialSupply != 0 {
		problems = append(problems, "non-fungible classes must have 0 initial supply")
	}

	switch spec.SupplyType {
	case SupplyTypeFinite:
		if spec.MaxSupply <= 0 {
			problems = append(problems, "finite supply requires a positive max supply")
		}
	case SupplyTypeInfinite:
		if spec.MaxSupply != 0 {
			problems = append(problems, "infinite supply must not set a max supply")
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported supply type %q", spec.SupplyType))
	}

	return problems
}
