package mirror

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/route-2/hedera-dump/pkg/shared"
)

type Config struct {
	Network    string
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string
	Headers    map[string]string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	headers    map[string]string
}

// ErrNotFound is returned when the mirror node answers 404.
var ErrNotFound = errors.New("mirror node resource not found")

// NewClient creates a mirror client. An empty BaseURL selects the public
// mirror node for the network.
func NewClient(config Config) (*Client, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		switch network {
		case shared.NetworkMainnet:
			baseURL = "https://mainnet-public.mirrornode.hedera.com"
		case shared.NetworkPreviewnet:
			baseURL = "https://previewnet.mirrornode.hedera.com"
		default:
			baseURL = "https://testnet.mirrornode.hedera.com"
		}
	}
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mirror base URL: %w", err)
	}
	if parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid mirror base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedBaseURL.Host) == "" {
		return nil, fmt.Errorf("invalid mirror base URL: host is required")
	}
	baseURL = strings.TrimRight(parsedBaseURL.String(), "/")

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := map[string]string{}
	for key, value := range config.Headers {
		headers[key] = value
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		apiKey:     strings.TrimSpace(config.APIKey),
		headers:    headers,
	}, nil
}

// BaseURL returns the resolved mirror node base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetAccount fetches the account summary.
func (c *Client) GetAccount(ctx context.Context, accountID string) (AccountInfo, error) {
	var accountInfo AccountInfo
	normalizedAccountID := strings.TrimSpace(accountID)
	if normalizedAccountID == "" {
		return accountInfo, fmt.Errorf("account ID is required")
	}

	path := fmt.Sprintf("/api/v1/accounts/%s", normalizedAccountID)
	if err := c.getJSON(ctx, path, &accountInfo); err != nil {
		return accountInfo, err
	}

	return accountInfo, nil
}

// GetTokenInfo fetches a token definition.
func (c *Client) GetTokenInfo(ctx context.Context, tokenID string) (TokenInfo, error) {
	var tokenInfo TokenInfo
	normalizedTokenID := strings.TrimSpace(tokenID)
	if normalizedTokenID == "" {
		return tokenInfo, fmt.Errorf("token ID is required")
	}

	path := fmt.Sprintf("/api/v1/tokens/%s", normalizedTokenID)
	if err := c.getJSON(ctx, path, &tokenInfo); err != nil {
		return tokenInfo, err
	}

	return tokenInfo, nil
}

// GetAccountTokens lists the account's token relationships, following
// pagination links. A non-empty tokenID narrows the result to that token.
func (c *Client) GetAccountTokens(
	ctx context.Context,
	accountID string,
	tokenID string,
) ([]TokenRelationship, error) {
	normalizedAccountID := strings.TrimSpace(accountID)
	if normalizedAccountID == "" {
		return nil, fmt.Errorf("account ID is required")
	}

	endpoint := fmt.Sprintf("/api/v1/accounts/%s/tokens", normalizedAccountID)
	if normalizedTokenID := strings.TrimSpace(tokenID); normalizedTokenID != "" {
		values := url.Values{}
		values.Set("token.id", normalizedTokenID)
		endpoint = fmt.Sprintf("%s?%s", endpoint, values.Encode())
	}

	result := make([]TokenRelationship, 0)
	next := endpoint
	for next != "" {
		var page tokenRelationshipsResponse
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}
		result = append(result, page.Tokens...)
		next = page.Links.Next
	}

	return result, nil
}

// GetAccountTokenBalance returns the account's balance of one token and
// whether the account is associated with it at all.
func (c *Client) GetAccountTokenBalance(
	ctx context.Context,
	accountID string,
	tokenID string,
) (int64, bool, error) {
	if strings.TrimSpace(tokenID) == "" {
		return 0, false, fmt.Errorf("token ID is required")
	}

	relationships, err := c.GetAccountTokens(ctx, accountID, tokenID)
	if err != nil {
		return 0, false, err
	}
	for _, relationship := range relationships {
		if relationship.TokenID == strings.TrimSpace(tokenID) {
			return relationship.Balance, true, nil
		}
	}
	return 0, false, nil
}

// GetNFT fetches one NFT by token and serial. A 404 yields (nil, nil).
func (c *Client) GetNFT(ctx context.Context, tokenID string, serial int64) (*NFT, error) {
	normalizedTokenID := strings.TrimSpace(tokenID)
	if normalizedTokenID == "" {
		return nil, fmt.Errorf("token ID is required")
	}
	if serial <= 0 {
		return nil, fmt.Errorf("serial must be positive")
	}

	var nft NFT
	path := fmt.Sprintf("/api/v1/tokens/%s/nfts/%d", normalizedTokenID, serial)
	if err := c.getJSON(ctx, path, &nft); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &nft, nil
}

// DecodeNFTMetadata returns the raw metadata bytes of an NFT.
func DecodeNFTMetadata(nft NFT) ([]byte, error) {
	if strings.TrimSpace(nft.Metadata) == "" {
		return nil, fmt.Errorf("NFT metadata is empty")
	}
	return base64.StdEncoding.DecodeString(nft.Metadata)
}

// GetTransaction fetches a transaction by ID; (nil, nil) when unknown.
func (c *Client) GetTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	normalized := strings.TrimSpace(transactionID)
	if normalized == "" {
		return nil, fmt.Errorf("transaction ID is required")
	}

	var response transactionsResponse
	path := fmt.Sprintf("/api/v1/transactions/%s", normalized)
	if err := c.getJSON(ctx, path, &response); err != nil {
		return nil, err
	}

	if len(response.Transactions) == 0 {
		return nil, nil
	}

	return &response.Transactions[0], nil
}

func (c *Client) getJSON(ctx context.Context, pathOrURL string, target any) error {
	requestURL := c.resolveURL(pathOrURL)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("mirror node request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read mirror node response: %w", err)
	}

	if response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, requestURL)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf(
			"mirror node request failed with status %d: %s",
			response.StatusCode,
			strings.TrimSpace(string(body)),
		)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode mirror node response: %w", err)
	}

	return nil
}

func (c *Client) resolveURL(pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}

	path := pathOrURL
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}
