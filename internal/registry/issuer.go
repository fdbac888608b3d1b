package registry

import (
	"fmt"
	"strings"

	"github.com/omnifolio/influence-indexer/internal/adapter"
)

// IssuerRegistry defines the interface for resolving tickers to the names the
// disclosure database knows them by
//
//go:generate mockgen -source=issuer.go -destination=../mocks/issuer_registry.go -package=mocks -mock_names=IssuerRegistry=MockIssuerRegistry
type IssuerRegistry interface {
	// DisplayName resolves the human-readable name for a ticker
	DisplayName(key string) string

	// ClientNames resolves the client names to query the disclosure database
	// with. A ticker missing from the registry falls back to the key itself.
	ClientNames(key string) []string
}

// IssuerEntry is one registry row
type IssuerEntry struct {
	// DisplayName is the human-readable company name
	DisplayName string `json:"display_name"`
	// ClientNames are the names the company files under, first name preferred
	ClientNames []string `json:"client_names"`
}

// IssuerData represents the structure of the issuers.json file.
// Key format: ticker -> entry.
type IssuerData map[string]IssuerEntry

// issuerRegistry is the internal implementation of IssuerRegistry
type issuerRegistry struct {
	entries map[string]IssuerEntry
}

// LoadIssuers loads the issuer registry from a JSON file
func LoadIssuers(fs adapter.FileSystem, json adapter.JSON, filePath string) (IssuerRegistry, error) {
	data, err := fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read issuer registry file: %w", err)
	}

	var issuerData IssuerData
	if err := json.Unmarshal(data, &issuerData); err != nil {
		return nil, fmt.Errorf("failed to parse issuer registry JSON: %w", err)
	}

	entries := make(map[string]IssuerEntry, len(issuerData))
	for ticker, entry := range issuerData {
		entries[strings.ToUpper(strings.TrimSpace(ticker))] = entry
	}

	return &issuerRegistry{entries: entries}, nil
}

// NewStaticRegistry creates a registry from an in-memory table, used by tests
// and as the empty fallback when no registry file is configured
func NewStaticRegistry(data IssuerData) IssuerRegistry {
	entries := make(map[string]IssuerEntry, len(data))
	for ticker, entry := range data {
		entries[strings.ToUpper(strings.TrimSpace(ticker))] = entry
	}
	return &issuerRegistry{entries: entries}
}

// DisplayName resolves the human-readable name for a ticker
func (r *issuerRegistry) DisplayName(key string) string {
	if entry, ok := r.entries[strings.ToUpper(key)]; ok && entry.DisplayName != "" {
		return entry.DisplayName
	}
	return strings.ToUpper(key)
}

// ClientNames resolves the client names to query the disclosure database with
func (r *issuerRegistry) ClientNames(key string) []string {
	if entry, ok := r.entries[strings.ToUpper(key)]; ok && len(entry.ClientNames) > 0 {
		return entry.ClientNames
	}
	return []string{strings.ToUpper(key)}
}
