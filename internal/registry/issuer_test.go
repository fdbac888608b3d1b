package registry_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnifolio/influence-indexer/internal/adapter"
	"github.com/omnifolio/influence-indexer/internal/mocks"
	"github.com/omnifolio/influence-indexer/internal/registry"
)

func TestLoadIssuers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fs := mocks.NewMockFileSystem(ctrl)
	fs.EXPECT().
		ReadFile("config/issuers.json").
		Return([]byte(`{
			"acme": {"display_name": "ACME Corporation", "client_names": ["ACME Corporation", "ACME Corp."]}
		}`), nil)

	issuers, err := registry.LoadIssuers(fs, adapter.NewJSON(), "config/issuers.json")
	require.NoError(t, err)

	// Ticker lookup is case-insensitive
	assert.Equal(t, "ACME Corporation", issuers.DisplayName("acme"))
	assert.Equal(t, []string{"ACME Corporation", "ACME Corp."}, issuers.ClientNames("ACME"))
}

func TestLoadIssuersFileMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fs := mocks.NewMockFileSystem(ctrl)
	fs.EXPECT().
		ReadFile("missing.json").
		Return(nil, errors.New("no such file"))

	_, err := registry.LoadIssuers(fs, adapter.NewJSON(), "missing.json")
	assert.Error(t, err)
}

func TestLoadIssuersMalformedJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fs := mocks.NewMockFileSystem(ctrl)
	fs.EXPECT().
		ReadFile("bad.json").
		Return([]byte(`{not json`), nil)

	_, err := registry.LoadIssuers(fs, adapter.NewJSON(), "bad.json")
	assert.Error(t, err)
}

func TestUnregisteredKeyFallsBack(t *testing.T) {
	issuers := registry.NewStaticRegistry(nil)

	assert.Equal(t, "ZZZZ", issuers.DisplayName("zzzz"))
	assert.Equal(t, []string{"ZZZZ"}, issuers.ClientNames("zzzz"))
}

func TestStaticRegistryNormalizesTickers(t *testing.T) {
	issuers := registry.NewStaticRegistry(registry.IssuerData{
		" msft ": {DisplayName: "Microsoft Corporation", ClientNames: []string{"Microsoft Corporation"}},
	})

	assert.Equal(t, "Microsoft Corporation", issuers.DisplayName("MSFT"))
	assert.Equal(t, []string{"Microsoft Corporation"}, issuers.ClientNames("msft"))
}
