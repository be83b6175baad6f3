package ses

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bizmgr/dispatch/internal/core"
)

func TestNewProvider_RequiresRegion(t *testing.T) {
	t.Parallel()

	_, err := NewProvider(core.ProviderSettings{"access_key": "AKIA", "secret_key": "secret"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "region")
}

func TestNewProvider_RequiresSecretWithAccessKey(t *testing.T) {
	t.Parallel()

	_, err := NewProvider(core.ProviderSettings{
		"region":     "us-east-1",
		"access_key": "AKIA",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "secret key")
}

func TestNewProvider(t *testing.T) {
	t.Parallel()

	p, err := NewProvider(core.ProviderSettings{
		"region":     "us-east-1",
		"access_key": "AKIA",
		"secret_key": "secret",
	})
	require.NoError(t, err)
	require.Equal(t, "aws_ses", p.Name())
	require.NoError(t, p.ValidateConfig())
}
