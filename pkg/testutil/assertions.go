package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IntegrationEnv gates container-backed tests.
const IntegrationEnv = "DECISION_ENGINE_INTEGRATION"

// RequireIntegration skips the test unless integration tests are enabled.
func RequireIntegration(t *testing.T) {
	t.Helper()
	if testing.Short() || os.Getenv(IntegrationEnv) != "1" {
		t.Skipf("set %s=1 to run integration tests", IntegrationEnv)
	}
}

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), expected)
	}
}

// RequireGRPCCode fails unless err carries the given gRPC status code.
func RequireGRPCCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error, got %v", err)
	require.Equal(t, code, st.Code(), "unexpected gRPC code: %s", st.Message())
}
