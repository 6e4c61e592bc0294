package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestHTTPMiddleware(t *testing.T) {
	svc := newTestJWTService(t, "secret", time.Minute)
	token, err := svc.GenerateToken("client", []string{RoleOperator})
	require.NoError(t, err)

	var gotClaims *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := HTTPMiddleware(svc, []string{"/health"})(next)

	tests := []struct {
		name   string
		method string
		path   string
		header string
		want   int
	}{
		{name: "skipped path", method: http.MethodGet, path: "/health", want: http.StatusNoContent},
		{name: "preflight", method: http.MethodOptions, path: "/api/supplier/onboard", want: http.StatusNoContent},
		{name: "missing header", method: http.MethodPost, path: "/api/supplier/onboard", want: http.StatusUnauthorized},
		{name: "wrong scheme", method: http.MethodPost, path: "/api/supplier/onboard", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "bad token", method: http.MethodPost, path: "/api/supplier/onboard", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid token", method: http.MethodPost, path: "/api/supplier/onboard", header: "Bearer " + token, want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	require.NotNil(t, gotClaims)
	assert.Equal(t, "client", gotClaims.ClientID)
}

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t, "secret", time.Minute)
	token, err := svc.GenerateToken("client", []string{RoleOperator})
	require.NoError(t, err)

	interceptor := UnaryAuthInterceptor(svc, []string{"/grpc.health.v1.Health/Check"})
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			return "anonymous", nil
		}
		return claims.ClientID, nil
	}

	t.Run("skipped method", func(t *testing.T) {
		resp, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler)
		require.NoError(t, err)
		assert.Equal(t, "anonymous", resp)
	})

	t.Run("missing metadata", func(t *testing.T) {
		_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/x/Y"}, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("valid token", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
		resp, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/x/Y"}, handler)
		require.NoError(t, err)
		assert.Equal(t, "client", resp)
	})

	t.Run("invalid token", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer bogus"))
		_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/x/Y"}, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})
}
