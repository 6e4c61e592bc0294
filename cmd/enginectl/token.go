package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/watermelon/decision-engine/pkg/auth"
)

func tokenCmd() *cobra.Command {
	var (
		secret   string
		issuer   string
		clientID string
		roles    []string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an HS256 bearer token for the engine APIs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				return fmt.Errorf("--secret or JWT_SECRET is required")
			}
			svc, err := auth.NewJWTService(auth.JWTConfig{
				Secret:     secret,
				Issuer:     issuer,
				Expiration: ttl,
			})
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(clientID, roles)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "HMAC signing secret")
	cmd.Flags().StringVar(&issuer, "issuer", "decision-engine", "Token issuer")
	cmd.Flags().StringVar(&clientID, "client-id", "enginectl", "Client id recorded in the token")
	cmd.Flags().StringSliceVar(&roles, "roles", []string{auth.RoleOperator}, "Roles (operator, analyst, admin)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")

	return cmd
}
