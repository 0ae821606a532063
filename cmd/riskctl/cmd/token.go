package cmd

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/ITS-ERP/qms-risk-backend/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token",
	Long:  "Sign a short-lived HS256 token carrying a tenant claim, for calling the API during development",
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, _ := cmd.Flags().GetString("secret")
		tenantID, _ := cmd.Flags().GetInt64("tenant")
		username, _ := cmd.Flags().GetString("user")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		if secret == "" {
			return fmt.Errorf("secret is required")
		}

		now := time.Now()
		claims := auth.Claims{
			TenantID: tenantID,
			Username: username,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			},
		}

		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		fmt.Println(signed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("secret", "", "HS256 signing secret (must match the service's auth.jwt_secret)")
	tokenCmd.Flags().Int64("tenant", 1, "tenant id claim")
	tokenCmd.Flags().String("user", "dev", "username claim")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
	if err := tokenCmd.MarkFlagRequired("secret"); err != nil {
		panic(fmt.Sprintf("failed to mark secret as required: %v", err))
	}
}
