package main

import (
	"fmt"
	"strings"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/iam/auth"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for local use",
	Long:  "Signs a JWT with the configured secret so the API can be called while auth.enabled is true.",
	RunE:  runToken,
}

var (
	tokenUserID string
	tokenScopes string
)

func init() {
	tokenCmd.Flags().StringVarP(&tokenUserID, "user-id", "u", "", "Subject of the token (required)")
	tokenCmd.Flags().StringVar(&tokenScopes, "scopes", strings.Join(auth.RecruiterScopes, ","), "Comma-separated scopes")

	if err := tokenCmd.MarkFlagRequired("user-id"); err != nil {
		panic(fmt.Sprintf("failed to mark user-id flag as required: %v", err))
	}

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var scopes []string
	for _, s := range strings.Split(tokenScopes, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}

	tokens := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	token, err := tokens.GenerateToken(kernel.UserID(tokenUserID), scopes)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
