package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yukikurage/freelance-marketplace-api/internal/constants"
	"github.com/yukikurage/freelance-marketplace-api/internal/services"
)

var (
	tokenEmail string
	tokenName  string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for local development",
	Long: `Issue a bearer token signed with JWT_SECRET.

Production tokens come from the identity provider; this command mints
equivalent tokens for local testing, e.g.

  curl -H "Authorization: Bearer $(marketplace token --email a@x.com)" localhost:8080/me`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenEmail == "" {
			return fmt.Errorf("--email is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		verifier, err := services.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
		if err != nil {
			return fmt.Errorf("JWT_SECRET: %w", err)
		}

		token, err := verifier.Issue(services.Principal{Email: tokenEmail, Name: tokenName}, tokenTTL)
		if err != nil {
			return fmt.Errorf("signing token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "principal email")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "principal display name")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", constants.DefaultTokenTTL, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
