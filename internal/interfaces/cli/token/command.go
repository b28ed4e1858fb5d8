package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/assetdesk/assetdesk/internal/infrastructure/auth"
	"github.com/assetdesk/assetdesk/internal/interfaces/cli/bootstrap"
)

var (
	flags  bootstrap.Flags
	userID uint
)

// NewCommand issues operator tokens. Identity is owned by an upstream
// system; this is for scripts and local testing.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for an operator",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&flags.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().UintVarP(&userID, "user", "u", 0, "Operator user id (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if userID == 0 {
		return errors.New("--user must be a positive id")
	}

	cfg, log, err := bootstrap.Load(flags)
	if err != nil {
		return err
	}

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	token, expiresAt, err := jwtSvc.Generate(userID)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	log.Infow("access token issued", "user_id", userID, "expires_at", expiresAt.Format(time.RFC3339))
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
