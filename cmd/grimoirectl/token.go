// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/grimoire/internal/platform/constants"
	"github.com/taibuivan/grimoire/internal/platform/sec"
)

func newTokenCmd(cfg *settings) *cobra.Command {
	var (
		userID   string
		username string
		role     string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed access token for operators and tests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.JWTPrivKeyPath == "" || cfg.JWTPubKeyPath == "" {
				return errors.New("JWT_PRIVATE_KEY_PATH and JWT_PUBLIC_KEY_PATH are required")
			}

			userRole := sec.UserRole(role)
			if !userRole.Valid() {
				return fmt.Errorf("unknown role %q", role)
			}

			tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
			if err != nil {
				return err
			}

			token, err := tokens.GenerateAccessToken(userID, username, userRole, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "operator", "subject of the token")
	cmd.Flags().StringVar(&username, "name", "", "display name carried in the token")
	cmd.Flags().StringVar(&role, "role", string(sec.RoleAdmin), "role granted by the token")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	cmd.Flags().StringVar(&cfg.JWTPrivKeyPath, "private-key", cfg.JWTPrivKeyPath, "PEM private key")
	cmd.Flags().StringVar(&cfg.JWTPubKeyPath, "public-key", cfg.JWTPubKeyPath, "PEM public key")
	return cmd
}
