package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	pkgjwt "github.com/itcguard/itc-api/pkg/jwt"
)

func (c *cli) tokenCmd() *cobra.Command {
	var id pkgjwt.Identity
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API bearer token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.JWT.Secret == "" {
				return errors.New("JWT_SECRET is not set; the API runs unauthenticated")
			}
			switch id.Role {
			case pkgjwt.RoleOwner, pkgjwt.RoleAccountant, pkgjwt.RoleViewer:
			default:
				return fmt.Errorf("unknown role %q", id.Role)
			}
			tok, err := pkgjwt.Generate(c.cfg.JWT.Secret, c.cfg.JWT.Issuer, id, c.cfg.JWT.Expiration)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.out, tok)
			return err
		},
	}
	cmd.Flags().StringVar(&id.UserID, "user", "cli", "user ID claim")
	cmd.Flags().StringVar(&id.BusinessID, "business", "", "business ID claim")
	cmd.Flags().StringVar(&id.Role, "role", pkgjwt.RoleOwner, "owner, accountant or viewer")
	return cmd
}
