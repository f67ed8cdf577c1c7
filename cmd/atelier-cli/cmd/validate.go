package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nfrund/atelier/internal/domain"
	"github.com/nfrund/atelier/internal/validation"
	"github.com/spf13/cobra"
)

var errInvalidCredentials = errors.New("credentials failed validation")

func newValidateCmd() *cobra.Command {
	var (
		email, password, confirm string
		asJSON                   bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check credentials against the login or sign-up form rules",
		Long: `Validate runs the same rules the login and sign-up forms use, without
contacting an identity provider. Passing --confirm-password switches to the
sign-up rules, which also require the two passwords to match.

Examples:
  atelier-cli validate --email ada@example.com --password hunter22
  atelier-cli validate --email ada@example.com --password hunter22 --confirm-password hunter23`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := validation.New()

			var errs validation.FieldErrors
			if cmd.Flags().Changed("confirm-password") {
				_, errs = v.SignUp(domain.SignUpCredentials{Email: email, Password: password, ConfirmPassword: confirm})
			} else {
				_, errs = v.Login(domain.Credentials{Email: email, Password: password})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if errs == nil {
					errs = validation.FieldErrors{}
				}
				if err := json.NewEncoder(out).Encode(errs); err != nil {
					return err
				}
			} else if errs.Empty() {
				fmt.Fprintln(out, "✅ Credentials are valid")
			} else {
				for _, fe := range errs {
					fmt.Fprintf(out, "❌ %s: %s\n", fe.Field, strings.Join(fe.Messages, ", "))
				}
			}

			if !errs.Empty() {
				return errInvalidCredentials
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address to check")
	cmd.Flags().StringVar(&password, "password", "", "password to check")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "password confirmation (selects the sign-up rules)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the field errors as JSON")
	return cmd
}
