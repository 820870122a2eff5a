package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookinggate/internal/api"
	"github.com/dmitrijs2005/bookinggate/internal/client/client"
	"github.com/spf13/cobra"
)

func (a *App) emailFlagOrPrompt(cmd *cobra.Command, email string) (string, error) {
	if email != "" {
		return email, nil
	}
	return GetSimpleText(a.reader, "Email", cmd.OutOrStdout())
}

func (a *App) newRegisterCmd() *cobra.Command {
	req := &api.RegisterRequest{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account; a one-time code is issued for verification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if req.Email, err = a.emailFlagOrPrompt(cmd, req.Email); err != nil {
				return err
			}
			if req.Password, err = a.password("Password", cmd.OutOrStdout()); err != nil {
				return err
			}

			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			u, err := a.client.Register(ctx, req)
			if err != nil {
				return err
			}
			cmd.Println("Registered. Verify the account with: authctl verify-otp", u.ID, "<code>")
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.PhoneNo, "phone", "", "phone number (E.164)")
	cmd.Flags().StringVar(&req.Dob, "dob", "", "date of birth (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("first-name")

	return cmd
}

func (a *App) newVerifyOtpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-otp <user-id> <code>",
		Short: "Verify an account with its one-time code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			u, err := a.client.VerifyOtp(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			cmd.Println("Account verified.")
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}
}

func (a *App) newLoginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the identity token for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, err := a.emailFlagOrPrompt(cmd, email)
			if err != nil {
				return err
			}
			password, err := a.password("Password", cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			token, err := a.client.Login(ctx, addr, password)
			if err != nil {
				return err
			}
			if err := a.tokens.Save(token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			cmd.Println("Login successful.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func (a *App) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the saved token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			// A rejected token is dropped all the same.
			if err := a.client.Logout(ctx); err != nil && !errors.Is(err, client.ErrUnauthorized) {
				return err
			}
			if err := a.tokens.Clear(); err != nil {
				return err
			}
			cmd.Println("Logged out.")
			return nil
		},
	}
}

func (a *App) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			u, err := a.client.CurrentUser(ctx)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}
}

func (a *App) newChangePasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "change-password",
		Short: "Change the password of the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := a.password("Current password", cmd.OutOrStdout())
			if err != nil {
				return err
			}
			next, err := a.password("New password", cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			if err := a.client.ChangePassword(ctx, current, next); err != nil {
				return err
			}
			cmd.Println("Password changed.")
			return nil
		},
	}
}
