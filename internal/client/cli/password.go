package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func (a *App) newForgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Email a password reset link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			if err := a.client.ForgetPassword(ctx, args[0]); err != nil {
				return err
			}
			cmd.Println("Reset link sent.")
			return nil
		},
	}
}

type redeemFunc func(ctx context.Context, token, password, confirm string) error

// newRedeemCmd builds reset-password and set-password, which differ only
// in the server call.
func (a *App) newRedeemCmd(use, short, done string, redeem func(Client) redeemFunc) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := a.password("New password", cmd.OutOrStdout())
			if err != nil {
				return err
			}
			confirm, err := a.password("Confirm password", cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			if err := redeem(a.client)(ctx, token, password, confirm); err != nil {
				return err
			}
			cmd.Println(done)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "token from the emailed link")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func (a *App) newResetPasswordCmd() *cobra.Command {
	return a.newRedeemCmd("reset-password", "Set a new password with a reset token", "Password reset.",
		func(c Client) redeemFunc { return c.ResetPassword })
}

func (a *App) newSetPasswordCmd() *cobra.Command {
	return a.newRedeemCmd("set-password", "Set the first password of an invited account", "Password set.",
		func(c Client) redeemFunc { return c.SetPassword })
}
