package cli

import (
	"github.com/dmitrijs2005/bookinggate/internal/api"
	"github.com/spf13/cobra"
)

func (a *App) newProfileCmd() *cobra.Command {
	var firstName, lastName, phone string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update your name or phone number",
		Long:  "Update your name or phone number. Only the flags you pass are changed; --phone \"\" clears the number.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &api.UpdateProfileRequest{}
			if cmd.Flags().Changed("first-name") {
				req.FirstName = &firstName
			}
			if cmd.Flags().Changed("last-name") {
				req.LastName = &lastName
			}
			if cmd.Flags().Changed("phone") {
				req.PhoneNo = &phone
			}

			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			me, err := a.client.CurrentUser(ctx)
			if err != nil {
				return err
			}

			u, err := a.client.UpdateProfile(ctx, me.Role, req)
			if err != nil {
				return err
			}
			cmd.Println("Profile updated.")
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number (E.164)")
	cmd.MarkFlagsOneRequired("first-name", "last-name", "phone")

	return cmd
}
