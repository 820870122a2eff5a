package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/bookinggate/internal/api"
	"github.com/spf13/cobra"
)

func (a *App) newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List and administer accounts",
	}
	cmd.AddCommand(a.newUsersListCmd(), a.newUsersCreateCmd(), a.newUsersToggleCmd())
	return cmd
}

func (a *App) newUsersListCmd() *cobra.Command {
	req := &api.ListUsersRequest{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			list, err := a.client.ListUsers(ctx, req)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tEMAIL\tROLE\tACTIVE\tVERIFIED")
			for _, u := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\n", u.ID, u.Email, u.Role, u.IsActive, u.Verified)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&req.Role, "role", "", "only this role")
	cmd.Flags().IntVar(&req.Limit, "limit", 0, "page size, at most 100")
	cmd.Flags().IntVar(&req.Offset, "offset", 0, "rows to skip")

	return cmd
}

func (a *App) newUsersCreateCmd() *cobra.Command {
	req := &api.CreateUserRequest{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Invite a user; they receive a set-password link (SUPER_ADMIN only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			u, err := a.client.CreateUser(ctx, req)
			if err != nil {
				return err
			}
			cmd.Println("User invited.")
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.PhoneNo, "phone", "", "phone number (E.164)")
	cmd.Flags().StringVar(&req.Role, "role", "", "SUPER_ADMIN, VENDOR or DEFAULT_USER (default VENDOR)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("first-name")

	return cmd
}

func (a *App) newUsersToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <user-id>",
		Short: "Enable or disable an account (SUPER_ADMIN only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			u, err := a.client.ToggleActive(ctx, args[0])
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}
}
