package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/bookinggate/internal/api"
	"github.com/spf13/cobra"
)

// RootCmd builds the authctl command tree. Flag defaults come from the
// loaded config, so flags override the JSON file.
func (a *App) RootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "authctl",
		Short: "authctl - bookinggate account operator CLI",
		Long: `authctl talks to a bookinggate server: register and verify accounts,
log in and out, run the password reset and set flows, and administer users.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.connect()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.disconnect()
		},
	}

	// Read by config.LoadConfig before cobra runs; declared so cobra accepts it.
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	cmd.PersistentFlags().StringVarP(&a.config.ServerEndpointAddr, "addr", "a", a.config.ServerEndpointAddr, "server gRPC address")
	cmd.PersistentFlags().StringVar(&a.config.TokenFile, "token-file", a.config.TokenFile, "where the login token is kept")
	cmd.PersistentFlags().DurationVar(&a.config.RequestTimeout, "timeout", a.config.RequestTimeout, "per-request timeout")

	cmd.AddCommand(
		a.newRegisterCmd(),
		a.newVerifyOtpCmd(),
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newWhoamiCmd(),
		a.newChangePasswordCmd(),
		a.newProfileCmd(),
		a.newForgotPasswordCmd(),
		a.newResetPasswordCmd(),
		a.newSetPasswordCmd(),
		a.newUsersCmd(),
	)

	return cmd
}

func printUser(w io.Writer, u *api.User) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", u.ID)
	fmt.Fprintf(tw, "Email\t%s\n", u.Email)
	fmt.Fprintf(tw, "Name\t%s %s\n", u.FirstName, u.LastName)
	if u.PhoneNo != "" {
		fmt.Fprintf(tw, "Phone\t%s\n", u.PhoneNo)
	}
	fmt.Fprintf(tw, "Role\t%s\n", u.Role)
	fmt.Fprintf(tw, "Active\t%t\n", u.IsActive)
	fmt.Fprintf(tw, "Verified\t%t\n", u.Verified)
	_ = tw.Flush()
}
