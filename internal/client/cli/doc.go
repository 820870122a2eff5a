// Package cli implements authctl, the bookinggate operator command line.
//
// Every subcommand is one call to the server: account registration and
// verification, login/logout (the identity token is kept in a local file
// between runs), the password reset and set flows, and the SUPER_ADMIN
// user administration commands. Passwords are read from the terminal
// without echo, or line by line when stdin is not a terminal.
package cli
