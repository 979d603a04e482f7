package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gidroatlas/gidroatlas/internal/users"
)

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
	}

	var role string
	create := &cobra.Command{
		Use:   "create [login]",
		Short: "Create an account, prompting for the password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			login := ""
			if len(args) == 1 {
				login = args[0]
			} else {
				fmt.Fprint(out, "Login: ")
				line, err := in.ReadString('\n')
				if err != nil && err != io.EOF {
					return fmt.Errorf("read login: %w", err)
				}
				login = strings.TrimSpace(line)
			}

			password, err := readPassword(out, in, "Password: ")
			if err != nil {
				return err
			}
			confirm, err := readPassword(out, in, "Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			sys := users.New(sess.db.Connection(), sess.logger, sess.cfg.API.Pagination)
			u, err := sys.Create(cmd.Context(), users.CreateCommand{
				Login:    login,
				Password: password,
				Role:     users.Role(role),
			})
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}

			fmt.Fprintf(out, "created %s (%s) id=%s\n", u.Login, u.Role, u.ID)
			return nil
		},
	}
	create.Flags().StringVar(&role, "role", string(users.RoleGuest), "account role: guest or expert")

	userCmd.AddCommand(create)
	return userCmd
}

// readPassword reads without echo from a terminal and falls back to a plain
// line read when stdin is piped.
func readPassword(out io.Writer, in *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(out, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
