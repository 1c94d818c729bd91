package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"feedback/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userAddAdmin bool

var userAddCmd = &cobra.Command{
	Use:   "add <login>",
	Short: "Create an account; the password is read from the terminal or stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		if err := cfg.Validate(); err != nil {
			return err
		}

		password, err := readPassword(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		st, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = st.close() }()

		user, err := app.NewAuthService(st.users, st.sessions).CreateUser(cmd.Context(), args[0], password, userAddAdmin)
		if err != nil {
			return err
		}
		log.Info("user created", zap.Int64("id", user.ID), zap.String("login", user.Login), zap.Bool("admin", userAddAdmin))
		return nil
	},
}

func init() {
	userAddCmd.Flags().BoolVar(&userAddAdmin, "admin", false, "grant ROLE_ADMIN")
	userCmd.AddCommand(userAddCmd)
}

func readPassword(prompt io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(prompt, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(prompt, "Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
