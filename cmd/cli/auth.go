package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	nameFlag        string
	emailFlag       string
	passwordFlag    string
	newPasswordFlag string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE:  runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE:  runLogout,
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the signed-in user",
	RunE:  runMe,
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	RunE:  runPassword,
}

func init() {
	registerCmd.Flags().StringVar(&nameFlag, "name", "", "display name")
	for _, cmd := range []*cobra.Command{registerCmd, loginCmd} {
		cmd.Flags().StringVar(&emailFlag, "email", "", "account email")
		cmd.Flags().StringVar(&passwordFlag, "password", "", "account password")
		_ = cmd.MarkFlagRequired("email")
		_ = cmd.MarkFlagRequired("password")
	}
	_ = registerCmd.MarkFlagRequired("name")

	passwordCmd.Flags().StringVar(&passwordFlag, "old", "", "current password")
	passwordCmd.Flags().StringVar(&newPasswordFlag, "new", "", "new password (at least 6 characters)")
	_ = passwordCmd.MarkFlagRequired("old")
	_ = passwordCmd.MarkFlagRequired("new")
}

func runRegister(cmd *cobra.Command, args []string) error {
	session, err := loadSession()
	if err != nil {
		return err
	}

	result, err := session.Client().Register(cmd.Context(), nameFlag, emailFlag, passwordFlag)
	if err != nil {
		return err
	}

	session.Token = result.Token
	session.Email = result.User.Email
	if err := session.Save(sessionPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are logged in.\n", result.User.Name)
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	session, err := loadSession()
	if err != nil {
		return err
	}

	result, err := session.Client().Login(cmd.Context(), emailFlag, passwordFlag)
	if err != nil {
		return err
	}

	session.Token = result.Token
	session.Email = result.User.Email
	if err := session.Save(sessionPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", result.User.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	session, err := loadSession()
	if err != nil {
		return err
	}

	session.Token = ""
	session.Email = ""
	if err := session.Save(sessionPath); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}

func runMe(cmd *cobra.Command, args []string) error {
	session, api, err := signedIn()
	if err != nil {
		return err
	}

	me, err := api.Me(cmd.Context())
	if err != nil {
		return handleAPIError(session, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", me.Name, me.Email)
	return nil
}

func runPassword(cmd *cobra.Command, args []string) error {
	if len(newPasswordFlag) < 6 {
		return fmt.Errorf("new password must be at least 6 characters long")
	}

	session, api, err := signedIn()
	if err != nil {
		return err
	}

	if err := api.UpdatePassword(cmd.Context(), passwordFlag, newPasswordFlag); err != nil {
		return handleAPIError(session, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Password updated.")
	return nil
}
