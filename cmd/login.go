package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tmasrour/zanbil/client"
	"github.com/tmasrour/zanbil/pkg/validation"
	"golang.org/x/term"
)

// loginCmd creates a new cobra.Command for signing in to the store.
func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the store",
		Long:  "Sign in to the store with your email and password",
		Run: func(cmd *cobra.Command, args []string) {
			email := promptForInput("Email: ")
			password := promptForPassword("Password: ")

			if email == "" || password == "" {
				cmd.PrintErrln("Error: Email and password cannot be empty.")
				return
			}

			api := newAPIClient()
			service := newAuthService(api)
			user, err := service.SignIn(cmd.Context(), email, password)
			if err != nil {
				cmd.PrintErrln("Error: Failed to sign in.")
				printAPIFieldErrors(cmd, err)
				return
			}
			if user != nil {
				cmd.Printf("Signed in as %s.\n", user.UserName)
			} else {
				cmd.Println("Signed in successfully.")
			}
		},
	}

	return cmd
}

// logoutCmd signs the user out locally and, best-effort, on the backend.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out of the store",
		Run: func(cmd *cobra.Command, args []string) {
			api := newAPIClient()
			service := newAuthService(api)
			if err := service.SignOut(cmd.Context()); err != nil {
				cmd.PrintErrln("Error: Failed to sign out.")
				return
			}
			cmd.Println("Signed out.")
		},
	}
}

// signupCmd registers a new account, optionally uploading an avatar image.
func signupCmd() *cobra.Command {
	var form client.SignUpForm
	var avatarPath string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new store account",
		Run: func(cmd *cobra.Command, args []string) {
			if form.Email == "" {
				form.Email = promptForInput("Email: ")
			}
			if form.UserName == "" {
				form.UserName = promptForInput("User name: ")
			}
			form.Password = promptForPassword("Password: ")
			form.ConfirmPassword = promptForPassword("Confirm password: ")

			if form.Email == "" || form.UserName == "" || form.Password == "" {
				cmd.PrintErrln("Error: Email, user name, and password cannot be empty.")
				return
			}
			if err := validation.ValidateEmail(form.Email); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if form.Password != form.ConfirmPassword {
				cmd.PrintErrln("Error: Passwords do not match.")
				return
			}

			if avatarPath != "" {
				file, err := os.Open(avatarPath)
				if err != nil {
					cmd.PrintErrln("Error: Failed to open avatar file:", err)
					return
				}
				defer file.Close()
				form.Avatar = file
				form.AvatarName = file.Name()
			}

			api := newAPIClient()
			service := newAuthService(api)
			user, err := service.SignUp(cmd.Context(), form)
			if err != nil {
				cmd.PrintErrln("Error: Failed to create the account.")
				printAPIFieldErrors(cmd, err)
				return
			}
			if user != nil {
				cmd.Printf("Account created for %s.\n", user.UserName)
			} else {
				cmd.Println("Account created successfully.")
			}
		},
	}

	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "Email address for the new account")
	cmd.Flags().StringVarP(&form.UserName, "username", "u", "", "User name for the new account")
	cmd.Flags().StringVar(&form.Country, "country", "", "Country")
	cmd.Flags().StringVar(&form.City, "city", "", "City")
	cmd.Flags().StringVar(&form.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&form.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&avatarPath, "avatar", "", "Path to an avatar image to upload")

	return cmd
}

// promptForInput prompts the user for input and returns the trimmed string.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the trimmed string.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(password))
}

// printAPIFieldErrors prints the field-level validation messages of an API
// error, when there are any.
func printAPIFieldErrors(cmd *cobra.Command, err error) {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return
	}
	for _, line := range apiErr.FieldErrors() {
		cmd.PrintErrln("  " + line)
	}
}
