package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// profileCmd groups the account-profile commands
func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and edit your account profile",
	}

	cmd.AddCommand(
		profileShowCmd(),
		profileEditCmd(),
		profileRefreshCmd(),
	)

	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your account profile",
		Run: func(cmd *cobra.Command, args []string) {
			api := newAPIClient()
			user, err := api.Profile(cmd.Context())
			if err != nil {
				cmd.PrintErrln("Error:", classifyError(err).Message)
				log.Error().Err(err).Msg("Failed to fetch profile")
				return
			}

			cmd.Println("Profile Information:")
			cmd.Printf("User name: %s\n", user.UserName)
			cmd.Printf("Email: %s\n", user.Email)
			if user.Country != "" {
				cmd.Printf("Country: %s\n", user.Country)
			}
			if user.City != "" {
				cmd.Printf("City: %s\n", user.City)
			}
			if user.Address != "" {
				cmd.Printf("Address: %s\n", user.Address)
			}
			if user.PhoneNumber != "" {
				cmd.Printf("Phone: %s\n", user.PhoneNumber)
			}
			if user.LastSignIn != "" {
				cmd.Printf("Last sign-in: %s\n", user.LastSignIn)
			}
		},
	}
}

func profileEditCmd() *cobra.Command {
	var country, city, address, phone string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Update your account profile",
		Run: func(cmd *cobra.Command, args []string) {
			if country == "" && city == "" && address == "" && phone == "" {
				cmd.PrintErrln("Error: Nothing to update. Pass at least one of --country, --city, --address, or --phone.")
				return
			}

			api := newAPIClient()
			user, err := api.Profile(cmd.Context())
			if err != nil {
				cmd.PrintErrln("Error:", classifyError(err).Message)
				log.Error().Err(err).Msg("Failed to fetch profile before update")
				return
			}

			if country != "" {
				user.Country = country
			}
			if city != "" {
				user.City = city
			}
			if address != "" {
				user.Address = address
			}
			if phone != "" {
				user.PhoneNumber = phone
			}

			updated, err := api.UpdateProfile(cmd.Context(), user)
			if err != nil {
				cmd.PrintErrln("Error: Failed to update your profile.")
				printAPIFieldErrors(cmd, err)
				return
			}
			cmd.Printf("Profile updated for %s.\n", updated.UserName)
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Country")
	cmd.Flags().StringVar(&city, "city", "", "City")
	cmd.Flags().StringVar(&address, "address", "", "Street address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	return cmd
}

// profileRefreshCmd refreshes the stored session tokens without signing in again
func profileRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh your session tokens",
		Run: func(cmd *cobra.Command, args []string) {
			api := newAPIClient()
			service := newAuthService(api)
			if err := service.Refresh(cmd.Context()); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			cmd.Println("Session refreshed.")
		},
	}
}
