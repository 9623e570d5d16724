package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tmasrour/zanbil/auth"
	"github.com/tmasrour/zanbil/cart"
	"github.com/tmasrour/zanbil/client"
	"github.com/tmasrour/zanbil/db"
)

const (
	defaultBaseURL = "http://localhost:5000/api/v1"
)

func Execute() {
	loadDotEnv()

	rootCmd := createRootCmd()
	initializeDatabase()
	defer closeDatabase()

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for a command")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed.")
		os.Exit(1)
	}
}

func createRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zanbil",
		Short: "A command-line storefront client",
	}

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		signupCmd(),
		profileCmd(),
		catalogueCmd(),
		cartCmd(),
		checkoutCmd(),
		ordersCmd(),
		invoicesCmd(),
		adminCmd(),
		versionCmd(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	return rootCmd
}

// loadDotEnv picks up a .env file when one exists; environment variables
// already set win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Msg("No .env file loaded")
	}
}

func initializeDatabase() {
	if err := db.InitDB(); err != nil {
		log.Error().Err(err).Msg("Failed to initialize database")
		os.Exit(1)
	}
}

func closeDatabase() {
	if err := db.CloseDB(); err != nil {
		log.Error().Err(err).Msg("Failed to close the database.")
		os.Exit(1)
	}
}

// newAPIClient builds the storefront API client over the stored credentials.
func newAPIClient() *client.Client {
	baseURL := os.Getenv("ZANBIL_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	store := db.NewCredentialStore(db.NewTokenRepository(db.Db))
	return client.New(baseURL, os.Getenv("ZANBIL_API_KEY"), store)
}

func newAuthService(api *client.Client) *auth.Service {
	return auth.NewService(db.NewCredentialStore(db.NewTokenRepository(db.Db)), api)
}

func newCartManager(api *client.Client) *cart.Manager {
	return cart.NewManager(api)
}
