package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicer/internal/calendar"
	"invoicer/internal/logger"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Google Calendar",
	Long: `Run the Google OAuth2 consent flow and cache the resulting token.

Requires OAuth 2.0 client credentials (Desktop app) downloaded from the
Google Cloud Console with the Calendar API enabled. The token is stored
locally and refreshed automatically on later runs.`,
	Args: cobra.NoArgs,
	RunE: runAuth,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear stored authentication credentials",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("auth")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.CredentialsFile); os.IsNotExist(err) {
		fmt.Println("OAuth client credentials not found.")
		fmt.Println()
		fmt.Println("Steps:")
		fmt.Println("1. Go to https://console.cloud.google.com/")
		fmt.Println("2. Create a new project or select an existing one")
		fmt.Println("3. Enable the Google Calendar API")
		fmt.Println("4. Create OAuth 2.0 credentials (Desktop app)")
		fmt.Println("5. Download the credentials JSON file")
		fmt.Printf("6. Save it as: %s\n", cfg.CredentialsFile)
		return fmt.Errorf("credentials file missing: %s", cfg.CredentialsFile)
	}

	fmt.Println("Authenticating with Google Calendar...")
	if _, err := calendar.Authenticate(cmd.Context(), cfg); err != nil {
		log.Error().Err(err).Msg("Authentication failed")
		return fmt.Errorf("authentication failed: %w", err)
	}

	log.Info().Msg("Authentication succeeded")
	fmt.Println("Successfully authenticated!")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cleared, err := calendar.ClearCredentials(cfg)
	if err != nil {
		return err
	}
	if cleared {
		fmt.Println("Logged out successfully")
	} else {
		fmt.Println("No credentials to clear")
	}
	return nil
}
