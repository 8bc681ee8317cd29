package main

import (
	"context"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"artimentor/internal/llm"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage AI provider credentials",
	Long: `Stores and verifies the API key for the configured AI provider.
Keys live in the local database under .mentor/, never in the config file.

Available subcommands:
  set    - Store an API key (prompted, not echoed)
  status - Verify the stored credentials against the provider
  clear  - Remove the stored API key`,
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store an API key for the configured provider",
	RunE:  runAuthSet,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Verify the configured provider is reachable",
	RunE:  runAuthStatus,
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE:  runAuthClear,
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authClearCmd)
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	provider := llm.Provider(userConfig.GetProvider())
	if !provider.RequiresSecret() {
		fmt.Printf("Provider %s needs no API key.\n", provider)
		return nil
	}

	fmt.Printf("API key for %s: ", provider)
	keyBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}
	key := strings.TrimSpace(string(keyBytes))
	if key == "" {
		return fmt.Errorf("empty key")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SetCredential(string(provider), key); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Key stored. Run: mentor auth status to verify it."))
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	cfg, err := buildClientConfig(db)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client, err := llm.New(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Provider: %s\nModel:    %s\n", cfg.Provider, cfg.ModelOrDefault())
	fmt.Println(mutedStyle.Render("Verifying..."))
	if err := client.Verify(ctx); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	fmt.Println(successStyle.Render("Credentials verified."))
	return nil
}

func runAuthClear(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	provider := userConfig.GetProvider()
	if err := db.ClearCredential(provider); err != nil {
		return err
	}
	fmt.Printf("Cleared stored key for %s.\n", provider)
	return nil
}
