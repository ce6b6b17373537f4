package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anishpatel/jobsheet/internal/secrets"
)

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Manage the Adzuna app key in the OS keychain",
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the Adzuna app key (read from stdin)",
	Long:  "Reads the app key from the first line of stdin and stores it in the OS keychain for the configured adzuna.app_id.",
	RunE:  runSetKey,
}

var deleteKeyCmd = &cobra.Command{
	Use:   "delete-key",
	Short: "Remove the stored Adzuna app key",
	RunE:  runDeleteKey,
}

func init() {
	secretsCmd.AddCommand(setKeyCmd, deleteKeyCmd)
	rootCmd.AddCommand(secretsCmd)
}

func runSetKey(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Enter Adzuna app key for %s: ", cfg.Adzuna.AppID)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "\nfailed to read key: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "\nno key given")
		}
		os.Exit(1)
	}

	if err := secrets.SetAppKey(cfg.Adzuna.AppID, scanner.Text()); err != nil {
		fmt.Fprintf(os.Stderr, "\nfailed to store key: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr)
	fmt.Printf("Stored app key for %s in the keychain\n", cfg.Adzuna.AppID)
	return nil
}

func runDeleteKey(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := secrets.DeleteAppKey(cfg.Adzuna.AppID); err != nil {
		fmt.Fprintf(os.Stderr, "failed to delete key: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted app key for %s from the keychain\n", cfg.Adzuna.AppID)
	return nil
}
