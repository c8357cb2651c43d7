/*-------------------------------------------------------------------------
 *
 * root.go
 *    Root command for the InheritX CLI
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/cli/cmd/root.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL    string
	userID       string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "inheritx-cli",
	Short: "Command-line interface for the InheritX API",
	Long:  `inheritx-cli manages inheritance plans, approval workflows, and KYC records through the InheritX REST API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", getEnvOrDefault("INHERITX_URL", "http://localhost:8080"), "InheritX server URL")
	rootCmd.PersistentFlags().StringVar(&userID, "user", os.Getenv("INHERITX_USER_ID"), "User ID for authentication")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "Output format (text, json)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(approvalCmd)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
