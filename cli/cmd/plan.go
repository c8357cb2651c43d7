/*-------------------------------------------------------------------------
 *
 * plan.go
 *    Plan management commands for inheritx-cli
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/cli/cmd/plan.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/skill-mind/InheritX-Backend/cli/pkg/client"
	"github.com/spf13/cobra"
)

var (
	planCmd = &cobra.Command{
		Use:   "plan",
		Short: "Manage inheritance plans",
	}

	planListCmd = &cobra.Command{
		Use:   "list",
		Short: "List plans for the current user",
		RunE:  listPlans,
	}

	planShowCmd = &cobra.Command{
		Use:   "show [plan-id]",
		Short: "Show plan details",
		Args:  cobra.ExactArgs(1),
		RunE:  showPlan,
	}

	planCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a new plan",
		RunE:  createPlan,
	}

	planDeleteCmd = &cobra.Command{
		Use:   "delete [plan-id]",
		Short: "Delete a plan",
		Args:  cobra.ExactArgs(1),
		RunE:  deletePlan,
	}

	planExecuteCmd = &cobra.Command{
		Use:   "execute [plan-id]",
		Short: "Execute a plan",
		Args:  cobra.ExactArgs(1),
		RunE:  executePlan,
	}

	createPlanName        string
	createPlanDescription string
	createPlanMultiSig    bool
	createPlanRequired    int
)

func init() {
	planCreateCmd.Flags().StringVarP(&createPlanName, "name", "n", "", "Plan name")
	planCreateCmd.Flags().StringVarP(&createPlanDescription, "description", "d", "", "Plan description")
	planCreateCmd.Flags().BoolVar(&createPlanMultiSig, "multi-sig", false, "Require multi-signature approval before execution")
	planCreateCmd.Flags().IntVar(&createPlanRequired, "required-approvals", 0, "Number of approvals required for execution")
	planCreateCmd.MarkFlagRequired("name")

	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planCreateCmd)
	planCmd.AddCommand(planDeleteCmd)
	planCmd.AddCommand(planExecuteCmd)
}

func listPlans(cmd *cobra.Command, args []string) error {
	apiClient := client.NewClient(serverURL, userID)

	page, err := apiClient.ListPlans()
	if err != nil {
		return fmt.Errorf("failed to list plans: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(page)
	}

	if len(page.Data) == 0 {
		fmt.Println("No plans found")
		return nil
	}

	fmt.Println("\n📋 Plans:")
	fmt.Println("─────────────────────────────────────────────────────────")
	for _, plan := range page.Data {
		fmt.Printf("  %-36s %s\n", plan.ID, plan.Name)
		if plan.Description != "" {
			fmt.Printf("    %s\n", plan.Description)
		}
		fmt.Printf("    Status: %s, Approvals: %d/%d\n", plan.Status, plan.CurrentApprovals, plan.RequiredApprovals)
	}
	fmt.Printf("\nTotal: %d\n\n", page.Total)

	return nil
}

func showPlan(cmd *cobra.Command, args []string) error {
	planID := args[0]
	apiClient := client.NewClient(serverURL, userID)

	plan, err := apiClient.GetPlan(planID)
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(plan)
	}

	fmt.Printf("\n📋 Plan: %s\n", plan.Name)
	fmt.Println("─────────────────────────────────────────────────────────")
	fmt.Printf("ID: %s\n", plan.ID)
	if plan.Description != "" {
		fmt.Printf("Description: %s\n", plan.Description)
	}
	fmt.Printf("Status: %s\n", plan.Status)
	fmt.Printf("Multi-signature: %v\n", plan.MultiSignatureApproval)
	fmt.Printf("Approvals: %d/%d\n", plan.CurrentApprovals, plan.RequiredApprovals)
	if plan.ExecutedAt != "" {
		fmt.Printf("Executed at: %s\n", plan.ExecutedAt)
	}
	fmt.Println()

	return nil
}

func createPlan(cmd *cobra.Command, args []string) error {
	apiClient := client.NewClient(serverURL, userID)

	plan, err := apiClient.CreatePlan(createPlanName, createPlanDescription, createPlanMultiSig, createPlanRequired)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(plan)
	}

	fmt.Printf("✅ Plan created successfully!\n")
	fmt.Printf("ID: %s\n", plan.ID)
	fmt.Printf("Name: %s\n", plan.Name)
	return nil
}

func deletePlan(cmd *cobra.Command, args []string) error {
	planID := args[0]
	apiClient := client.NewClient(serverURL, userID)

	fmt.Printf("🗑️  Deleting plan: %s\n", planID)

	if err := apiClient.DeletePlan(planID); err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	fmt.Println("✅ Plan deleted successfully")
	return nil
}

func executePlan(cmd *cobra.Command, args []string) error {
	planID := args[0]
	apiClient := client.NewClient(serverURL, userID)

	fmt.Printf("🚀 Executing plan: %s\n", planID)

	plan, err := apiClient.ExecutePlan(planID)
	if err != nil {
		return fmt.Errorf("failed to execute plan: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(plan)
	}

	fmt.Printf("✅ Plan executed successfully!\n")
	fmt.Printf("Status: %s\n", plan.Status)
	if plan.ExecutedAt != "" {
		fmt.Printf("Executed at: %s\n", plan.ExecutedAt)
	}
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
