/*-------------------------------------------------------------------------
 *
 * approval.go
 *    Approval workflow commands for inheritx-cli
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/cli/cmd/approval.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"fmt"

	"github.com/skill-mind/InheritX-Backend/cli/pkg/client"
	"github.com/spf13/cobra"
)

var (
	approvalCmd = &cobra.Command{
		Use:   "approval",
		Short: "Manage approval workflows",
	}

	approvalRequestCmd = &cobra.Command{
		Use:   "request [plan-id]",
		Short: "Request approvals from a set of approvers",
		Args:  cobra.ExactArgs(1),
		RunE:  requestApprovals,
	}

	approvalStatusCmd = &cobra.Command{
		Use:   "status [plan-id]",
		Short: "Show approval status for a plan",
		Args:  cobra.ExactArgs(1),
		RunE:  approvalStatus,
	}

	approvalShowCmd = &cobra.Command{
		Use:   "show [approval-id]",
		Short: "Show approval details",
		Args:  cobra.ExactArgs(1),
		RunE:  showApproval,
	}

	approvalSubmitCmd = &cobra.Command{
		Use:   "submit [approval-id]",
		Short: "Submit an approval decision",
		Args:  cobra.ExactArgs(1),
		RunE:  submitApproval,
	}

	requestEmails   []string
	requestRequired int
	submitDecision  string
)

func init() {
	approvalRequestCmd.Flags().StringSliceVarP(&requestEmails, "emails", "e", []string{}, "Comma-separated list of approver email addresses")
	approvalRequestCmd.MarkFlagRequired("emails")
	approvalRequestCmd.Flags().IntVarP(&requestRequired, "required", "r", 1, "Number of approvals required before the plan can execute")
	approvalSubmitCmd.Flags().StringVarP(&submitDecision, "decision", "d", "", "Decision to record (approved, rejected)")
	approvalSubmitCmd.MarkFlagRequired("decision")

	approvalCmd.AddCommand(approvalRequestCmd)
	approvalCmd.AddCommand(approvalStatusCmd)
	approvalCmd.AddCommand(approvalShowCmd)
	approvalCmd.AddCommand(approvalSubmitCmd)
}

func requestApprovals(cmd *cobra.Command, args []string) error {
	planID := args[0]
	apiClient := client.NewClient(serverURL, userID)

	approvals, err := apiClient.RequestApprovals(planID, requestEmails, requestRequired)
	if err != nil {
		return fmt.Errorf("failed to request approvals: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(approvals)
	}

	fmt.Printf("✅ Requested %d approvals\n", len(approvals))
	for _, approval := range approvals {
		fmt.Printf("  %-36s %s\n", approval.ID, approval.ApproverEmail)
	}
	return nil
}

func approvalStatus(cmd *cobra.Command, args []string) error {
	planID := args[0]
	apiClient := client.NewClient(serverURL, userID)

	status, err := apiClient.GetApprovalStatus(planID)
	if err != nil {
		return fmt.Errorf("failed to get approval status: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(status)
	}

	fmt.Printf("\n📋 Plan: %s\n", status.Plan.Name)
	fmt.Println("─────────────────────────────────────────────────────────")
	fmt.Printf("Status: %s\n", status.Plan.Status)
	fmt.Printf("Approved: %d, Rejected: %d, Pending: %d\n", status.Approved, status.Rejected, status.Pending)
	fmt.Printf("Required: %d\n", status.Plan.RequiredApprovals)
	fmt.Printf("Ready to execute: %t\n", status.CanExecute)
	fmt.Println()
	for _, approval := range status.Approvals {
		fmt.Printf("  %-36s %-30s %s\n", approval.ID, approval.ApproverEmail, approval.Decision)
	}
	fmt.Println()

	return nil
}

func showApproval(cmd *cobra.Command, args []string) error {
	approvalID := args[0]
	apiClient := client.NewClient(serverURL, userID)

	detail, err := apiClient.GetApproval(approvalID)
	if err != nil {
		return fmt.Errorf("failed to get approval: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(detail)
	}

	fmt.Printf("\n✉️  Approval: %s\n", detail.Approval.ID)
	fmt.Println("─────────────────────────────────────────────────────────")
	fmt.Printf("Plan: %s (%s)\n", detail.Plan.Name, detail.Plan.ID)
	fmt.Printf("Approver: %s\n", detail.Approval.ApproverEmail)
	fmt.Printf("Decision: %s\n", detail.Approval.Decision)
	if detail.Approval.DecidedAt != "" {
		fmt.Printf("Decided at: %s\n", detail.Approval.DecidedAt)
	}
	fmt.Println()

	return nil
}

func submitApproval(cmd *cobra.Command, args []string) error {
	approvalID := args[0]
	apiClient := client.NewClient(serverURL, userID)

	detail, err := apiClient.SubmitApproval(approvalID, submitDecision)
	if err != nil {
		return fmt.Errorf("failed to submit approval: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(detail)
	}

	fmt.Printf("✅ Decision recorded: %s\n", detail.Approval.Decision)
	fmt.Printf("Plan status: %s (%d/%d approvals)\n", detail.Plan.Status, detail.Plan.CurrentApprovals, detail.Plan.RequiredApprovals)
	return nil
}
