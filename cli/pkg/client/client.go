/*-------------------------------------------------------------------------
 *
 * client.go
 *    HTTP client for the InheritX API
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/cli/pkg/client/client.go
 *
 *-------------------------------------------------------------------------
 */

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
}

type Plan struct {
	ID                     string `json:"id"`
	UserID                 string `json:"user_id"`
	Name                   string `json:"name"`
	Description            string `json:"description,omitempty"`
	MultiSignatureApproval bool   `json:"multi_signature_approval"`
	RequiredApprovals      int    `json:"required_approvals"`
	CurrentApprovals       int    `json:"current_approvals"`
	Status                 string `json:"status"`
	ExecutedAt             string `json:"executed_at,omitempty"`
	CreatedAt              string `json:"created_at,omitempty"`
}

type Approval struct {
	ID            string `json:"id"`
	PlanID        string `json:"plan_id"`
	ApproverEmail string `json:"approver_email"`
	Decision      string `json:"decision"`
	DecidedAt     string `json:"decided_at,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

type ApprovalStatus struct {
	Plan       Plan       `json:"plan"`
	Approvals  []Approval `json:"approvals"`
	Approved   int        `json:"approved"`
	Rejected   int        `json:"rejected"`
	Pending    int        `json:"pending"`
	CanExecute bool       `json:"can_execute"`
}

type ApprovalDetail struct {
	Approval Approval `json:"approval"`
	Plan     Plan     `json:"plan"`
}

type PlanPage struct {
	Data     []Plan `json:"data"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Total    int64  `json:"total"`
}

func NewClient(baseURL, userID string) *Client {
	return &Client{
		baseURL: baseURL,
		userID:  userID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreatePlan(name, description string, multiSig bool, requiredApprovals int) (*Plan, error) {
	reqBody := map[string]interface{}{
		"name":                     name,
		"description":              description,
		"multi_signature_approval": multiSig,
		"required_approvals":       requiredApprovals,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.makeRequest("POST", "/api/v1/plans", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var plan Plan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &plan, nil
}

func (c *Client) GetPlan(planID string) (*Plan, error) {
	resp, err := c.makeRequest("GET", fmt.Sprintf("/api/v1/plans/%s", planID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var plan Plan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &plan, nil
}

func (c *Client) ListPlans() (*PlanPage, error) {
	resp, err := c.makeRequest("GET", "/api/v1/plans", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var page PlanPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &page, nil
}

func (c *Client) DeletePlan(planID string) error {
	resp, err := c.makeRequest("DELETE", fmt.Sprintf("/api/v1/plans/%s", planID), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) ExecutePlan(planID string) (*Plan, error) {
	resp, err := c.makeRequest("POST", fmt.Sprintf("/api/v1/plans/%s/execute", planID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var plan Plan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &plan, nil
}

func (c *Client) RequestApprovals(planID string, emails []string, requiredApprovals int) ([]Approval, error) {
	body, err := json.Marshal(map[string]interface{}{
		"approver_emails":    emails,
		"required_approvals": requiredApprovals,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.makeRequest("POST", fmt.Sprintf("/api/v1/plans/%s/approvals", planID), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var approvals []Approval
	if err := json.NewDecoder(resp.Body).Decode(&approvals); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return approvals, nil
}

func (c *Client) GetApprovalStatus(planID string) (*ApprovalStatus, error) {
	resp, err := c.makeRequest("GET", fmt.Sprintf("/api/v1/plans/%s/approvals", planID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var status ApprovalStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &status, nil
}

func (c *Client) GetApproval(approvalID string) (*ApprovalDetail, error) {
	resp, err := c.makeRequest("GET", fmt.Sprintf("/api/v1/approvals/%s", approvalID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var detail ApprovalDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &detail, nil
}

func (c *Client) SubmitApproval(approvalID, decision string) (*ApprovalDetail, error) {
	body, err := json.Marshal(map[string]string{"decision": decision})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.makeRequest("PUT", fmt.Sprintf("/api/v1/approvals/%s", approvalID), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var detail ApprovalDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &detail, nil
}

func (c *Client) makeRequest(method, path string, body io.Reader) (*http.Response, error) {
	url := c.baseURL + path
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-User-ID", c.userID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
