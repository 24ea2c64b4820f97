package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hairizuan-noorazman/testcase-service/testcase"
	"github.com/spf13/cobra"
)

const testCasesPath = "/api/testcases"

const timeLayout = "2006-01-02 15:04:05"

func newTestCasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "testcases",
		Aliases: []string{"tc"},
		Short:   "Manage test cases",
	}

	cmd.AddCommand(newTestCasesListCmd())
	cmd.AddCommand(newTestCasesCreateCmd())
	cmd.AddCommand(newTestCasesGetCmd())
	cmd.AddCommand(newTestCasesUpdateCmd())
	cmd.AddCommand(newTestCasesDeleteCmd())
	return cmd
}

func newTestCasesListCmd() *cobra.Command {
	var page, size int
	var status, priority string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List test cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if page > 0 {
				query.Set("page", strconv.Itoa(page))
			}
			if size > 0 {
				query.Set("size", strconv.Itoa(size))
			}
			if status != "" {
				query.Set("status", status)
			}
			if priority != "" {
				query.Set("priority", priority)
			}

			body, err := getClient().Get(testCasesPath, query)
			if err != nil {
				return err
			}

			if flagJSON {
				printRawJSON(body)
				return nil
			}

			var resp testcase.Page
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printTable(testCaseHeaders(), testCaseRows(resp.Items))
			printMessage(fmt.Sprintf("\nPage %d of %d, showing %d of %d test cases",
				resp.Page+1, max(resp.TotalPages, 1), len(resp.Items), resp.Total))
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "Zero-based page number")
	cmd.Flags().IntVar(&size, "size", 0, "Page size")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (Pending, InProgress, Passed, Failed)")
	cmd.Flags().StringVar(&priority, "priority", "", "Filter by priority (High, Medium, Low)")
	return cmd
}

func newTestCasesCreateCmd() *cobra.Command {
	var title, description, status, priority string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new test case",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := CreateTestCaseRequest{
				Title:       title,
				Description: description,
				Status:      testcase.Status(status),
				Priority:    testcase.Priority(priority),
			}

			body, err := getClient().Post(testCasesPath, req)
			if err != nil {
				return err
			}

			if flagJSON {
				printRawJSON(body)
				return nil
			}

			var tc testcase.TestCase
			if err := json.Unmarshal(body, &tc); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printSuccess(fmt.Sprintf("Test case created: %s (%s)", tc.Title, tc.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Test case title (required)")
	cmd.MarkFlagRequired("title")
	cmd.Flags().StringVar(&description, "description", "", "Test case description")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (default Pending)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (default Medium)")
	return cmd
}

func newTestCasesGetCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a test case by ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := getClient().Get(testCasePath(id), nil)
			if err != nil {
				return err
			}

			if flagJSON {
				printRawJSON(body)
				return nil
			}

			var tc testcase.TestCase
			if err := json.Unmarshal(body, &tc); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printTable([]string{"FIELD", "VALUE"}, testCaseDetailRows(&tc))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Test case ID (required)")
	cmd.MarkFlagRequired("id")
	return cmd
}

func newTestCasesUpdateCmd() *cobra.Command {
	var id, title, description, status, priority string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a test case",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := UpdateTestCaseRequest{}
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if cmd.Flags().Changed("status") {
				s := testcase.Status(status)
				req.Status = &s
			}
			if cmd.Flags().Changed("priority") {
				p := testcase.Priority(priority)
				req.Priority = &p
			}

			body, err := getClient().Put(testCasePath(id), req)
			if err != nil {
				return err
			}

			if flagJSON {
				printRawJSON(body)
				return nil
			}

			var tc testcase.TestCase
			if err := json.Unmarshal(body, &tc); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printSuccess(fmt.Sprintf("Test case updated: %s (%s)", tc.Title, tc.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Test case ID (required)")
	cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	return cmd
}

func newTestCasesDeleteCmd() *cobra.Command {
	var id string
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a test case",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmAction(fmt.Sprintf("Delete test case %s?", id), yes) {
				printMessage("Aborted.")
				return nil
			}

			body, err := getClient().Delete(testCasePath(id))
			if err != nil {
				return err
			}

			var resp SuccessResponse
			if err := json.Unmarshal(body, &resp); err != nil || resp.Message == "" {
				resp.Message = "test case deleted"
			}
			printSuccess(resp.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Test case ID (required)")
	cmd.MarkFlagRequired("id")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip confirmation")
	return cmd
}

func testCasePath(id string) string {
	return testCasesPath + "/" + url.PathEscape(id)
}

func testCaseHeaders() []string {
	return []string{"ID", "TITLE", "STATUS", "PRIORITY", "UPDATED ON"}
}

func testCaseRows(items []*testcase.TestCase) [][]string {
	rows := make([][]string, 0, len(items))
	for _, tc := range items {
		rows = append(rows, []string{
			tc.ID,
			truncate(tc.Title, 40),
			colorStatus(tc.Status),
			colorPriority(tc.Priority),
			tc.UpdatedOn.Format(timeLayout),
		})
	}
	return rows
}

func testCaseDetailRows(tc *testcase.TestCase) [][]string {
	return [][]string{
		{"ID", tc.ID},
		{"Title", tc.Title},
		{"Description", tc.Description},
		{"Status", colorStatus(tc.Status)},
		{"Priority", colorPriority(tc.Priority)},
		{"Created On", tc.CreatedOn.Format(timeLayout)},
		{"Updated On", tc.UpdatedOn.Format(timeLayout)},
	}
}
