package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "creditledger-cli",
		Short: "Credit ledger CLI tool",
		Long:  `A command line interface for interacting with the credit ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the credit ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	balanceCmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show an account's credit balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get(fmt.Sprintf("/api/v1/accounts/%s/balance", args[0]))
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history <account-id>",
		Short: "Show an account's ledger history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			page, _ := cmd.Flags().GetInt("page")
			pageSize, _ := cmd.Flags().GetInt("page-size")
			get(fmt.Sprintf("/api/v1/accounts/%s/entries?page=%d&page_size=%d", args[0], page, pageSize))
		},
	}
	historyCmd.Flags().Int("page", 1, "Page number")
	historyCmd.Flags().Int("page-size", 20, "Entries per page")

	provisionCmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision a ledger account",
		Run: func(cmd *cobra.Command, args []string) {
			id, _ := cmd.Flags().GetString("id")
			name, _ := cmd.Flags().GetString("name")
			role, _ := cmd.Flags().GetString("role")
			post("/api/v1/accounts", map[string]string{
				"id":           id,
				"display_name": name,
				"role":         role,
			})
		},
	}
	provisionCmd.Flags().String("id", "", "Account ID (generated when empty)")
	provisionCmd.Flags().String("name", "", "Display name")
	provisionCmd.Flags().String("role", "member", "Account role (member or provider)")

	reconcileCmd := &cobra.Command{
		Use:   "reconcile [account-id]",
		Short: "Check ledger consistency",
		Long:  `Compares stored balances against the sum of ledger entries. With no argument, reconciles every account.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				get(fmt.Sprintf("/api/v1/reconciliation/%s", args[0]))
				return
			}
			get("/api/v1/reconciliation")
		},
	}

	rootCmd.AddCommand(balanceCmd, historyCmd, provisionCmd, reconcileCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func post(path string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Error reading response: %v\n", err)
		os.Exit(1)
	}

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (%d): %s\n", resp.StatusCode, body)
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}
