package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"

	"github.com/iho/bookkeeper/internal/render"
	"github.com/iho/bookkeeper/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bookkeeper-cli",
		Short: "Bookkeeper CLI tool",
		Long:  `A command line interface for interacting with the Bookkeeper API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Bookkeeper API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(entryCmd())
	rootCmd.AddCommand(ledgerCmd())
	rootCmd.AddCommand(chartCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var number, name, currency string
	var debitNormal bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]any{
				"number":       number,
				"name":         name,
				"currency":     currency,
				"debit_normal": debitNormal,
			}
			printResponse(request(http.MethodPost, "/api/v1/accounts", body, ""))
		},
	}
	createCmd.Flags().StringVar(&number, "number", "", "Chart-of-accounts number")
	createCmd.Flags().StringVar(&name, "name", "", "Account name")
	createCmd.Flags().StringVar(&currency, "currency", "USD", "Account currency")
	createCmd.Flags().BoolVar(&debitNormal, "debit-normal", true, "Whether a debit increases the presented balance")
	createCmd.MarkFlagRequired("name")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get an account by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			printResponse(request(http.MethodGet, "/api/v1/accounts/"+args[0], nil, ""))
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			printResponse(request(http.MethodGet, "/api/v1/accounts", nil, ""))
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd)
	return cmd
}

func entryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Entry operations",
	}

	var debit, credit, amount, currency, idempotencyKey string

	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Post a double-entry posting",
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]any{
				"debit_account_id":  debit,
				"credit_account_id": credit,
				"amount":            amount,
				"currency":          currency,
			}
			printResponse(request(http.MethodPost, "/api/v1/entries", body, idempotencyKey))
		},
	}
	postCmd.Flags().StringVar(&debit, "debit", "", "Debit account ID")
	postCmd.Flags().StringVar(&credit, "credit", "", "Credit account ID")
	postCmd.Flags().StringVar(&amount, "amount", "", "Amount to move")
	postCmd.Flags().StringVar(&currency, "currency", "USD", "Amount currency")
	postCmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Optional idempotency key")
	postCmd.MarkFlagRequired("debit")
	postCmd.MarkFlagRequired("credit")
	postCmd.MarkFlagRequired("amount")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List posted entries",
		Run: func(cmd *cobra.Command, args []string) {
			printResponse(request(http.MethodGet, "/api/v1/entries", nil, ""))
		},
	}

	cmd.AddCommand(postCmd, listCmd)
	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			body, err := request(http.MethodGet, "/api/v1/ledger/consistency", nil, "")
			if err != nil {
				fmt.Printf("Consistency check FAILED: %v\n", err)
				os.Exit(1)
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				fmt.Printf("Failed to parse response: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("Consistency check PASSED\n")
			if consistent, ok := result["consistent"].(bool); ok {
				fmt.Printf("Consistent: %v\n", consistent)
			}
			fmt.Printf("Status: %s\n", result["status"])
		},
	}

	cmd.AddCommand(consistencyCmd)
	return cmd
}

func chartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Print the chart of accounts tree",
		Run: func(cmd *cobra.Command, args []string) {
			body, err := request(http.MethodGet, "/api/v1/chart", nil, "")
			if err != nil {
				fmt.Printf("Error fetching chart: %v\n", err)
				os.Exit(1)
			}

			var root usecase.ChartNode
			if err := json.Unmarshal(body, &root); err != nil {
				fmt.Printf("Failed to parse chart: %v\n", err)
				os.Exit(1)
			}

			if err := render.Tree(os.Stdout, &root); err != nil {
				fmt.Printf("Failed to render chart: %v\n", err)
				os.Exit(1)
			}
		},
	}
}

// request performs an HTTP request against the API, retrying transport
// errors and 5xx responses with exponential backoff. Client errors are
// permanent and surface immediately.
func request(method, path string, body any, idempotencyKey string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	var result []byte

	operation := func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequest(method, baseURL+path, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if idempotencyKey != "" {
			req.Header.Set("Idempotency-Key", idempotencyKey)
		}

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error (status %d): %s", resp.StatusCode, data)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("request failed (status %d): %s", resp.StatusCode, data))
		}

		result = data
		return nil
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(operation, b); err != nil {
		return nil, err
	}

	return result, nil
}

func printResponse(body []byte, err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if json.Indent(&pretty, body, "", "  ") == nil {
		fmt.Println(pretty.String())
		return
	}
	fmt.Println(string(body))
}
