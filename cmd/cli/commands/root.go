// Package commands implements the studio CLI subcommands
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lenskeep/studio/internal/api/v1/routes"
)

// flag names
const (
	flagServerAddress = "server-address"
)

// environment variable names
const (
	envServerAddress = "STUDIO_SERVER_ADDRESS"
)

// serverAddress holds the target API server address. Flag parsing sets this.
var serverAddress string

var httpClient = &http.Client{Timeout: 30 * time.Second}

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", routes.DefaultBaseURL, "Address of the studio API server (env: STUDIO_SERVER_ADDRESS)")

	RootCmd.AddCommand(jobsCmd)
	RootCmd.AddCommand(tasksCmd)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Studio CLI - A command line interface for the studio back office",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// Flag wins; fall back to the environment when it was not set
		if !cmd.Flags().Changed(flagServerAddress) {
			if envAddr := os.Getenv(envServerAddress); envAddr != "" {
				serverAddress = envAddr
			}
		}
	},
}

// apiGet performs a GET against the API and decodes the JSON response into out
func apiGet(path string, out interface{}) error {
	resp, err := httpClient.Get(serverAddress + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	return decodeResponse(resp, out)
}

// apiPost performs a POST against the API and decodes the JSON response into out
func apiPost(path string, payload, out interface{}) error {
	body := &bytes.Buffer{}
	if payload != nil {
		if err := json.NewEncoder(body).Encode(payload); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}
	resp, err := httpClient.Post(serverAddress+path, "application/json", body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server returned %s: %s", resp.Status, string(data))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// printJSON pretty prints a response payload
func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}
