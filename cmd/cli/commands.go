package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	rankingsPeriod string
	rankingsSort   string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(friendsCmd)
	rankingsCmd.Flags().StringVar(&rankingsPeriod, "period", "all", "Ranking period (day, week, month, year, all)")
	rankingsCmd.Flags().StringVar(&rankingsSort, "sort", "", "Sort order (points or winPercentage)")
	rootCmd.AddCommand(rankingsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the groups you belong to",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/groups")
	},
}

var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "List your friends",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/friends")
	},
}

var rankingsCmd = &cobra.Command{
	Use:   "rankings <group-id>",
	Short: "Show the rankings for a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		query.Set("period", rankingsPeriod)
		if rankingsSort != "" {
			query.Set("sort", rankingsSort)
		}
		return performGetRequest("/groups/" + args[0] + "/rankings?" + query.Encode())
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
