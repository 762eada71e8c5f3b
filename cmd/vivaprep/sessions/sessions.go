package sessionscmder

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vivaprep/vivaprep/pkg/record"
)

const sessionsLongDesc string = `List recorded chat exchanges from a running server.

Fetches the /sessions endpoint and prints one line per exchange:
when it happened, how many turns were submitted, how many history
items were dropped, and how the model call ended.

Examples:
  vivaprep sessions http://localhost:8080
  vivaprep sessions http://192.168.1.42:8080`

const sessionsShortDesc string = "List recorded chat exchanges"

type sessionsCommander struct {
	timeout time.Duration
}

type sessionsResponse struct {
	Count    int                `json:"count"`
	Sessions []*record.Exchange `json:"sessions"`
}

func NewSessionsCmd() *cobra.Command {
	cmder := &sessionsCommander{}

	cmd := &cobra.Command{
		Use:   "sessions <server-url>",
		Short: sessionsShortDesc,
		Long:  sessionsLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args[0])
		},
	}

	cmd.Flags().DurationVar(&cmder.timeout, "timeout", 10*time.Second, "HTTP request timeout")

	return cmd
}

func (c *sessionsCommander) run(cmd *cobra.Command, serverURL string) error {
	serverURL = strings.TrimRight(serverURL, "/")

	resp, err := c.fetch(serverURL)
	if err != nil {
		return err
	}

	if resp.Count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded sessions.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d recorded session(s)\n", resp.Count)
	for _, e := range resp.Sessions {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  turns=%d skipped=%d  %s  %s\n",
			shortID(e.ID),
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Turns,
			e.Skipped,
			e.Outcome,
			e.ReplyPreview,
		)
	}

	return nil
}

func (c *sessionsCommander) fetch(serverURL string) (*sessionsResponse, error) {
	client := &http.Client{Timeout: c.timeout}

	resp, err := client.Get(serverURL + "/sessions")
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var result sessionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	return &result, nil
}

func shortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12]
}
