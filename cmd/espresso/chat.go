package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/espresso-labs/espresso-gateway/internal/chat"
	"github.com/espresso-labs/espresso-gateway/internal/client"
)

const historyWindow = 10

func newChatCmd() *cobra.Command {
	var clearHistory bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := historyPath()
			if err != nil {
				return err
			}
			store, err := client.OpenHistoryStore(path)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if clearHistory {
				if err := store.Clear(ctx, podcastSlug); err != nil {
					return err
				}
			}

			api := newAPIClient()
			sessionID := ""

			fmt.Printf("Chatting about %s. Empty line to quit.\n", podcastSlug)
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					return nil
				}

				history, err := store.Recent(ctx, podcastSlug, historyWindow)
				if err != nil {
					return err
				}

				resp, err := api.SendMessage(ctx, line, podcastSlug, history, sessionID)
				if err != nil {
					printAPIError(err)
					continue
				}
				if resp.SessionID != "" {
					sessionID = resp.SessionID
				}

				_ = store.Append(ctx, podcastSlug, chat.RoleUser, line)
				_ = store.Append(ctx, podcastSlug, chat.RoleAssistant, resp.Content)

				printResponse(resp)
			}
		},
	}

	cmd.Flags().BoolVar(&clearHistory, "clear", false, "clear local history before starting")
	return cmd
}

func printResponse(resp *chat.Response) {
	fmt.Println()
	fmt.Println(resp.Content)

	if resp.NeedsClarification && len(resp.ClarificationQuestions) > 0 {
		fmt.Println("\nTo narrow this down:")
		for _, q := range resp.ClarificationQuestions {
			fmt.Printf("  - %s\n", q.Text)
		}
	}

	for _, ref := range resp.References {
		line := fmt.Sprintf("  [%s — %s", ref.GuestName, ref.EpisodeTitle)
		if ref.Timestamp != "" {
			line += " @ " + ref.Timestamp
		}
		fmt.Println(line + "]")
	}

	if resp.CreditsRemaining != nil && resp.CreditsTotal != nil {
		fmt.Printf("\n(%d of %d credits left today)\n", *resp.CreditsRemaining, *resp.CreditsTotal)
	}
	fmt.Println()
}

func printAPIError(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.CreditsRemaining != nil && *apiErr.CreditsRemaining == 0 {
			fmt.Fprintf(os.Stderr, "Out of credits: %s\n", apiErr.Message)
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", apiErr.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
