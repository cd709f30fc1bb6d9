// Command espresso is a terminal client for the chat gateway. It plays the
// role the browser plays in the web product: it keeps the device identity,
// replays recent conversation turns, and renders clarification questions
// and credit warnings.
package main

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/espresso-labs/espresso-gateway/internal/client"
)

var (
	serverURL   string
	podcastSlug string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "espresso",
		Short: "Chat with the podcast knowledge gateway",
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "gateway base URL")
	root.PersistentFlags().StringVar(&podcastSlug, "podcast", "lennys-podcast", "podcast slug to query")

	root.AddCommand(newChatCmd())
	root.AddCommand(newQuizCmd())
	return root
}

func newAPIClient() *client.Client {
	store, err := client.NewFileDeviceStore()
	if err != nil {
		// unknown device: requests still go through with an empty id
		log.WithError(err).Debug("device store unavailable")
		return client.New(serverURL, nil)
	}
	return client.New(serverURL, store)
}

func historyPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Join(dir, "espresso"), 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "espresso", "history.db"), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
