package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newQuizCmd() *cobra.Command {
	var (
		path    string
		rawTags []string
		topTags []string
	)

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Submit a completed lightning quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags := make(map[string]float64, len(rawTags))
			for _, raw := range rawTags {
				name, value, found := strings.Cut(raw, "=")
				if !found {
					return fmt.Errorf("bad tag %q, want name=weight", raw)
				}
				w, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("bad tag weight %q: %w", value, err)
				}
				tags[name] = w
			}

			api := newAPIClient()
			resp, err := api.SubmitQuiz(cmd.Context(), podcastSlug, path, tags, topTags)
			if err != nil {
				printAPIError(err)
				return err
			}

			printResponse(resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "book", "quiz path (book, show, mentor, surprise)")
	cmd.Flags().StringSliceVar(&rawTags, "tag", nil, "tag weight as name=weight (repeatable)")
	cmd.Flags().StringSliceVar(&topTags, "top", nil, "top tags in rank order")
	return cmd
}
