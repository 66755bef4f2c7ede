package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	sdk "github.com/onflow/flow-go-sdk"
	"github.com/spf13/cobra"

	model "github.com/onflow/dao-dashboard/model/dao"
)

var foundersCmd = &cobra.Command{
	Use:   "founders",
	Short: "List the founders and their votes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(func(d *dependencies) error {
			founders, err := d.client.Founders(cmd.Context())
			if err != nil {
				return err
			}
			votes, err := d.client.FounderVotes(cmd.Context())
			if err != nil {
				return err
			}
			return printFounders(cmd.OutOrStdout(), model.JoinFounderVotes(founders, votes))
		})
	},
}

var votesCmd = &cobra.Command{
	Use:   "votes",
	Short: "List the founder votes by descending count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(func(d *dependencies) error {
			votes, err := d.client.FounderVotes(cmd.Context())
			if err != nil {
				return err
			}
			return printFounderVotes(cmd.OutOrStdout(), votes)
		})
	},
}

var unclaimedCmd = &cobra.Command{
	Use:   "unclaimed",
	Short: "List the elected founders which have not claimed the founder role",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(func(d *dependencies) error {
			unclaimed, err := d.client.UnclaimedFounders(cmd.Context())
			if err != nil {
				return err
			}
			return printAddresses(cmd.OutOrStdout(), unclaimed)
		})
	},
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the latest topics with their options",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(func(d *dependencies) error {
			topics, err := d.client.LatestTopics(cmd.Context())
			if err != nil {
				return err
			}
			return printTopics(cmd.OutOrStdout(), topics, d.client.Session().Address())
		})
	},
}

func printFounders(w io.Writer, founders []model.Founder) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tADDRESS\tVOTES")
	for _, f := range founders {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", f.ID, "0x"+f.Address.Hex(), f.Votes)
	}
	return tw.Flush()
}

func printFounderVotes(w io.Writer, votes []model.FounderVote) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ADDRESS\tVOTES")
	for _, v := range votes {
		fmt.Fprintf(tw, "%s\t%d\n", "0x"+v.Address.Hex(), v.Votes)
	}
	return tw.Flush()
}

func printAddresses(w io.Writer, addrs []sdk.Address) error {
	if len(addrs) == 0 {
		_, err := fmt.Fprintln(w, "No unclaimed founders")
		return err
	}
	for _, addr := range addrs {
		if _, err := fmt.Fprintln(w, "0x"+addr.Hex()); err != nil {
			return err
		}
	}
	return nil
}

// printTopics prints each topic followed by its options. Topics the voter has voted on
// are marked.
func printTopics(w io.Writer, topics []model.Topic, voter sdk.Address) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i := range topics {
		topic := &topics[i]

		var flags []string
		if topic.IsFoundersTopic {
			flags = append(flags, "founders")
		}
		if topic.Closed {
			flags = append(flags, "closed")
		}
		if topic.AllowAnyoneAddOptions {
			flags = append(flags, "open options")
		}
		if voter != sdk.EmptyAddress && topic.HasVoted(voter) {
			flags = append(flags, "voted")
		}

		fmt.Fprintf(tw, "#%d\t%s", topic.ID, topic.Title)
		if len(flags) > 0 {
			fmt.Fprintf(tw, " [%s]", strings.Join(flags, ", "))
		}
		fmt.Fprintln(tw)
		if topic.Description != "" {
			fmt.Fprintf(tw, "\t%s\n", topic.Description)
		}
		for _, option := range topic.Options() {
			fmt.Fprintf(tw, "\t  %d. %s\t%d votes\n", option.Index, option.Label, option.Votes)
		}
	}
	return tw.Flush()
}
