package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	sdk "github.com/onflow/flow-go-sdk"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/onflow/dao-dashboard/engine/dashboard"
	"github.com/onflow/dao-dashboard/module/dao"
	"github.com/onflow/dao-dashboard/module/txwatch"
)

var (
	flagTitle                 string
	flagDescription           string
	flagOptions               []string
	flagAllowAnyoneAddOptions bool
)

var proposeTopicCmd = &cobra.Command{
	Use:   "propose-topic",
	Short: "Propose a new topic, only founders can propose topics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(func(d *dependencies) error {
			return submitAndWatch(cmd, d, func(ctx context.Context) (sdk.Identifier, error) {
				return d.client.ProposeTopic(ctx, dao.ProposeTopicRequest{
					Title:                 flagTitle,
					Description:           flagDescription,
					Options:               flagOptions,
					AllowAnyoneAddOptions: flagAllowAnyoneAddOptions,
				})
			})
		})
	},
}

var voteFounderCmd = &cobra.Command{
	Use:   "vote-founder <address> <address> <address>",
	Short: "Vote for three founder candidates",
	Args:  cobra.MaximumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dao.VoteFounderRequest
		copy(req.Candidates[:], args)

		return withDependencies(func(d *dependencies) error {
			return submitAndWatch(cmd, d, func(ctx context.Context) (sdk.Identifier, error) {
				return d.client.VoteFounder(ctx, req)
			})
		})
	},
}

var voteTopicCmd = &cobra.Command{
	Use:   "vote-topic <topic-id> <option-index>",
	Short: "Vote for an option of a topic",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, err := parseTopicID(args[0])
		if err != nil {
			return err
		}

		req := dao.VoteTopicRequest{TopicID: topicID}
		if len(args) == 2 {
			option, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid option index %q", args[1])
			}
			req.Option = &option
		}

		return withDependencies(func(d *dependencies) error {
			return submitAndWatch(cmd, d, func(ctx context.Context) (sdk.Identifier, error) {
				return d.client.VoteTopic(ctx, req)
			})
		})
	},
}

var addOptionCmd = &cobra.Command{
	Use:   "add-option <topic-id> <option>",
	Short: "Add an option to a topic which accepts new options",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, err := parseTopicID(args[0])
		if err != nil {
			return err
		}

		return withDependencies(func(d *dependencies) error {
			req := dao.AddTopicOptionRequest{TopicID: topicID, Option: args[1]}

			// the contract rejects the addition anyway, the lookup only fails early
			topics, err := d.client.LatestTopics(cmd.Context())
			if err != nil {
				log.Debug().Err(err).Msg("could not look up topic")
			}
			for i := range topics {
				if topics[i].ID == topicID {
					req.Topic = &topics[i]
				}
			}

			return submitAndWatch(cmd, d, func(ctx context.Context) (sdk.Identifier, error) {
				return d.client.AddTopicOption(ctx, req)
			})
		})
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <transaction-id>",
	Short: "Follow a transaction until it is sealed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		txID, err := txwatch.ParseTransactionID(args[0])
		if err != nil {
			return err
		}

		return withDependencies(func(d *dependencies) error {
			return watchTransaction(cmd.Context(), d.watcher, txID, cmd.OutOrStdout(), cmd.ErrOrStderr())
		})
	},
}

func init() {
	proposeTopicCmd.Flags().StringVar(&flagTitle, "title", "", "title of the topic")
	proposeTopicCmd.Flags().StringVar(&flagDescription, "description", "", "description of the topic")
	proposeTopicCmd.Flags().StringArrayVar(&flagOptions, "option", nil, "option of the topic, repeat for each option")
	proposeTopicCmd.Flags().BoolVar(&flagAllowAnyoneAddOptions, "allow-anyone-add-options", false, "let anyone add options to the topic")
}

func parseTopicID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid topic ID %q", raw)
	}
	return id, nil
}

// submitAndWatch submits a transaction and follows it to its outcome. Errors are
// reported with the message meant for users.
func submitAndWatch(cmd *cobra.Command, d *dependencies, submit func(ctx context.Context) (sdk.Identifier, error)) error {
	txID, err := submit(cmd.Context())
	if err != nil {
		log.Debug().Err(err).Msg("transaction not submitted")
		return errors.New(dao.UserMessage(err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Transaction submitted: %s\n", txID)
	return watchTransaction(cmd.Context(), d.watcher, txID, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// watchTransaction shows the lifecycle of a transaction on a spinner and returns an
// error unless the transaction is sealed successfully.
func watchTransaction(ctx context.Context, watcher *txwatch.Watcher, txID sdk.Identifier, out io.Writer, progress io.Writer) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription(txwatch.MessageProcessing),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	var sealed bool
	var failure string
	reporter := txwatch.Callbacks{
		Status: func(_ sdk.Identifier, _ sdk.TransactionStatus, message string) {
			bar.Describe(message)
			_ = bar.Add(1)
		},
		Success: func(sdk.Identifier, *txwatch.Result) {
			sealed = true
		},
		Failure: func(_ sdk.Identifier, message string) {
			failure = message
		},
	}

	watch, err := watcher.Watch(ctx, txID, reporter)
	if err != nil {
		return err
	}
	<-watch.Done()
	_ = bar.Finish()

	switch {
	case sealed:
		_, err := fmt.Fprintln(out, dashboard.MessageSealed)
		return err
	case failure != "":
		return errors.New(failure)
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("stopped watching transaction %s before it was sealed", txID)
	}
}
