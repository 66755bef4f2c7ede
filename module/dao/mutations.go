package dao

import (
	"context"
	"fmt"
	"strings"

	"github.com/onflow/cadence"
	sdk "github.com/onflow/flow-go-sdk"

	model "github.com/onflow/dao-dashboard/model/dao"
	"github.com/onflow/dao-dashboard/module/scripts"
	"github.com/onflow/dao-dashboard/utils/logging"
)

type ProposeTopicRequest struct {
	Title                 string
	Description           string
	Options               []string
	AllowAnyoneAddOptions bool
}

type proposeTopicInput struct {
	Title       string   `validate:"required"`
	Description string   `validate:"required"`
	Options     []string `validate:"min=2"`
}

// VoteFounderRequest holds the three founder candidates, as entered by the user.
type VoteFounderRequest struct {
	Candidates [3]string
}

type voteFounderInput struct {
	Candidates []string `validate:"dive,required"`
}

type voteFounderAddresses struct {
	Candidates []string `validate:"dive,flow_address"`
}

// VoteTopicRequest selects an option of a topic. A nil Option means nothing was selected.
type VoteTopicRequest struct {
	TopicID int64
	Option  *uint64
}

type voteTopicInput struct {
	Selection *uint64 `validate:"required"`
	TopicID   int64   `validate:"min=0"`
}

// AddTopicOptionRequest adds an option to a topic. Topic is the last known state
// of the topic, if any, and is only used to reject additions early.
type AddTopicOptionRequest struct {
	TopicID int64
	Option  string
	Topic   *model.Topic
}

type addTopicOptionInput struct {
	Option  string `validate:"required"`
	TopicID int64  `validate:"min=0"`
}

// ProposeTopic submits a new topic. Only founders can propose topics, which is enforced
// by the contract. Blank options are dropped.
func (c *Client) ProposeTopic(ctx context.Context, req ProposeTopicRequest) (sdk.Identifier, error) {
	options := make([]string, 0, len(req.Options))
	for _, option := range req.Options {
		if strings.TrimSpace(option) != "" {
			options = append(options, option)
		}
	}

	err := c.validateRequest(proposeTopicInput{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Options:     options,
	})
	if err != nil {
		return sdk.EmptyID, err
	}

	values := make([]cadence.Value, 0, len(options))
	for _, option := range options {
		values = append(values, cadence.String(option))
	}
	optionsArg := cadence.NewArray(values).
		WithType(cadence.NewVariableSizedArrayType(cadence.StringType{}))

	return c.submit(ctx, scripts.ProposeTopic,
		cadence.String(req.Title),
		cadence.String(req.Description),
		optionsArg,
		cadence.NewBool(req.AllowAnyoneAddOptions),
	)
}

// VoteFounder votes for three founder candidates.
func (c *Client) VoteFounder(ctx context.Context, req VoteFounderRequest) (sdk.Identifier, error) {
	candidates := make([]string, 0, len(req.Candidates))
	for _, candidate := range req.Candidates {
		candidates = append(candidates, strings.TrimSpace(candidate))
	}

	if err := c.validateRequest(voteFounderInput{Candidates: candidates}); err != nil {
		return sdk.EmptyID, err
	}
	if err := c.validateRequest(voteFounderAddresses{Candidates: candidates}); err != nil {
		return sdk.EmptyID, err
	}

	chainID := c.registry.Environment().ChainID
	args := make([]cadence.Value, 0, len(candidates))
	addrs := make([]sdk.Address, 0, len(candidates))
	for _, candidate := range candidates {
		addr, err := ParseAddress(candidate, chainID)
		if err != nil {
			return sdk.EmptyID, &ValidationError{Message: MessageInvalidAddress + candidate, err: err}
		}
		args = append(args, cadence.NewAddress(addr))
		addrs = append(addrs, addr)
	}

	c.log.Debug().Strs("candidates", logging.Addresses(addrs)).Msg("voting for founders")
	return c.submit(ctx, scripts.VoteFounder, args...)
}

// VoteTopic votes for an option of a topic.
func (c *Client) VoteTopic(ctx context.Context, req VoteTopicRequest) (sdk.Identifier, error) {
	err := c.validateRequest(voteTopicInput{
		Selection: req.Option,
		TopicID:   req.TopicID,
	})
	if err != nil {
		return sdk.EmptyID, err
	}

	return c.submit(ctx, scripts.VoteTopic,
		cadence.NewUInt64(uint64(req.TopicID)),
		cadence.NewUInt64(*req.Option),
	)
}

// AddTopicOption adds a string option to a topic that allows anyone to add options.
func (c *Client) AddTopicOption(ctx context.Context, req AddTopicOptionRequest) (sdk.Identifier, error) {
	err := c.validateRequest(addTopicOptionInput{
		Option:  strings.TrimSpace(req.Option),
		TopicID: req.TopicID,
	})
	if err != nil {
		return sdk.EmptyID, err
	}
	if req.Topic != nil && !req.Topic.AllowAnyoneAddOptions {
		return sdk.EmptyID, NewValidationError(MessageOptionsNotAllowed)
	}

	return c.submit(ctx, scripts.AddTopicOption,
		cadence.NewUInt64(uint64(req.TopicID)),
		cadence.String(req.Option),
	)
}

// submit builds the named transaction with the session signer as proposer, payer and
// sole authorizer, signs the envelope and sends it.
func (c *Client) submit(ctx context.Context, name scripts.Name, args ...cadence.Value) (sdk.Identifier, error) {
	if !c.session.LoggedIn() {
		return sdk.EmptyID, &ValidationError{Message: MessageNotLoggedIn, err: ErrNotLoggedIn}
	}

	txID, err := c.sendTransaction(ctx, name, args)
	if err != nil {
		c.metrics.TransactionSubmissionFailed(string(name))
		c.log.Warn().Err(err).Str("transaction", string(name)).Msg("transaction submission failed")
		return sdk.EmptyID, newSubmissionError(name, err)
	}

	c.metrics.TransactionSubmitted(string(name))
	c.log.Info().
		Str("transaction", string(name)).
		Hex("tx_id", logging.ID(txID)).
		Str("signer", c.session.Address().Hex()).
		Msg("transaction submitted")
	return txID, nil
}

func (c *Client) sendTransaction(ctx context.Context, name scripts.Name, args []cadence.Value) (sdk.Identifier, error) {
	code, err := c.registry.Transaction(name)
	if err != nil {
		return sdk.EmptyID, err
	}

	signerAddress := c.session.Address()

	reference, err := c.access.GetLatestBlockHeader(ctx, true)
	if err != nil {
		return sdk.EmptyID, fmt.Errorf("could not get reference block: %w", err)
	}

	account, err := c.access.GetAccountAtLatestBlock(ctx, signerAddress)
	if err != nil {
		return sdk.EmptyID, fmt.Errorf("could not get signer account: %w", err)
	}

	key, err := findKey(account, c.session.KeyIndex())
	if err != nil {
		return sdk.EmptyID, err
	}

	tx := sdk.NewTransaction().
		SetScript(code).
		SetGasLimit(c.computeLimit).
		SetReferenceBlockID(reference.ID).
		SetProposalKey(signerAddress, key.Index, key.SequenceNumber).
		SetPayer(signerAddress).
		AddAuthorizer(signerAddress)

	for i, arg := range args {
		if err := tx.AddArgument(arg); err != nil {
			return sdk.EmptyID, fmt.Errorf("could not encode argument %d: %w", i, err)
		}
	}

	if err := tx.SignEnvelope(signerAddress, key.Index, c.session.Signer()); err != nil {
		return sdk.EmptyID, fmt.Errorf("could not sign transaction: %w", err)
	}

	if err := c.access.SendTransaction(ctx, *tx); err != nil {
		return sdk.EmptyID, fmt.Errorf("could not send transaction: %w", err)
	}
	return tx.ID(), nil
}

func findKey(account *sdk.Account, index int) (*sdk.AccountKey, error) {
	for _, key := range account.Keys {
		if key.Index != index {
			continue
		}
		if key.Revoked {
			return nil, fmt.Errorf("key %d of account %s is revoked", index, "0x"+account.Address.Hex())
		}
		return key, nil
	}
	return nil, fmt.Errorf("account %s has no key with index %d", "0x"+account.Address.Hex(), index)
}
