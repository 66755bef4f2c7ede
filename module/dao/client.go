// Package dao reads the state of the DAO contract and submits DAO transactions.
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/onflow/cadence"
	sdk "github.com/onflow/flow-go-sdk"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	model "github.com/onflow/dao-dashboard/model/dao"
	"github.com/onflow/dao-dashboard/module"
	"github.com/onflow/dao-dashboard/module/access"
	"github.com/onflow/dao-dashboard/module/scripts"
)

const DefaultComputeLimit = 1000

type Metrics interface {
	module.ScriptMetrics
	module.TransactionMetrics
}

// Client runs the DAO scripts and transactions against an access node.
type Client struct {
	log          zerolog.Logger
	access       access.Client
	registry     *scripts.Registry
	session      *Session
	metrics      Metrics
	validate     *validator.Validate
	computeLimit uint64
}

func NewClient(
	log zerolog.Logger,
	accessClient access.Client,
	registry *scripts.Registry,
	session *Session,
	metrics Metrics,
	computeLimit uint64,
) *Client {
	if computeLimit == 0 {
		computeLimit = DefaultComputeLimit
	}
	return &Client{
		log:          log.With().Str("component", "dao_client").Logger(),
		access:       accessClient,
		registry:     registry,
		session:      session,
		metrics:      metrics,
		validate:     newValidator(registry.Environment().ChainID),
		computeLimit: computeLimit,
	}
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) executeScript(ctx context.Context, name scripts.Name, args ...cadence.Value) (cadence.Value, error) {
	code, err := c.registry.Script(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	value, err := c.access.ExecuteScriptAtLatestBlock(ctx, code, args)
	c.metrics.ScriptExecuted(string(name), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("could not execute %s script: %w", name, err)
	}
	return value, nil
}

// Founders returns the founders ordered by id, without vote counts.
func (c *Client) Founders(ctx context.Context) ([]model.Founder, error) {
	value, err := c.executeScript(ctx, scripts.GetFounders)
	if err != nil {
		return nil, err
	}
	founders, err := decodeFounders(value)
	if err != nil {
		return nil, fmt.Errorf("could not decode founders: %w", err)
	}
	return founders, nil
}

// FounderVotes returns the founder votes ordered by descending count.
func (c *Client) FounderVotes(ctx context.Context) ([]model.FounderVote, error) {
	value, err := c.executeScript(ctx, scripts.GetFounderVotes)
	if err != nil {
		return nil, err
	}
	votes, err := decodeFounderVotes(value)
	if err != nil {
		return nil, fmt.Errorf("could not decode founder votes: %w", err)
	}
	return votes, nil
}

func (c *Client) UnclaimedFounders(ctx context.Context) ([]sdk.Address, error) {
	value, err := c.executeScript(ctx, scripts.GetUnclaimedFounders)
	if err != nil {
		return nil, err
	}
	addrs, err := toAddresses(value)
	if err != nil {
		return nil, fmt.Errorf("could not decode unclaimed founders: %w", err)
	}
	return addrs, nil
}

// LatestTopics returns the topics with their ids assigned.
func (c *Client) LatestTopics(ctx context.Context) ([]model.Topic, error) {
	value, err := c.executeScript(ctx, scripts.GetLatestTopics)
	if err != nil {
		return nil, err
	}
	topics, err := decodeTopics(value)
	if err != nil {
		return nil, fmt.Errorf("could not decode topics: %w", err)
	}
	return topics, nil
}

// IsFounder returns true if the address is one of the founders.
func (c *Client) IsFounder(ctx context.Context, addr sdk.Address) (bool, error) {
	founders, err := c.Founders(ctx)
	if err != nil {
		return false, err
	}
	return model.IsFounder(founders, addr), nil
}

// Snapshot fetches every view concurrently. Founders carry their vote counts.
func (c *Client) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	var (
		founders  []model.Founder
		votes     []model.FounderVote
		unclaimed []sdk.Address
		topics    []model.Topic
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		founders, err = c.Founders(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		votes, err = c.FounderVotes(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		unclaimed, err = c.UnclaimedFounders(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		topics, err = c.LatestTopics(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.Snapshot{
		Founders:     model.JoinFounderVotes(founders, votes),
		FounderVotes: votes,
		Unclaimed:    unclaimed,
		Topics:       topics,
		FetchedAt:    time.Now(),
	}, nil
}
