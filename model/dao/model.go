// Package dao contains the read-only view models of the DAO contract state.
// Values are snapshots of the contract at the time of the query and are never
// mutated on the client side.
package dao

import (
	"sort"
	"time"

	sdk "github.com/onflow/flow-go-sdk"
)

// FoundersTopicID is the id of the topic used to elect founders.
const FoundersTopicID = 0

// Founder is an account holding the founder role.
type Founder struct {
	ID      uint64
	Address sdk.Address
	Votes   uint64
}

// FounderVote is the number of founder votes an address has received.
type FounderVote struct {
	Address sdk.Address
	Votes   uint64
}

// Topic is a proposal with a set of votable options.
type Topic struct {
	ID                    int64
	Title                 string
	Description           string
	Proposer              sdk.Address
	AllowAnyoneAddOptions bool
	IsFoundersTopic       bool
	StringOptions         []string
	AddressOptions        []sdk.Address
	Votes                 map[uint64][]sdk.Address
	Closed                bool
	Voters                map[sdk.Address]bool
}

// Option is a single votable option of a topic together with its tally.
type Option struct {
	Index uint64
	Label string
	Votes int
}

// Votable returns true if votes can be submitted for the topic.
func (t *Topic) Votable() bool {
	return !t.Closed && t.ID >= 0
}

// HasVoted returns true if the given address has voted on the topic.
func (t *Topic) HasVoted(addr sdk.Address) bool {
	return t.Voters[addr]
}

// Options returns the options of the topic in index order. The founders topic
// is voted with addresses, all other topics with strings.
func (t *Topic) Options() []Option {
	if t.IsFoundersTopic {
		options := make([]Option, 0, len(t.AddressOptions))
		for i, addr := range t.AddressOptions {
			options = append(options, Option{
				Index: uint64(i),
				Label: "0x" + addr.Hex(),
				Votes: len(t.Votes[uint64(i)]),
			})
		}
		return options
	}

	options := make([]Option, 0, len(t.StringOptions))
	for i, label := range t.StringOptions {
		options = append(options, Option{
			Index: uint64(i),
			Label: label,
			Votes: len(t.Votes[uint64(i)]),
		})
	}
	return options
}

// AssignTopicIDs sets the ids of topics returned by the contract in id order.
// The founders topic always has id 0, which anchors the ids of its neighbours.
// Without a founders topic the ids are counted from the end of the list.
func AssignTopicIDs(topics []Topic) {
	if len(topics) == 0 {
		return
	}

	first := int64(len(topics) - 1)
	for i := range topics {
		if topics[i].IsFoundersTopic {
			first = FoundersTopicID - int64(i)
			break
		}
	}

	for i := range topics {
		topics[i].ID = first + int64(i)
	}
}

// JoinFounderVotes attaches the vote counts to the founders and orders them by id.
func JoinFounderVotes(founders []Founder, votes []FounderVote) []Founder {
	counts := make(map[sdk.Address]uint64, len(votes))
	for _, v := range votes {
		counts[v.Address] = v.Votes
	}

	joined := make([]Founder, len(founders))
	for i, f := range founders {
		f.Votes = counts[f.Address]
		joined[i] = f
	}

	sort.Slice(joined, func(i, j int) bool {
		return joined[i].ID < joined[j].ID
	})
	return joined
}

// SortFounderVotes orders votes by descending count, ties by address.
func SortFounderVotes(votes []FounderVote) {
	sort.Slice(votes, func(i, j int) bool {
		if votes[i].Votes != votes[j].Votes {
			return votes[i].Votes > votes[j].Votes
		}
		return votes[i].Address.Hex() < votes[j].Address.Hex()
	})
}

// IsFounder returns true if the address belongs to one of the founders.
func IsFounder(founders []Founder, addr sdk.Address) bool {
	for _, f := range founders {
		if f.Address == addr {
			return true
		}
	}
	return false
}

// Snapshot is one refresh of all DAO views.
type Snapshot struct {
	Founders     []Founder
	FounderVotes []FounderVote
	Unclaimed    []sdk.Address
	Topics       []Topic
	FetchedAt    time.Time
}

// Topic returns the topic with the given id.
func (s *Snapshot) Topic(id int64) (*Topic, bool) {
	for i := range s.Topics {
		if s.Topics[i].ID == id {
			return &s.Topics[i], true
		}
	}
	return nil, false
}
