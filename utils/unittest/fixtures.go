package unittest

import (
	crand "crypto/rand"
	"sync"
	"testing"

	"github.com/onflow/cadence"
	sdk "github.com/onflow/flow-go-sdk"
	"github.com/onflow/flow-go-sdk/crypto"
	"github.com/stretchr/testify/require"

	"github.com/onflow/dao-dashboard/model/dao"
)

var (
	addressMu  sync.Mutex
	addressGen = sdk.NewAddressGenerator(sdk.Emulator)
)

// AddressFixture returns a valid emulator address that is distinct from every
// address previously returned.
func AddressFixture() sdk.Address {
	addressMu.Lock()
	defer addressMu.Unlock()
	return addressGen.NextAddress()
}

func IdentifierFixture() sdk.Identifier {
	var id sdk.Identifier
	_, _ = crand.Read(id[:])
	return id
}

// PrivateKeyFixture returns a random ECDSA_P256 private key.
func PrivateKeyFixture(t testing.TB) crypto.PrivateKey {
	seed := make([]byte, crypto.MinSeedLength)
	_, err := crand.Read(seed)
	require.NoError(t, err)

	key, err := crypto.GeneratePrivateKey(crypto.ECDSA_P256, seed)
	require.NoError(t, err)
	return key
}

// AccountFixture returns an account with a single full-weight key at index 0.
func AccountFixture(addr sdk.Address, key crypto.PrivateKey, sequence uint64) *sdk.Account {
	accountKey := sdk.NewAccountKey().
		SetPublicKey(key.PublicKey()).
		SetHashAlgo(crypto.SHA3_256).
		SetWeight(sdk.AccountKeyWeightThreshold)
	accountKey.Index = 0
	accountKey.SequenceNumber = sequence

	return &sdk.Account{
		Address: addr,
		Keys:    []*sdk.AccountKey{accountKey},
	}
}

// BlockHeaderFixture returns a sealed block header with a random id.
func BlockHeaderFixture(height uint64) *sdk.BlockHeader {
	return &sdk.BlockHeader{
		ID:       IdentifierFixture(),
		ParentID: IdentifierFixture(),
		Height:   height,
	}
}

// FoundersValue encodes founders the way DAO.getAllFounders returns them.
func FoundersValue(founders map[uint64]sdk.Address) cadence.Value {
	pairs := make([]cadence.KeyValuePair, 0, len(founders))
	for id, addr := range founders {
		pairs = append(pairs, cadence.KeyValuePair{
			Key:   cadence.NewUInt64(id),
			Value: cadence.Address(addr),
		})
	}
	return cadence.NewDictionary(pairs)
}

// FounderVotesValue encodes votes the way DAO.getFounderVotes returns them.
func FounderVotesValue(votes map[sdk.Address]uint64) cadence.Value {
	pairs := make([]cadence.KeyValuePair, 0, len(votes))
	for addr, count := range votes {
		pairs = append(pairs, cadence.KeyValuePair{
			Key:   cadence.Address(addr),
			Value: cadence.NewUInt64(count),
		})
	}
	return cadence.NewDictionary(pairs)
}

// AddressesValue encodes a list of addresses as a cadence array.
func AddressesValue(addrs ...sdk.Address) cadence.Value {
	values := make([]cadence.Value, 0, len(addrs))
	for _, addr := range addrs {
		values = append(values, cadence.Address(addr))
	}
	return cadence.NewArray(values)
}

var topicInfoFields = []string{
	"title",
	"description",
	"proposer",
	"allowAnyoneAddOptions",
	"isFoundersTopic",
	"stringOptions",
	"addressOptions",
	"votes",
	"closed",
	"voters",
}

// TopicInfoValue encodes a topic as a DAO.TopicInfo struct.
func TopicInfoValue(topic dao.Topic) cadence.Value {
	stringOptions := make([]cadence.Value, 0, len(topic.StringOptions))
	for _, option := range topic.StringOptions {
		stringOptions = append(stringOptions, cadence.String(option))
	}

	votes := make([]cadence.KeyValuePair, 0, len(topic.Votes))
	for option, voters := range topic.Votes {
		votes = append(votes, cadence.KeyValuePair{
			Key:   cadence.NewUInt64(option),
			Value: AddressesValue(voters...),
		})
	}

	voters := make([]cadence.KeyValuePair, 0, len(topic.Voters))
	for addr, voted := range topic.Voters {
		voters = append(voters, cadence.KeyValuePair{
			Key:   cadence.Address(addr),
			Value: cadence.NewBool(voted),
		})
	}

	fields := make([]cadence.Field, 0, len(topicInfoFields))
	for _, name := range topicInfoFields {
		fields = append(fields, cadence.Field{Identifier: name})
	}

	return cadence.NewStruct([]cadence.Value{
		cadence.String(topic.Title),
		cadence.String(topic.Description),
		cadence.Address(topic.Proposer),
		cadence.NewBool(topic.AllowAnyoneAddOptions),
		cadence.NewBool(topic.IsFoundersTopic),
		cadence.NewArray(stringOptions),
		AddressesValue(topic.AddressOptions...),
		cadence.NewDictionary(votes),
		cadence.NewBool(topic.Closed),
		cadence.NewDictionary(voters),
	}).WithType(&cadence.StructType{
		QualifiedIdentifier: "DAO.TopicInfo",
		Fields:              fields,
	})
}

// TopicsValue encodes topics the way DAO.getLatestTopics returns them.
func TopicsValue(topics ...dao.Topic) cadence.Value {
	values := make([]cadence.Value, 0, len(topics))
	for _, topic := range topics {
		values = append(values, TopicInfoValue(topic))
	}
	return cadence.NewArray(values)
}

// TopicFixture returns an open topic with two string options.
func TopicFixture(opts ...func(*dao.Topic)) dao.Topic {
	topic := dao.Topic{
		Title:          "Should we add a new feature to the DAO?",
		Description:    "We should add a new feature to the DAO to make it more efficient",
		Proposer:       AddressFixture(),
		StringOptions:  []string{"yes", "no"},
		AddressOptions: []sdk.Address{},
		Votes:          map[uint64][]sdk.Address{},
		Voters:         map[sdk.Address]bool{},
	}
	for _, apply := range opts {
		apply(&topic)
	}
	return topic
}

func WithVote(option uint64, voter sdk.Address) func(*dao.Topic) {
	return func(topic *dao.Topic) {
		topic.Votes[option] = append(topic.Votes[option], voter)
		topic.Voters[voter] = true
	}
}

func AsFoundersTopic(candidates ...sdk.Address) func(*dao.Topic) {
	return func(topic *dao.Topic) {
		topic.IsFoundersTopic = true
		topic.StringOptions = []string{}
		topic.AddressOptions = candidates
	}
}

func Closed() func(*dao.Topic) {
	return func(topic *dao.Topic) {
		topic.Closed = true
	}
}

func AllowingNewOptions() func(*dao.Topic) {
	return func(topic *dao.Topic) {
		topic.AllowAnyoneAddOptions = true
	}
}
