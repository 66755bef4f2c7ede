package dao_test

import (
	"testing"

	sdk "github.com/onflow/flow-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/dao-dashboard/model/dao"
	"github.com/onflow/dao-dashboard/utils/unittest"
)

func TestAssignTopicIDs(t *testing.T) {
	t.Run("founders topic first", func(t *testing.T) {
		topics := []dao.Topic{{IsFoundersTopic: true}, {}, {}}
		dao.AssignTopicIDs(topics)
		assert.Equal(t, []int64{0, 1, 2}, topicIDs(topics))
	})

	t.Run("founders topic anchors neighbours", func(t *testing.T) {
		topics := []dao.Topic{{}, {IsFoundersTopic: true}, {}}
		dao.AssignTopicIDs(topics)
		assert.Equal(t, []int64{-1, 0, 1}, topicIDs(topics))
		assert.False(t, topics[0].Votable())
		assert.True(t, topics[2].Votable())
	})

	t.Run("no founders topic", func(t *testing.T) {
		topics := []dao.Topic{{}, {}, {}}
		dao.AssignTopicIDs(topics)
		assert.Equal(t, []int64{2, 3, 4}, topicIDs(topics))
	})

	t.Run("empty", func(t *testing.T) {
		var topics []dao.Topic
		dao.AssignTopicIDs(topics)
		assert.Empty(t, topics)
	})
}

func TestTopicOptions(t *testing.T) {
	alice := unittest.AddressFixture()
	bob := unittest.AddressFixture()

	t.Run("string options", func(t *testing.T) {
		topic := dao.Topic{
			StringOptions: []string{"yes", "no", "maybe"},
			Votes: map[uint64][]sdk.Address{
				0: {alice, bob},
				2: {alice},
			},
		}

		options := topic.Options()
		require.Len(t, options, 3)
		assert.Equal(t, dao.Option{Index: 0, Label: "yes", Votes: 2}, options[0])
		assert.Equal(t, dao.Option{Index: 1, Label: "no", Votes: 0}, options[1])
		assert.Equal(t, dao.Option{Index: 2, Label: "maybe", Votes: 1}, options[2])
	})

	t.Run("founders topic uses address options", func(t *testing.T) {
		topic := dao.Topic{
			IsFoundersTopic: true,
			StringOptions:   []string{"ignored"},
			AddressOptions:  []sdk.Address{alice, bob},
			Votes:           map[uint64][]sdk.Address{1: {alice}},
		}

		options := topic.Options()
		require.Len(t, options, 2)
		assert.Equal(t, "0x"+alice.Hex(), options[0].Label)
		assert.Equal(t, 0, options[0].Votes)
		assert.Equal(t, 1, options[1].Votes)
	})
}

func TestTopicHasVoted(t *testing.T) {
	alice := unittest.AddressFixture()
	bob := unittest.AddressFixture()

	topic := dao.Topic{Voters: map[sdk.Address]bool{alice: true}}
	assert.True(t, topic.HasVoted(alice))
	assert.False(t, topic.HasVoted(bob))

	closed := dao.Topic{Closed: true}
	assert.False(t, closed.Votable())
}

func TestJoinFounderVotes(t *testing.T) {
	alice := unittest.AddressFixture()
	bob := unittest.AddressFixture()

	founders := []dao.Founder{
		{ID: 2, Address: bob},
		{ID: 1, Address: alice},
	}
	votes := []dao.FounderVote{{Address: alice, Votes: 7}}

	joined := dao.JoinFounderVotes(founders, votes)
	require.Len(t, joined, 2)
	assert.Equal(t, dao.Founder{ID: 1, Address: alice, Votes: 7}, joined[0])
	assert.Equal(t, dao.Founder{ID: 2, Address: bob, Votes: 0}, joined[1])

	// input is left untouched
	assert.Equal(t, uint64(2), founders[0].ID)
	assert.True(t, dao.IsFounder(joined, bob))
	assert.False(t, dao.IsFounder(joined, unittest.AddressFixture()))
}

func TestSortFounderVotes(t *testing.T) {
	a := sdk.HexToAddress("01")
	b := sdk.HexToAddress("02")
	c := sdk.HexToAddress("03")

	votes := []dao.FounderVote{{Address: a, Votes: 1}, {Address: c, Votes: 5}, {Address: b, Votes: 5}}
	dao.SortFounderVotes(votes)
	assert.Equal(t, []dao.FounderVote{{Address: b, Votes: 5}, {Address: c, Votes: 5}, {Address: a, Votes: 1}}, votes)
}

func TestSnapshotTopic(t *testing.T) {
	snapshot := dao.Snapshot{Topics: []dao.Topic{{ID: 0, Title: "founders"}, {ID: 1, Title: "feature"}}}

	topic, ok := snapshot.Topic(1)
	require.True(t, ok)
	assert.Equal(t, "feature", topic.Title)

	_, ok = snapshot.Topic(5)
	assert.False(t, ok)
}

func topicIDs(topics []dao.Topic) []int64 {
	ids := make([]int64, 0, len(topics))
	for _, t := range topics {
		ids = append(ids, t.ID)
	}
	return ids
}
