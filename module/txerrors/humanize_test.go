package txerrors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

const (
	managerMessage  = "Your account is not the parent of ANY Dapper Wallet account"
	pinnacleMessage = "Unable to create Arsenal. You need a Pinnacle Collection with at least 10 NFTs in a child account."
	votedMessage    = "You have already voted on this topic."
	founderMessage  = "Only founders can perform this action."
	optionsMessage  = "Please provide at least 2 options for the topic."
	closedMessage   = "This topic is closed."
	disallowMessage = "This topic does not allow adding new options."
)

func TestHumanize(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"manager", "panic: manager not found for account 0x01", managerMessage},
		{"pinnacle", "error: No Pinnacle Collection in child accounts", pinnacleMessage},
		{"already voted", "pre-condition failed: Already Voted", votedMessage},
		{"founder", "assertion failed: You are NOT a Founder", founderMessage},
		{"founder short", "NOT a Founder", founderMessage},
		{"options", "Must have at least two options", optionsMessage},
		{"closed", "panic: Topic is closed", closedMessage},
		{"disallow", "this topic does not allow new options", disallowMessage},
		{"unknown", "execution error code 1101: something else", "execution error code 1101: something else"},
		{"empty", "", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, Humanize(c.raw))
		})
	}
}

// the table is ordered, the earliest matching rule wins
func TestHumanize_Precedence(t *testing.T) {
	assert.Equal(t, founderMessage, Humanize("NOT a Founder; Topic is closed"))
	assert.Equal(t, founderMessage, Humanize("Topic is closed; NOT a Founder"))
	assert.Equal(t, managerMessage, Humanize("No Pinnacle Collection, manager not found"))
	assert.Equal(t, votedMessage, Humanize("already voted and NOT a Founder"))
	assert.Equal(t, optionsMessage, Humanize("Must have at least two options, Topic is closed"))
	assert.Equal(t, closedMessage, Humanize("Topic is closed and does not allow changes"))
}

func TestHumanize_CaseSensitivity(t *testing.T) {
	// only the "already voted" rule ignores case
	assert.Equal(t, "topic is closed", Humanize("topic is closed"))
	assert.Equal(t, "not a founder", Humanize("not a founder"))
	assert.Equal(t, votedMessage, Humanize("ALREADY VOTED"))
}

func TestHumanizeError(t *testing.T) {
	assert.Equal(t, "", HumanizeError(nil))
	assert.Equal(t, closedMessage, HumanizeError(errors.New("[Error Code: 1101] Topic is closed")))
}

func TestHumanize_AlreadyVotedAnyCase(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.StringMatching(`[a-z ]{0,12}`).Draw(t, "prefix")
		suffix := rapid.StringMatching(`[a-z ]{0,12}`).Draw(t, "suffix")
		upper := rapid.SliceOfN(rapid.Bool(), len("already voted"), len("already voted")).Draw(t, "upper")

		var b strings.Builder
		for i, r := range "already voted" {
			if upper[i] {
				b.WriteString(strings.ToUpper(string(r)))
			} else {
				b.WriteRune(r)
			}
		}

		// the lowercase filler can never spell out an earlier rule's phrase
		raw := prefix + b.String() + suffix
		if strings.Contains(raw, "manager not found") {
			t.Skip("filler matched an earlier rule")
		}
		assert.Equal(t, votedMessage, Humanize(raw))
	})
}

func TestHumanize_UnmatchedIsIdentity(t *testing.T) {
	phrases := []string{
		"manager not found",
		"no pinnacle collection",
		"already voted",
		"not a founder",
		"must have at least two options",
		"topic is closed",
		"does not allow",
	}

	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")
		lower := strings.ToLower(raw)
		for _, p := range phrases {
			if strings.Contains(lower, p) {
				t.Skip("input contains a known phrase")
			}
		}
		assert.Equal(t, raw, Humanize(raw))
	})
}
