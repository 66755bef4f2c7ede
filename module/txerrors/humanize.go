// Package txerrors turns raw failure messages returned by the Flow platform for DAO
// transactions into messages that can be shown to a user.
package txerrors

import (
	"strings"
)

// rule maps raw failure messages matching the rule to a user-facing message.
type rule struct {
	matches func(message string) bool
	message string
}

func contains(substrings ...string) func(string) bool {
	return func(message string) bool {
		for _, s := range substrings {
			if strings.Contains(message, s) {
				return true
			}
		}
		return false
	}
}

func containsFold(substring string) func(string) bool {
	substring = strings.ToLower(substring)
	return func(message string) bool {
		return strings.Contains(strings.ToLower(message), substring)
	}
}

// rules is evaluated in order, the first matching rule wins.
var rules = []rule{
	{
		// DAO.createArsenal() panics when the HybridCustody manager is missing.
		matches: contains("manager not found"),
		message: "Your account is not the parent of ANY Dapper Wallet account",
	},
	{
		matches: contains("No Pinnacle Collection"),
		message: "Unable to create Arsenal. You need a Pinnacle Collection with at least 10 NFTs in a child account.",
	},
	{
		matches: containsFold("already voted"),
		message: "You have already voted on this topic.",
	},
	{
		matches: contains("You are NOT a Founder", "NOT a Founder"),
		message: "Only founders can perform this action.",
	},
	{
		matches: contains("Must have at least two options"),
		message: "Please provide at least 2 options for the topic.",
	},
	{
		matches: contains("Topic is closed"),
		message: "This topic is closed.",
	},
	{
		matches: contains("does not allow"),
		message: "This topic does not allow adding new options.",
	},
}

// Humanize returns the user-facing message for a raw failure message.
// Messages that match no known failure are returned unchanged.
func Humanize(message string) string {
	for _, r := range rules {
		if r.matches(message) {
			return r.message
		}
	}
	return message
}

// HumanizeError is Humanize for errors. A nil error yields an empty message.
func HumanizeError(err error) string {
	if err == nil {
		return ""
	}
	return Humanize(err.Error())
}
