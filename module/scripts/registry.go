// Package scripts holds the Cadence scripts and transactions used to talk to the DAO contract.
package scripts

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
)

//go:embed cadence/scripts/*.cdc cadence/transactions/*.cdc
var sources embed.FS

// ErrUnknownScript is returned when no script or transaction is registered under a name.
var ErrUnknownScript = errors.New("unknown script")

type Name string

// read-only scripts
const (
	GetFounders          Name = "get_founders"
	GetFounderVotes      Name = "get_founder_votes"
	GetUnclaimedFounders Name = "get_unclaimed_founders"
	GetLatestTopics      Name = "get_latest_topics"
)

// transactions
const (
	ProposeTopic   Name = "propose_topic"
	VoteFounder    Name = "vote_founder"
	VoteTopic      Name = "vote_topic"
	AddTopicOption Name = "add_topic_option"
)

var (
	scriptNames      = []Name{GetFounders, GetFounderVotes, GetUnclaimedFounders, GetLatestTopics}
	transactionNames = []Name{ProposeTopic, VoteFounder, VoteTopic, AddTopicOption}
)

var daoImport = []byte(`import "DAO"`)

// Registry serves scripts and transactions with their contract imports resolved for an environment.
type Registry struct {
	env          Environment
	scripts      map[Name][]byte
	transactions map[Name][]byte
}

func NewRegistry(env Environment) (*Registry, error) {
	r := &Registry{
		env:          env,
		scripts:      make(map[Name][]byte, len(scriptNames)),
		transactions: make(map[Name][]byte, len(transactionNames)),
	}

	for _, name := range scriptNames {
		code, err := r.load("cadence/scripts", name)
		if err != nil {
			return nil, err
		}
		r.scripts[name] = code
	}

	for _, name := range transactionNames {
		code, err := r.load("cadence/transactions", name)
		if err != nil {
			return nil, err
		}
		r.transactions[name] = code
	}

	return r, nil
}

func (r *Registry) load(dir string, name Name) ([]byte, error) {
	code, err := sources.ReadFile(path.Join(dir, string(name)+".cdc"))
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", name, err)
	}
	if !bytes.Contains(code, daoImport) {
		return nil, fmt.Errorf("%s does not import the DAO contract", name)
	}
	return bytes.ReplaceAll(code, daoImport, []byte("import DAO from "+"0x"+r.env.DAOAddress.Hex())), nil
}

func (r *Registry) Environment() Environment {
	return r.env
}

// Script returns the code of a read-only script.
func (r *Registry) Script(name Name) ([]byte, error) {
	code, ok := r.scripts[name]
	if !ok {
		return nil, fmt.Errorf("script %q: %w", name, ErrUnknownScript)
	}
	return code, nil
}

// Transaction returns the code of a transaction.
func (r *Registry) Transaction(name Name) ([]byte, error) {
	code, ok := r.transactions[name]
	if !ok {
		return nil, fmt.Errorf("transaction %q: %w", name, ErrUnknownScript)
	}
	return code, nil
}

// Names lists every registered script and transaction, sorted.
func (r *Registry) Names() []Name {
	names := make([]Name, 0, len(r.scripts)+len(r.transactions))
	for name := range r.scripts {
		names = append(names, name)
	}
	for name := range r.transactions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
