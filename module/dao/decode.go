package dao

import (
	"fmt"

	"github.com/onflow/cadence"
	sdk "github.com/onflow/flow-go-sdk"

	model "github.com/onflow/dao-dashboard/model/dao"
)

func unwrap(value cadence.Value) cadence.Value {
	for {
		optional, ok := value.(cadence.Optional)
		if !ok {
			return value
		}
		value = optional.Value
	}
}

func toUint64(value cadence.Value) (uint64, error) {
	switch v := unwrap(value).(type) {
	case cadence.UInt64:
		return uint64(v), nil
	case cadence.UInt32:
		return uint64(v), nil
	case cadence.UInt16:
		return uint64(v), nil
	case cadence.UInt8:
		return uint64(v), nil
	case cadence.Int:
		if v.Value.Sign() < 0 || !v.Value.IsUint64() {
			return 0, fmt.Errorf("integer %s out of range", v.String())
		}
		return v.Value.Uint64(), nil
	case cadence.UInt:
		if !v.Value.IsUint64() {
			return 0, fmt.Errorf("integer %s out of range", v.String())
		}
		return v.Value.Uint64(), nil
	default:
		return 0, fmt.Errorf("expected unsigned integer, got %T", value)
	}
}

func toAddress(value cadence.Value) (sdk.Address, error) {
	addr, ok := unwrap(value).(cadence.Address)
	if !ok {
		return sdk.EmptyAddress, fmt.Errorf("expected address, got %T", value)
	}
	return sdk.Address(addr), nil
}

func toString(value cadence.Value) (string, error) {
	s, ok := unwrap(value).(cadence.String)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", value)
	}
	return string(s), nil
}

func toBool(value cadence.Value) (bool, error) {
	b, ok := unwrap(value).(cadence.Bool)
	if !ok {
		return false, fmt.Errorf("expected bool, got %T", value)
	}
	return bool(b), nil
}

func toArray(value cadence.Value) ([]cadence.Value, error) {
	array, ok := unwrap(value).(cadence.Array)
	if !ok {
		return nil, fmt.Errorf("expected array, got %T", value)
	}
	return array.Values, nil
}

func toDictionary(value cadence.Value) ([]cadence.KeyValuePair, error) {
	dict, ok := unwrap(value).(cadence.Dictionary)
	if !ok {
		return nil, fmt.Errorf("expected dictionary, got %T", value)
	}
	return dict.Pairs, nil
}

func toAddresses(value cadence.Value) ([]sdk.Address, error) {
	values, err := toArray(value)
	if err != nil {
		return nil, err
	}
	addrs := make([]sdk.Address, 0, len(values))
	for i, v := range values {
		addr, err := toAddress(v)
		if err != nil {
			return nil, fmt.Errorf("invalid address at index %d: %w", i, err)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// decodeFounders decodes the {UInt64: Address} dictionary returned by DAO.getAllFounders.
func decodeFounders(value cadence.Value) ([]model.Founder, error) {
	pairs, err := toDictionary(value)
	if err != nil {
		return nil, err
	}

	founders := make([]model.Founder, 0, len(pairs))
	for _, pair := range pairs {
		id, err := toUint64(pair.Key)
		if err != nil {
			return nil, fmt.Errorf("invalid founder id: %w", err)
		}
		addr, err := toAddress(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid founder %d: %w", id, err)
		}
		founders = append(founders, model.Founder{ID: id, Address: addr})
	}
	return model.JoinFounderVotes(founders, nil), nil
}

// decodeFounderVotes decodes the {Address: UInt64} dictionary returned by DAO.getFounderVotes.
func decodeFounderVotes(value cadence.Value) ([]model.FounderVote, error) {
	pairs, err := toDictionary(value)
	if err != nil {
		return nil, err
	}

	votes := make([]model.FounderVote, 0, len(pairs))
	for _, pair := range pairs {
		addr, err := toAddress(pair.Key)
		if err != nil {
			return nil, fmt.Errorf("invalid candidate: %w", err)
		}
		count, err := toUint64(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid vote count for %s: %w", "0x"+addr.Hex(), err)
		}
		votes = append(votes, model.FounderVote{Address: addr, Votes: count})
	}
	model.SortFounderVotes(votes)
	return votes, nil
}

// decodeTopics decodes the [DAO.TopicInfo] array returned by DAO.getLatestTopics and assigns topic ids.
func decodeTopics(value cadence.Value) ([]model.Topic, error) {
	values, err := toArray(value)
	if err != nil {
		return nil, err
	}

	topics := make([]model.Topic, 0, len(values))
	for i, v := range values {
		topic, err := decodeTopic(v)
		if err != nil {
			return nil, fmt.Errorf("invalid topic at index %d: %w", i, err)
		}
		topics = append(topics, topic)
	}
	model.AssignTopicIDs(topics)
	return topics, nil
}

func structFields(value cadence.Value) (map[string]cadence.Value, error) {
	s, ok := unwrap(value).(cadence.Struct)
	if !ok {
		return nil, fmt.Errorf("expected struct, got %T", value)
	}
	if s.StructType == nil {
		return nil, fmt.Errorf("struct has no type information")
	}
	if len(s.StructType.Fields) != len(s.Fields) {
		return nil, fmt.Errorf("struct %s has %d field types for %d fields",
			s.StructType.QualifiedIdentifier, len(s.StructType.Fields), len(s.Fields))
	}

	fields := make(map[string]cadence.Value, len(s.Fields))
	for i, field := range s.StructType.Fields {
		fields[field.Identifier] = s.Fields[i]
	}
	return fields, nil
}

func decodeTopic(value cadence.Value) (model.Topic, error) {
	fields, err := structFields(value)
	if err != nil {
		return model.Topic{}, err
	}

	field := func(name string) (cadence.Value, error) {
		v, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("missing field %s", name)
		}
		return v, nil
	}

	var topic model.Topic
	var v cadence.Value

	if v, err = field("title"); err == nil {
		topic.Title, err = toString(v)
	}
	if err != nil {
		return model.Topic{}, fmt.Errorf("title: %w", err)
	}

	if v, err = field("description"); err == nil {
		topic.Description, err = toString(v)
	}
	if err != nil {
		return model.Topic{}, fmt.Errorf("description: %w", err)
	}

	if v, err = field("proposer"); err == nil {
		topic.Proposer, err = toAddress(v)
	}
	if err != nil {
		return model.Topic{}, fmt.Errorf("proposer: %w", err)
	}

	if v, err = field("allowAnyoneAddOptions"); err == nil {
		topic.AllowAnyoneAddOptions, err = toBool(v)
	}
	if err != nil {
		return model.Topic{}, fmt.Errorf("allowAnyoneAddOptions: %w", err)
	}

	if v, err = field("isFoundersTopic"); err == nil {
		topic.IsFoundersTopic, err = toBool(v)
	}
	if err != nil {
		return model.Topic{}, fmt.Errorf("isFoundersTopic: %w", err)
	}

	if v, err = field("closed"); err == nil {
		topic.Closed, err = toBool(v)
	}
	if err != nil {
		return model.Topic{}, fmt.Errorf("closed: %w", err)
	}

	if v, err = field("stringOptions"); err == nil {
		topic.StringOptions, err = decodeStrings(v)
	}
	if err != nil {
		return model.Topic{}, fmt.Errorf("stringOptions: %w", err)
	}

	if v, err = field("addressOptions"); err == nil {
		topic.AddressOptions, err = toAddresses(v)
	}
	if err != nil {
		return model.Topic{}, fmt.Errorf("addressOptions: %w", err)
	}

	if v, err = field("votes"); err == nil {
		topic.Votes, err = decodeVotes(v)
	}
	if err != nil {
		return model.Topic{}, fmt.Errorf("votes: %w", err)
	}

	if v, err = field("voters"); err == nil {
		topic.Voters, err = decodeVoters(v)
	}
	if err != nil {
		return model.Topic{}, fmt.Errorf("voters: %w", err)
	}

	return topic, nil
}

func decodeStrings(value cadence.Value) ([]string, error) {
	values, err := toArray(value)
	if err != nil {
		return nil, err
	}
	strs := make([]string, 0, len(values))
	for _, v := range values {
		s, err := toString(v)
		if err != nil {
			return nil, err
		}
		strs = append(strs, s)
	}
	return strs, nil
}

func decodeVotes(value cadence.Value) (map[uint64][]sdk.Address, error) {
	pairs, err := toDictionary(value)
	if err != nil {
		return nil, err
	}
	votes := make(map[uint64][]sdk.Address, len(pairs))
	for _, pair := range pairs {
		option, err := toUint64(pair.Key)
		if err != nil {
			return nil, err
		}
		voters, err := toAddresses(pair.Value)
		if err != nil {
			return nil, err
		}
		votes[option] = voters
	}
	return votes, nil
}

func decodeVoters(value cadence.Value) (map[sdk.Address]bool, error) {
	pairs, err := toDictionary(value)
	if err != nil {
		return nil, err
	}
	voters := make(map[sdk.Address]bool, len(pairs))
	for _, pair := range pairs {
		addr, err := toAddress(pair.Key)
		if err != nil {
			return nil, err
		}
		voted, err := toBool(pair.Value)
		if err != nil {
			return nil, err
		}
		voters[addr] = voted
	}
	return voters, nil
}
