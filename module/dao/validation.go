package dao

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	sdk "github.com/onflow/flow-go-sdk"
)

// tagFlowAddress validates that a string is a hex encoded Flow address of the configured chain.
const tagFlowAddress = "flow_address"

// messagePrecedence orders validation messages when more than one field is invalid.
var messagePrecedence = []string{
	MessageMissingTitle,
	MessageMissingDescription,
	MessageTooFewOptions,
	MessageMissingFounders,
	MessageInvalidAddress,
	MessageTopicNotVotable,
	MessageMissingSelection,
	MessageMissingOption,
}

// fieldMessages maps request fields to their validation message.
var fieldMessages = map[string]string{
	"Title":       MessageMissingTitle,
	"Description": MessageMissingDescription,
	"Options":     MessageTooFewOptions,
	"Candidates":  MessageMissingFounders,
	"TopicID":     MessageTopicNotVotable,
	"Selection":   MessageMissingSelection,
	"Option":      MessageMissingOption,
}

func newValidator(chainID sdk.ChainID) *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation(tagFlowAddress, func(fl validator.FieldLevel) bool {
		_, err := ParseAddress(fl.Field().String(), chainID)
		return err == nil
	})
	return validate
}

// ParseAddress parses a hex encoded address, with or without 0x prefix, and checks it
// belongs to the chain.
func ParseAddress(input string, chainID sdk.ChainID) (sdk.Address, error) {
	h := strings.TrimPrefix(strings.TrimSpace(input), "0x")
	if h == "" || len(h) > 2*sdk.AddressLength {
		return sdk.EmptyAddress, fmt.Errorf("invalid address length: %q", input)
	}
	if len(h)%2 == 1 {
		h = "0" + h
	}
	if _, err := hex.DecodeString(h); err != nil {
		return sdk.EmptyAddress, fmt.Errorf("invalid address encoding: %w", err)
	}

	addr := sdk.HexToAddress(h)
	if !addr.IsValid(chainID) {
		return sdk.EmptyAddress, fmt.Errorf("address %s is not valid on %s", "0x"+addr.Hex(), chainID)
	}
	return addr, nil
}

// validate runs the struct validation and converts the result into a ValidationError
// carrying the most relevant user message.
func (c *Client) validateRequest(request interface{}) error {
	err := c.validate.Struct(request)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("could not validate request: %w", err)
	}

	messages := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == tagFlowAddress {
			messages[MessageInvalidAddress] = MessageInvalidAddress + fmt.Sprint(fe.Value())
			continue
		}
		field := fe.StructField()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		message, ok := fieldMessages[field]
		if !ok {
			message = fe.Error()
		}
		if _, seen := messages[message]; !seen {
			messages[message] = message
		}
	}

	for _, key := range messagePrecedence {
		if message, ok := messages[key]; ok {
			return &ValidationError{Message: message, err: err}
		}
	}
	for _, message := range messages {
		return &ValidationError{Message: message, err: err}
	}
	return &ValidationError{Message: err.Error(), err: err}
}
