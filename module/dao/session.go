package dao

import (
	"fmt"
	"strings"

	sdk "github.com/onflow/flow-go-sdk"
	"github.com/onflow/flow-go-sdk/crypto"
)

// SignerConfig describes the account transactions are signed with.
type SignerConfig struct {
	Address  string
	Key      string
	KeyIndex int
	SigAlgo  string
	HashAlgo string
}

// Session is the signing identity of the dashboard. A session without a signer is logged out.
type Session struct {
	address  sdk.Address
	keyIndex int
	signer   crypto.Signer
}

// NewSession returns a logged out session when no signer address is configured.
func NewSession(config SignerConfig, chainID sdk.ChainID) (*Session, error) {
	if config.Address == "" {
		return &Session{}, nil
	}

	address, err := ParseAddress(config.Address, chainID)
	if err != nil {
		return nil, fmt.Errorf("invalid signer address %q: %w", config.Address, err)
	}

	if config.Key == "" {
		return nil, fmt.Errorf("missing private key for signer %s", "0x"+address.Hex())
	}

	if config.KeyIndex < 0 {
		return nil, fmt.Errorf("invalid key index %d", config.KeyIndex)
	}

	sigAlgo := crypto.StringToSignatureAlgorithm(config.SigAlgo)
	if sigAlgo == crypto.UnknownSignatureAlgorithm {
		return nil, fmt.Errorf("unsupported signature algorithm %q", config.SigAlgo)
	}

	hashAlgo := crypto.StringToHashAlgorithm(config.HashAlgo)
	if hashAlgo == crypto.UnknownHashAlgorithm {
		return nil, fmt.Errorf("unsupported hash algorithm %q", config.HashAlgo)
	}

	privateKey, err := crypto.DecodePrivateKeyHex(sigAlgo, strings.TrimPrefix(config.Key, "0x"))
	if err != nil {
		return nil, fmt.Errorf("could not decode signer private key: %w", err)
	}

	signer, err := crypto.NewInMemorySigner(privateKey, hashAlgo)
	if err != nil {
		return nil, fmt.Errorf("could not create signer: %w", err)
	}

	return &Session{
		address:  address,
		keyIndex: config.KeyIndex,
		signer:   signer,
	}, nil
}

// NewSignerSession returns a logged in session for an already decoded signer.
func NewSignerSession(address sdk.Address, keyIndex int, signer crypto.Signer) *Session {
	return &Session{
		address:  address,
		keyIndex: keyIndex,
		signer:   signer,
	}
}

func (s *Session) LoggedIn() bool {
	return s.signer != nil
}

// Address returns the signer address, or the empty address when logged out.
func (s *Session) Address() sdk.Address {
	return s.address
}

func (s *Session) KeyIndex() int {
	return s.keyIndex
}

func (s *Session) Signer() crypto.Signer {
	return s.signer
}
