package monacoprotocol

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

var ErrDiscriminatorMismatch = errors.New("account discriminator mismatch")

var (
	MarketDiscriminator              = bin.SighashTypeID(bin.SIGHASH_ACCOUNT_NAMESPACE, "Market")
	MarketOutcomeDiscriminator       = bin.SighashTypeID(bin.SIGHASH_ACCOUNT_NAMESPACE, "MarketOutcome")
	AuthorisedOperatorsDiscriminator = bin.SighashTypeID(bin.SIGHASH_ACCOUNT_NAMESPACE, "AuthorisedOperators")
)

type MarketStatus uint8

const (
	MarketStatusInitializing MarketStatus = iota
	MarketStatusOpen
	MarketStatusLocked
	MarketStatusReadyForSettlement
	MarketStatusSettled
	MarketStatusReadyToClose
	MarketStatusReadyToVoid
	MarketStatusVoided
)

func (s MarketStatus) String() string {
	switch s {
	case MarketStatusInitializing:
		return "Initializing"
	case MarketStatusOpen:
		return "Open"
	case MarketStatusLocked:
		return "Locked"
	case MarketStatusReadyForSettlement:
		return "ReadyForSettlement"
	case MarketStatusSettled:
		return "Settled"
	case MarketStatusReadyToClose:
		return "ReadyToClose"
	case MarketStatusReadyToVoid:
		return "ReadyToVoid"
	case MarketStatusVoided:
		return "Voided"
	default:
		return "Unknown"
	}
}

type MarketOrderBehaviour uint8

const (
	MarketOrderBehaviourNone MarketOrderBehaviour = iota
	MarketOrderBehaviourCancelUnmatched
)

// Market is the parent account outcomes are scoped to.
// Outcomes can only be added while the market is Initializing.
type Market struct {
	Authority                 solanago.PublicKey
	EventAccount              solanago.PublicKey
	MintAccount               solanago.PublicKey
	MarketStatus              MarketStatus
	InplayEnabled             bool
	Inplay                    bool
	MarketType                string
	DecimalLimit              uint8
	Published                 bool
	Suspended                 bool
	MarketOutcomesCount       uint16
	MarketWinningOutcomeIndex *uint16 `bin:"optional"`
	MarketLockTimestamp       int64
	MarketSettleTimestamp     *int64 `bin:"optional"`
	EventStartOrderBehaviour  MarketOrderBehaviour
	MarketLockOrderBehaviour  MarketOrderBehaviour
	InplayOrderDelay          uint8
	Title                     string
	UnsettledAccountsCount    uint32
	UnclosedAccountsCount     uint32
	EscrowAccountBump         uint8
	EventStartTimestamp       int64
}

type MarketOutcome struct {
	Market             solanago.PublicKey
	Index              uint16
	Title              string
	LatestMatchedPrice float64
	MatchedTotal       uint64
	PriceLadder        []float64
}

type AuthorisedOperators struct {
	OperatorList []solanago.PublicKey
}

// Contains reports whether operator is in the list.
func (a *AuthorisedOperators) Contains(operator solanago.PublicKey) bool {
	for _, pk := range a.OperatorList {
		if pk.Equals(operator) {
			return true
		}
	}
	return false
}

func ParseAccount_Market(data []byte) (*Market, error) {
	return parseAccount[Market](data, MarketDiscriminator, "Market")
}

func ParseAccount_MarketOutcome(data []byte) (*MarketOutcome, error) {
	return parseAccount[MarketOutcome](data, MarketOutcomeDiscriminator, "MarketOutcome")
}

func ParseAccount_AuthorisedOperators(data []byte) (*AuthorisedOperators, error) {
	return parseAccount[AuthorisedOperators](data, AuthorisedOperatorsDiscriminator, "AuthorisedOperators")
}

func parseAccount[T any](data []byte, discriminator bin.TypeID, name string) (*T, error) {
	dec := bin.NewBorshDecoder(data)
	got, err := dec.ReadDiscriminator()
	if err != nil {
		return nil, errors.Wrapf(err, "read %s discriminator", name)
	}
	if got != discriminator {
		return nil, errors.Wrapf(ErrDiscriminatorMismatch, "%s: expected %x, got %x", name, discriminator[:], got[:])
	}
	out := new(T)
	if err := dec.Decode(out); err != nil {
		return nil, errors.Wrapf(err, "decode %s", name)
	}
	return out, nil
}

// MarshalAccount encodes an account the way the program stores it:
// discriminator followed by the borsh body.
func MarshalAccount(discriminator bin.TypeID, account interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(discriminator[:])
	if err := bin.NewBorshEncoder(buf).Encode(account); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
