package marketOutcome

import (
	monaco "github.com/krazyTry/monaco-go/gen/monaco_protocol"
	"github.com/krazyTry/monaco-go/operators"
	solanago "github.com/krazyTry/monaco-go/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrIndexConflict   = errors.New("outcome index already taken")
	ErrIndexOutOfRange = errors.New("outcome index out of range")
	ErrNoSigner        = errors.New("market operator wallet not set")
)

// MarketOutcome manages the outcome accounts of Monaco Protocol markets.
// Transactions are signed by the market operator wallet, which must be on
// the program's MARKET authorised operators list.
type MarketOutcome struct {
	rpcClient   solanago.RPCClient
	operator    *solana.Wallet
	programID   solana.PublicKey
	commitment  rpc.CommitmentType
	confirmer   solanago.Confirmer
	lookup      operators.Lookup
	verifyIndex bool
	log         *logrus.Entry
}

func NewMarketOutcome(
	rpcClient solanago.RPCClient,
	operator *solana.Wallet,
	opts ...Option,
) *MarketOutcome {
	o := &MarketOutcome{
		rpcClient:  rpcClient,
		operator:   operator,
		programID:  monaco.ProgramID,
		commitment: rpc.CommitmentConfirmed,
		lookup:     operators.FindAuthorisedOperatorsAccountPda,
		log:        logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, fn := range opts {
		fn(o)
	}
	if o.confirmer == nil {
		o.confirmer = solanago.NewPollConfirmer(rpcClient, o.commitment, 0, 0).WithLogger(o.log)
	}
	return o
}

type Option func(*MarketOutcome)

func WithProgramID(programID solana.PublicKey) Option {
	return func(m *MarketOutcome) {
		m.programID = programID
	}
}

func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(m *MarketOutcome) {
		m.commitment = commitment
	}
}

func WithConfirmer(confirmer solanago.Confirmer) Option {
	return func(m *MarketOutcome) {
		m.confirmer = confirmer
	}
}

func WithOperatorLookup(lookup operators.Lookup) Option {
	return func(m *MarketOutcome) {
		m.lookup = lookup
	}
}

// WithIndexVerification re-reads the market's outcome count before every
// batch submission and skips a title whose index has moved.
func WithIndexVerification(verify bool) Option {
	return func(m *MarketOutcome) {
		m.verifyIndex = verify
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(m *MarketOutcome) {
		if log != nil {
			m.log = log
		}
	}
}

func (m *MarketOutcome) ProgramID() solana.PublicKey {
	return m.programID
}
