package marketOutcome

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	monaco "github.com/krazyTry/monaco-go/gen/monaco_protocol"
	"github.com/krazyTry/monaco-go/operators"
	"github.com/krazyTry/monaco-go/shared"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ledger is an in-memory stand-in for the cluster. It applies
// initialize_market_outcome and add_prices_to_market_outcome the way the
// program does: the outcome account is created and the market count advances.
type ledger struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey][]byte

	// sendErrors fails the submission of a title before it lands.
	sendErrors map[string]error
	// rejections makes a title land with the given status error.
	rejections map[string]interface{}

	statuses    map[solana.Signature]interface{}
	sent        []string
	priceCounts []int
	marketReads int
}

func newLedger() *ledger {
	return &ledger{
		accounts:   make(map[solana.PublicKey][]byte),
		sendErrors: make(map[string]error),
		rejections: make(map[string]interface{}),
		statuses:   make(map[solana.Signature]interface{}),
	}
}

func (l *ledger) putMarket(t *testing.T, market solana.PublicKey, state *monaco.Market) {
	t.Helper()
	data, err := monaco.MarshalAccount(monaco.MarketDiscriminator, state)
	if err != nil {
		t.Fatal("MarshalAccount() fail", err)
	}
	l.mu.Lock()
	l.accounts[market] = data
	l.mu.Unlock()
}

func (l *ledger) market(t *testing.T, market solana.PublicKey) *monaco.Market {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	state, err := monaco.ParseAccount_Market(l.accounts[market])
	if err != nil {
		t.Fatal("ParseAccount_Market() fail", err)
	}
	return state
}

func (l *ledger) GetAccountInfoWithOpts(_ context.Context, account solana.PublicKey, _ *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	data, ok := l.accounts[account]
	if !ok {
		return &rpc.GetAccountInfoResult{}, nil
	}
	if bytes.HasPrefix(data, monaco.MarketDiscriminator[:]) {
		l.marketReads++
	}
	return &rpc.GetAccountInfoResult{Value: &rpc.Account{Data: rpc.DataBytesOrJSONFromBytes(data)}}, nil
}

func (l *ledger) GetProgramAccountsWithOpts(_ context.Context, _ solana.PublicKey, opts *rpc.GetProgramAccountsOpts) (rpc.GetProgramAccountsResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out rpc.GetProgramAccountsResult
	for pk, data := range l.accounts {
		match := true
		for _, f := range opts.Filters {
			off := int(f.Memcmp.Offset)
			if len(data) < off+len(f.Memcmp.Bytes) || !bytes.Equal(data[off:off+len(f.Memcmp.Bytes)], f.Memcmp.Bytes) {
				match = false
				break
			}
		}
		if match {
			out = append(out, &rpc.KeyedAccount{
				Pubkey:  pk,
				Account: &rpc.Account{Data: rpc.DataBytesOrJSONFromBytes(data)},
			})
		}
	}
	return out, nil
}

func (l *ledger) GetLatestBlockhash(context.Context, rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	return &rpc.GetLatestBlockhashResult{Value: &rpc.LatestBlockhashResult{Blockhash: solana.Hash{7}}}, nil
}

func (l *ledger) SendTransactionWithOpts(_ context.Context, tx *solana.Transaction, _ rpc.TransactionOpts) (solana.Signature, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sig := tx.Signatures[0]
	ix := tx.Message.Instructions[0]
	key := func(i int) solana.PublicKey {
		return tx.Message.AccountKeys[ix.Accounts[i]]
	}

	if args, err := monaco.DecodeInitializeMarketOutcome(ix.Data); err == nil {
		if err, ok := l.sendErrors[args.Title]; ok {
			return solana.Signature{}, err
		}
		l.sent = append(l.sent, args.Title)
		if status, ok := l.rejections[args.Title]; ok {
			l.statuses[sig] = status
			return sig, nil
		}

		outcome, market := key(0), key(1)
		state, err := monaco.ParseAccount_Market(l.accounts[market])
		if err != nil {
			return solana.Signature{}, err
		}
		data, err := monaco.MarshalAccount(monaco.MarketOutcomeDiscriminator, &monaco.MarketOutcome{
			Market: market,
			Index:  state.MarketOutcomesCount,
			Title:  args.Title,
		})
		if err != nil {
			return solana.Signature{}, err
		}
		l.accounts[outcome] = data

		state.MarketOutcomesCount++
		if l.accounts[market], err = monaco.MarshalAccount(monaco.MarketDiscriminator, state); err != nil {
			return solana.Signature{}, err
		}
		return sig, nil
	}

	if args, err := monaco.DecodeAddPricesToMarketOutcome(ix.Data); err == nil {
		l.priceCounts = append(l.priceCounts, len(args.NewPrices))
		return sig, nil
	}
	return solana.Signature{}, errors.New("unexpected instruction")
}

func (l *ledger) GetSignatureStatuses(_ context.Context, _ bool, sigs ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := &rpc.GetSignatureStatusesResult{}
	for _, sig := range sigs {
		out.Value = append(out.Value, &rpc.SignatureStatusesResult{
			ConfirmationStatus: rpc.ConfirmationStatusFinalized,
			Err:                l.statuses[sig],
		})
	}
	return out, nil
}

func quietLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func failingLookup(err error) operators.Lookup {
	return func(context.Context, solana.PublicKey, operators.Operator) shared.Response[shared.PDA] {
		return shared.Fail[shared.PDA](err)
	}
}

// newTestClient returns a client over a ledger holding one Initializing
// market with count outcomes.
func newTestClient(t *testing.T, count uint16, opts ...Option) (*MarketOutcome, *ledger, solana.PublicKey) {
	t.Helper()
	l := newLedger()
	market := solana.NewWallet().PublicKey()
	l.putMarket(t, market, &monaco.Market{
		Authority:           solana.NewWallet().PublicKey(),
		MarketStatus:        monaco.MarketStatusInitializing,
		MarketType:          "EventResultWinner",
		DecimalLimit:        2,
		MarketOutcomesCount: count,
		Title:               "Monaco v Protocol",
	})
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return NewMarketOutcome(l, solana.NewWallet(), opts...), l, market
}
