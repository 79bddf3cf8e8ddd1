package marketOutcome

import (
	"context"
	"math"

	monaco "github.com/krazyTry/monaco-go/gen/monaco_protocol"
	"github.com/krazyTry/monaco-go/operators"
	"github.com/krazyTry/monaco-go/shared"
	solanago "github.com/krazyTry/monaco-go/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const PricesPerTransaction = 50

var (
	ErrNoPrices     = errors.New("no prices to add")
	ErrInvalidPrice = errors.New("invalid price")
)

var minPrice = decimal.NewFromInt(1)

// ValidatePrices checks every price is above 1.0 and has no more decimal
// places than the market allows.
func ValidatePrices(prices []float64, decimalLimit uint8) []error {
	if len(prices) == 0 {
		return []error{ErrNoPrices}
	}
	var errs []error
	for _, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			errs = append(errs, errors.Wrapf(ErrInvalidPrice, "%v is not a finite number", p))
			continue
		}
		d := decimal.NewFromFloat(p)
		if !d.GreaterThan(minPrice) {
			errs = append(errs, errors.Wrapf(ErrInvalidPrice, "%s must be greater than 1.0", d))
			continue
		}
		if places := -d.Exponent(); places > int32(decimalLimit) {
			errs = append(errs, errors.Wrapf(ErrInvalidPrice, "%s has %d decimal places, market allows %d", d, places, decimalLimit))
		}
	}
	return errs
}

func AddPricesToOutcomeInstruction(
	programID solana.PublicKey,
	market solana.PublicKey,
	authorisedOperators solana.PublicKey,
	outcome solana.PublicKey,
	marketOperator solana.PublicKey,
	outcomeIndex uint16,
	prices []float64,
) (solana.Instruction, error) {
	ix, err := monaco.NewAddPricesToMarketOutcomeInstruction(
		outcomeIndex,
		prices,
		outcome,
		market,
		authorisedOperators,
		marketOperator,
	)
	if err != nil {
		return nil, errors.Wrap(err, "build add_prices_to_market_outcome")
	}
	return monaco.SetProgramID(ix, programID), nil
}

// AddPricesToOutcome appends prices to the price ladder of an outcome,
// PricesPerTransaction at a time. Batches that fail are reported in the
// response errors; the ones that landed are listed in Transactions.
func (m *MarketOutcome) AddPricesToOutcome(
	ctx context.Context,
	market solana.PublicKey,
	outcomeIndex uint16,
	prices []float64,
) shared.Response[PriceLadderUpdate] {
	if m.operator == nil {
		return shared.Fail[PriceLadderUpdate](ErrNoSigner)
	}

	var (
		g          errgroup.Group
		authorised shared.Response[shared.PDA]
		state      *monaco.Market
		fetchErr   error
	)
	g.Go(func() error {
		authorised = m.lookup(ctx, m.programID, operators.Market)
		return nil
	})
	g.Go(func() error {
		state, fetchErr = m.fetchMarket(ctx, market)
		return nil
	})
	_ = g.Wait()

	if !authorised.Success() {
		return shared.FailAll[PriceLadderUpdate](authorised.Errors)
	}
	if fetchErr != nil {
		return shared.Fail[PriceLadderUpdate](fetchErr)
	}
	if errs := ValidatePrices(prices, state.DecimalLimit); len(errs) > 0 {
		return shared.FailAll[PriceLadderUpdate](errs)
	}

	outcomePda, err := deriveMarketOutcomePda(m.programID, market, outcomeIndex)
	if err != nil {
		return shared.Fail[PriceLadderUpdate](err)
	}

	update := PriceLadderUpdate{
		OutcomePda:   outcomePda,
		OutcomeIndex: outcomeIndex,
		Prices:       prices,
	}
	log := m.log.WithFields(logrus.Fields{
		"market": market.String(),
		"index":  outcomeIndex,
	})

	folded := shared.Fold(chunkPrices(prices), shared.Results[solana.Signature]{},
		func(acc shared.Results[solana.Signature], i int, batch []float64) shared.Results[solana.Signature] {
			sig, err := m.addPrices(ctx, market, authorised.Data.Pda, outcomePda, outcomeIndex, batch)
			if err != nil {
				first := i * PricesPerTransaction
				log.WithError(err).WithField("prices", batch).Warn("add prices failed")
				return acc.Add(sig, errors.Wrapf(err, "prices %d-%d", first, first+len(batch)-1))
			}
			log.WithFields(logrus.Fields{"signature": sig.String(), "count": len(batch)}).Info("prices added")
			return acc.Add(sig, nil)
		},
	)
	update.Transactions = folded.Succeeded
	errs := folded.Failed
	return shared.Partial(update, errs)
}

func chunkPrices(prices []float64) [][]float64 {
	var chunks [][]float64
	for start := 0; start < len(prices); start += PricesPerTransaction {
		end := start + PricesPerTransaction
		if end > len(prices) {
			end = len(prices)
		}
		chunks = append(chunks, prices[start:end])
	}
	return chunks
}

func (m *MarketOutcome) addPrices(
	ctx context.Context,
	market solana.PublicKey,
	authorisedOperators solana.PublicKey,
	outcomePda solana.PublicKey,
	outcomeIndex uint16,
	prices []float64,
) (solana.Signature, error) {
	ix, err := AddPricesToOutcomeInstruction(
		m.programID,
		market,
		authorisedOperators,
		outcomePda,
		m.operator.PublicKey(),
		outcomeIndex,
		prices,
	)
	if err != nil {
		return solana.Signature{}, err
	}
	return solanago.SendAndConfirm(ctx,
		m.rpcClient,
		m.confirmer,
		[]solana.Instruction{ix},
		m.operator.PublicKey(),
		m.commitment,
		solanago.WalletSigner(m.operator),
	)
}
