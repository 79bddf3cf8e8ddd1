package marketOutcome

import (
	"context"
	"math"

	monaco "github.com/krazyTry/monaco-go/gen/monaco_protocol"
	"github.com/krazyTry/monaco-go/operators"
	"github.com/krazyTry/monaco-go/shared"
	solanago "github.com/krazyTry/monaco-go/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func InitialiseOutcomeInstruction(
	programID solana.PublicKey,
	market solana.PublicKey,
	authorisedOperators solana.PublicKey,
	outcome solana.PublicKey,
	marketOperator solana.PublicKey,
	title string,
) (solana.Instruction, error) {
	ix, err := monaco.NewInitializeMarketOutcomeInstruction(
		title,
		outcome,
		market,
		authorisedOperators,
		marketOperator,
		solana.SystemProgramID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "build initialize_market_outcome %q", title)
	}
	return monaco.SetProgramID(ix, programID), nil
}

// InitialiseOutcome creates one outcome account for market at its next free
// index. Calling it twice with the same title creates two outcomes.
func (m *MarketOutcome) InitialiseOutcome(
	ctx context.Context,
	market solana.PublicKey,
	title string,
) shared.Response[OutcomeInitialisation] {
	if m.operator == nil {
		return shared.Fail[OutcomeInitialisation](ErrNoSigner)
	}

	var (
		g          errgroup.Group
		authorised shared.Response[shared.PDA]
		index      uint16
		outcomePda solana.PublicKey
		nextErr    error
	)
	g.Go(func() error {
		authorised = m.lookup(ctx, m.programID, operators.Market)
		return nil
	})
	g.Go(func() error {
		index, outcomePda, nextErr = m.nextOutcome(ctx, market)
		return nil
	})
	_ = g.Wait()

	if !authorised.Success() {
		return shared.FailAll[OutcomeInitialisation](authorised.Errors)
	}
	if nextErr != nil {
		return shared.Fail[OutcomeInitialisation](nextErr)
	}

	log := m.log.WithField("market", market.String())
	out, err := m.initialise(ctx, log, market, authorised.Data.Pda, index, outcomePda, title)
	if err != nil {
		return shared.Fail[OutcomeInitialisation](err)
	}
	return shared.Ok(out)
}

// InitialiseOutcomes creates one outcome account per title, in order, at
// consecutive indices starting from the market's current outcome count.
// A failed title is reported in the response errors and the batch moves on.
func (m *MarketOutcome) InitialiseOutcomes(
	ctx context.Context,
	market solana.PublicKey,
	titles []string,
) shared.Response[OutcomeInitialisations] {
	result := OutcomeInitialisations{BatchID: uuid.NewString()}
	if m.operator == nil {
		return shared.Partial(result, []error{ErrNoSigner})
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
		return shared.Partial(result, authorised.Errors)
	}
	if fetchErr != nil {
		return shared.Partial(result, []error{fetchErr})
	}

	log := m.log.WithFields(logrus.Fields{
		"batch_id": result.BatchID,
		"market":   market.String(),
	})
	if len(titles) == 0 {
		return shared.Ok(result)
	}

	base := uint64(state.MarketOutcomesCount)
	log.WithFields(logrus.Fields{"base_index": base, "titles": len(titles)}).Info("initialising outcomes")

	folded := shared.Fold(titles, shared.Results[OutcomeInitialisation]{},
		func(acc shared.Results[OutcomeInitialisation], i int, title string) shared.Results[OutcomeInitialisation] {
			index := base + uint64(i)
			out, err := m.initialiseAt(ctx, log, market, authorised.Data.Pda, index, title)
			if err != nil {
				err = errors.Wrapf(err, "outcome %q at index %d", title, index)
			}
			return acc.Add(out, err)
		},
	)
	result.Outcomes = folded.Succeeded
	errs := folded.Failed
	result.Failed = len(errs)

	log.WithFields(logrus.Fields{
		"status":    result.Status().String(),
		"succeeded": len(result.Outcomes),
		"failed":    result.Failed,
	}).Info("outcome batch finished")
	return shared.Partial(result, errs)
}

func (m *MarketOutcome) initialiseAt(
	ctx context.Context,
	log *logrus.Entry,
	market solana.PublicKey,
	authorisedOperators solana.PublicKey,
	index uint64,
	title string,
) (OutcomeInitialisation, error) {
	if index > math.MaxUint16 {
		return OutcomeInitialisation{}, ErrIndexOutOfRange
	}

	if m.verifyIndex {
		state, err := m.fetchMarket(ctx, market)
		if err != nil {
			return OutcomeInitialisation{}, err
		}
		if uint64(state.MarketOutcomesCount) != index {
			return OutcomeInitialisation{}, errors.Wrapf(ErrIndexConflict, "market outcome count is %d", state.MarketOutcomesCount)
		}
	}

	outcomePda, err := deriveMarketOutcomePda(m.programID, market, uint16(index))
	if err != nil {
		return OutcomeInitialisation{}, err
	}
	return m.initialise(ctx, log, market, authorisedOperators, uint16(index), outcomePda, title)
}

func (m *MarketOutcome) initialise(
	ctx context.Context,
	log *logrus.Entry,
	market solana.PublicKey,
	authorisedOperators solana.PublicKey,
	index uint16,
	outcomePda solana.PublicKey,
	title string,
) (OutcomeInitialisation, error) {
	entry := log.WithFields(logrus.Fields{
		"index": index,
		"title": title,
	})

	ix, err := InitialiseOutcomeInstruction(
		m.programID,
		market,
		authorisedOperators,
		outcomePda,
		m.operator.PublicKey(),
		title,
	)
	if err != nil {
		return OutcomeInitialisation{}, err
	}

	sig, err := solanago.SendAndConfirm(ctx,
		m.rpcClient,
		m.confirmer,
		[]solana.Instruction{ix},
		m.operator.PublicKey(),
		m.commitment,
		solanago.WalletSigner(m.operator),
	)
	if err != nil {
		err = classifySubmitError(err)
		if !sig.IsZero() {
			entry = entry.WithField("signature", sig.String())
		}
		entry.WithError(err).Warn("initialise outcome failed")
		return OutcomeInitialisation{}, err
	}

	entry.WithField("signature", sig.String()).Info("outcome initialised")
	return OutcomeInitialisation{
		Title:         title,
		OutcomePda:    outcomePda,
		OutcomeIndex:  index,
		TransactionID: sig,
	}, nil
}

func classifySubmitError(err error) error {
	var txErr *solanago.TransactionError
	if errors.As(err, &txErr) && txErr.IsSeedConstraint() {
		return &indexConflict{err: err}
	}
	return err
}
