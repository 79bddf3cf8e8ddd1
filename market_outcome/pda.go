package marketOutcome

import (
	"context"
	"strconv"

	"github.com/krazyTry/monaco-go/shared"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// FindMarketOutcomePda derives the outcome account at index for market.
// Seeds are the market key and the decimal text of the index.
func FindMarketOutcomePda(programID, market solana.PublicKey, index uint16) shared.Response[shared.PDA] {
	pda, err := deriveMarketOutcomePda(programID, market, index)
	if err != nil {
		return shared.Fail[shared.PDA](err)
	}
	return shared.Ok(shared.PDA{Pda: pda})
}

func deriveMarketOutcomePda(programID, market solana.PublicKey, index uint16) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress(
		[][]byte{
			market.Bytes(),
			[]byte(strconv.FormatUint(uint64(index), 10)),
		},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(err, "derive outcome %d of market %s", index, market)
	}
	return pda, nil
}

func (m *MarketOutcome) FindMarketOutcomePda(market solana.PublicKey, index uint16) shared.Response[shared.PDA] {
	return FindMarketOutcomePda(m.programID, market, index)
}

// FindNextOutcomePda derives the address the next outcome of market will be
// created at, from the market's current outcome count.
func (m *MarketOutcome) FindNextOutcomePda(ctx context.Context, market solana.PublicKey) shared.Response[shared.PDA] {
	_, pda, err := m.nextOutcome(ctx, market)
	if err != nil {
		return shared.Fail[shared.PDA](err)
	}
	return shared.Ok(shared.PDA{Pda: pda})
}

func (m *MarketOutcome) nextOutcome(ctx context.Context, market solana.PublicKey) (uint16, solana.PublicKey, error) {
	state, err := m.fetchMarket(ctx, market)
	if err != nil {
		return 0, solana.PublicKey{}, err
	}
	index := state.MarketOutcomesCount
	pda, err := deriveMarketOutcomePda(m.programID, market, index)
	if err != nil {
		return 0, solana.PublicKey{}, err
	}
	return index, pda, nil
}
