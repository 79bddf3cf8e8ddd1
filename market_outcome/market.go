package marketOutcome

import (
	"context"
	"sort"

	monaco "github.com/krazyTry/monaco-go/gen/monaco_protocol"
	"github.com/krazyTry/monaco-go/shared"
	solanago "github.com/krazyTry/monaco-go/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

const (
	accountKeyMarketOutcome = "MarketOutcome"

	// MarketOutcome.Market sits right after the discriminator.
	marketOutcomeMarketOffset = 8
)

func (m *MarketOutcome) GetMarket(ctx context.Context, market solana.PublicKey) shared.Response[*monaco.Market] {
	state, err := m.fetchMarket(ctx, market)
	if err != nil {
		return shared.Fail[*monaco.Market](err)
	}
	return shared.Ok(state)
}

func (m *MarketOutcome) fetchMarket(ctx context.Context, market solana.PublicKey) (*monaco.Market, error) {
	state, err := GetMarket(ctx, m.rpcClient, market, m.commitment)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch market %s", market)
	}
	return state, nil
}

func GetMarket(
	ctx context.Context,
	rpcClient solanago.RPCClient,
	market solana.PublicKey,
	commitment rpc.CommitmentType,
) (*monaco.Market, error) {
	data, err := solanago.GetAccountData(ctx, rpcClient, market, commitment)
	if err != nil {
		return nil, err
	}
	return monaco.ParseAccount_Market(data)
}

func (m *MarketOutcome) GetMarketOutcome(ctx context.Context, outcome solana.PublicKey) shared.Response[*monaco.MarketOutcome] {
	state, err := GetMarketOutcome(ctx, m.rpcClient, outcome, m.commitment)
	if err != nil {
		return shared.Fail[*monaco.MarketOutcome](errors.Wrapf(err, "fetch outcome %s", outcome))
	}
	return shared.Ok(state)
}

func GetMarketOutcome(
	ctx context.Context,
	rpcClient solanago.RPCClient,
	outcome solana.PublicKey,
	commitment rpc.CommitmentType,
) (*monaco.MarketOutcome, error) {
	data, err := solanago.GetAccountData(ctx, rpcClient, outcome, commitment)
	if err != nil {
		return nil, err
	}
	return monaco.ParseAccount_MarketOutcome(data)
}

// GetMarketOutcomesByMarket lists every outcome of market ordered by index.
func (m *MarketOutcome) GetMarketOutcomesByMarket(
	ctx context.Context,
	market solana.PublicKey,
) shared.Response[[]shared.ProgramAccount[monaco.MarketOutcome]] {
	outcomes, err := GetMarketOutcomesByMarket(ctx, m.rpcClient, m.programID, market, m.commitment)
	if err != nil {
		return shared.Fail[[]shared.ProgramAccount[monaco.MarketOutcome]](err)
	}
	return shared.Ok(outcomes)
}

func GetMarketOutcomesByMarket(
	ctx context.Context,
	rpcClient solanago.RPCClient,
	programID solana.PublicKey,
	market solana.PublicKey,
	commitment rpc.CommitmentType,
) ([]shared.ProgramAccount[monaco.MarketOutcome], error) {
	outs, err := solanago.GetProgramAccounts(ctx, rpcClient, programID, accountKeyMarketOutcome, &solanago.Filter{
		Owner:  market,
		Offset: marketOutcomeMarketOffset,
	}, commitment)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	list := make([]shared.ProgramAccount[monaco.MarketOutcome], 0, len(outs))
	for _, out := range outs {
		if out == nil || out.Account == nil {
			continue
		}
		outcome, err := monaco.ParseAccount_MarketOutcome(out.Account.Data.GetBinary())
		if err != nil {
			return nil, errors.Wrapf(err, "outcome %s", out.Pubkey)
		}
		list = append(list, shared.ProgramAccount[monaco.MarketOutcome]{Pubkey: out.Pubkey, Account: outcome})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Account.Index < list[j].Account.Index
	})
	return list, nil
}
