package monaco

import (
	marketOutcome "github.com/krazyTry/monaco-go/market_outcome"
	"github.com/krazyTry/monaco-go/operators"
)

// NewMarketOutcomeClient creates a new market outcome client.
//
// Example:
//
// client := NewMarketOutcomeClient(rpcClient, marketOperator, WithConfirmer(confirmer))
//
// client.InitialiseOutcomes(ctx, marketPk, []string{"Monaco Protocol", "Draw"})
//
// client.AddPricesToOutcome(ctx, marketPk, 0, []float64{1.5, 2, 3.25})
var NewMarketOutcomeClient = marketOutcome.NewMarketOutcome

var (
	WithProgramID         = marketOutcome.WithProgramID
	WithCommitment        = marketOutcome.WithCommitment
	WithConfirmer         = marketOutcome.WithConfirmer
	WithOperatorLookup    = marketOutcome.WithOperatorLookup
	WithIndexVerification = marketOutcome.WithIndexVerification
	WithLogger            = marketOutcome.WithLogger
)

// FindMarketOutcomePda derives an outcome account without touching the network.
var FindMarketOutcomePda = marketOutcome.FindMarketOutcomePda

// FindAuthorisedOperatorsAccountPda derives the operators list account of a role.
var FindAuthorisedOperatorsAccountPda = operators.FindAuthorisedOperatorsAccountPda
