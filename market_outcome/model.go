package marketOutcome

import (
	"github.com/krazyTry/monaco-go/shared"

	"github.com/gagliardetto/solana-go"
)

// OutcomeInitialisation is one outcome account created on chain.
type OutcomeInitialisation struct {
	Title         string
	OutcomePda    solana.PublicKey
	OutcomeIndex  uint16
	TransactionID solana.Signature
}

// OutcomeInitialisations is the result of a batch, in submission order.
// Failed counts the titles whose errors are carried by the response.
type OutcomeInitialisations struct {
	BatchID  string
	Outcomes []OutcomeInitialisation
	Failed   int
}

func (o OutcomeInitialisations) Status() shared.BatchStatus {
	return shared.GetBatchStatus(len(o.Outcomes), o.Failed)
}

// PriceLadderUpdate reports the transactions that added prices to an outcome.
type PriceLadderUpdate struct {
	OutcomePda   solana.PublicKey
	OutcomeIndex uint16
	Prices       []float64
	Transactions []solana.Signature
}

// indexConflict marks a transaction the program rejected because the derived
// outcome address was already in use.
type indexConflict struct {
	err error
}

func (e *indexConflict) Error() string {
	return ErrIndexConflict.Error() + ": " + e.err.Error()
}

func (e *indexConflict) Unwrap() error {
	return e.err
}

func (e *indexConflict) Is(target error) bool {
	return target == ErrIndexConflict
}
