package shared

import (
	"github.com/gagliardetto/solana-go"
)

// PDA is a program derived address. The bump seed stays internal.
type PDA struct {
	Pda solana.PublicKey
}

// ProgramAccount pairs an account address with its decoded state.
type ProgramAccount[T any] struct {
	Pubkey  solana.PublicKey
	Account *T
}
