package operators

import (
	"context"

	monaco "github.com/krazyTry/monaco-go/gen/monaco_protocol"
	"github.com/krazyTry/monaco-go/shared"
	solanago "github.com/krazyTry/monaco-go/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

var ErrUnknownOperator = errors.New("unknown operator type")

// Operator is the role an authorised operators list is kept for.
type Operator string

const (
	Admin  Operator = "ADMIN"
	Market Operator = "MARKET"
	Crank  Operator = "CRANK"
)

const authorisedOperatorsSeed = "authorised_operators"

func (o Operator) Valid() bool {
	switch o {
	case Admin, Market, Crank:
		return true
	}
	return false
}

// Lookup resolves the authorised operators account for a role.
type Lookup func(ctx context.Context, programID solana.PublicKey, role Operator) shared.Response[shared.PDA]

// FindAuthorisedOperatorsAccountPda derives the operators list account for role.
// It satisfies Lookup.
func FindAuthorisedOperatorsAccountPda(_ context.Context, programID solana.PublicKey, role Operator) shared.Response[shared.PDA] {
	if !role.Valid() {
		return shared.Fail[shared.PDA](errors.Wrapf(ErrUnknownOperator, "%q", string(role)))
	}
	pda, _, err := solana.FindProgramAddress(
		[][]byte{
			[]byte(authorisedOperatorsSeed),
			[]byte(role),
		},
		programID,
	)
	if err != nil {
		return shared.Fail[shared.PDA](errors.Wrapf(err, "derive %s operators account", role))
	}
	return shared.Ok(shared.PDA{Pda: pda})
}

// GetAuthorisedOperators fetches and decodes the operators list for role.
func GetAuthorisedOperators(
	ctx context.Context,
	rpcClient solanago.RPCClient,
	programID solana.PublicKey,
	role Operator,
	commitment rpc.CommitmentType,
) shared.Response[*monaco.AuthorisedOperators] {
	pda := FindAuthorisedOperatorsAccountPda(ctx, programID, role)
	if !pda.Success() {
		return shared.FailAll[*monaco.AuthorisedOperators](pda.Errors)
	}

	data, err := solanago.GetAccountData(ctx, rpcClient, pda.Data.Pda, commitment)
	if err != nil {
		return shared.Fail[*monaco.AuthorisedOperators](errors.Wrapf(err, "fetch %s operators %s", role, pda.Data.Pda))
	}
	list, err := monaco.ParseAccount_AuthorisedOperators(data)
	if err != nil {
		return shared.Fail[*monaco.AuthorisedOperators](err)
	}
	return shared.Ok(list)
}

// IsAuthorisedOperator reports whether operator is on the role's list.
func IsAuthorisedOperator(
	ctx context.Context,
	rpcClient solanago.RPCClient,
	programID solana.PublicKey,
	role Operator,
	operator solana.PublicKey,
	commitment rpc.CommitmentType,
) shared.Response[bool] {
	list := GetAuthorisedOperators(ctx, rpcClient, programID, role, commitment)
	if !list.Success() {
		return shared.FailAll[bool](list.Errors)
	}
	return shared.Ok(list.Data.Contains(operator))
}
