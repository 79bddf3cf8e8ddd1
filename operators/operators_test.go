package operators

import (
	"context"
	"testing"

	monaco "github.com/krazyTry/monaco-go/gen/monaco_protocol"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

type accountsRPC struct {
	accounts map[solana.PublicKey][]byte
}

func (f *accountsRPC) GetAccountInfoWithOpts(_ context.Context, account solana.PublicKey, _ *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	data, ok := f.accounts[account]
	if !ok {
		return &rpc.GetAccountInfoResult{}, nil
	}
	return &rpc.GetAccountInfoResult{Value: &rpc.Account{Data: rpc.DataBytesOrJSONFromBytes(data)}}, nil
}

func (f *accountsRPC) GetProgramAccountsWithOpts(context.Context, solana.PublicKey, *rpc.GetProgramAccountsOpts) (rpc.GetProgramAccountsResult, error) {
	return nil, nil
}

func (f *accountsRPC) GetLatestBlockhash(context.Context, rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	return nil, errors.New("not implemented")
}

func (f *accountsRPC) SendTransactionWithOpts(context.Context, *solana.Transaction, rpc.TransactionOpts) (solana.Signature, error) {
	return solana.Signature{}, errors.New("not implemented")
}

func (f *accountsRPC) GetSignatureStatuses(context.Context, bool, ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	return nil, errors.New("not implemented")
}

func TestFindAuthorisedOperatorsAccountPda(t *testing.T) {
	ctx := context.Background()

	market := FindAuthorisedOperatorsAccountPda(ctx, monaco.ProgramID, Market)
	if !market.Success() {
		t.Fatal("FindAuthorisedOperatorsAccountPda() fail", market.Err())
	}
	want, _, err := solana.FindProgramAddress([][]byte{[]byte("authorised_operators"), []byte("MARKET")}, monaco.ProgramID)
	if err != nil {
		t.Fatal("FindProgramAddress() fail", err)
	}
	if !market.Data.Pda.Equals(want) {
		t.Fatalf("got=%s want=%s", market.Data.Pda, want)
	}

	crank := FindAuthorisedOperatorsAccountPda(ctx, monaco.ProgramID, Crank)
	if crank.Data.Pda.Equals(market.Data.Pda) {
		t.Fatal("roles must derive distinct accounts")
	}

	bad := FindAuthorisedOperatorsAccountPda(ctx, monaco.ProgramID, Operator("market"))
	if bad.Success() || !errors.Is(bad.Err(), ErrUnknownOperator) {
		t.Fatalf("unknown role got=%+v", bad)
	}
}

func TestIsAuthorisedOperator(t *testing.T) {
	ctx := context.Background()
	operator := solana.NewWallet().PublicKey()

	pda := FindAuthorisedOperatorsAccountPda(ctx, monaco.ProgramID, Market).Data.Pda
	data, err := monaco.MarshalAccount(monaco.AuthorisedOperatorsDiscriminator, &monaco.AuthorisedOperators{
		OperatorList: []solana.PublicKey{operator},
	})
	if err != nil {
		t.Fatal("MarshalAccount() fail", err)
	}
	client := &accountsRPC{accounts: map[solana.PublicKey][]byte{pda: data}}

	res := IsAuthorisedOperator(ctx, client, monaco.ProgramID, Market, operator, rpc.CommitmentConfirmed)
	if !res.Success() || !res.Data {
		t.Fatalf("IsAuthorisedOperator() got=%+v", res)
	}

	res = IsAuthorisedOperator(ctx, client, monaco.ProgramID, Market, solana.NewWallet().PublicKey(), rpc.CommitmentConfirmed)
	if !res.Success() || res.Data {
		t.Fatalf("IsAuthorisedOperator() stranger got=%+v", res)
	}

	res = IsAuthorisedOperator(ctx, client, monaco.ProgramID, Admin, operator, rpc.CommitmentConfirmed)
	if res.Success() || !errors.Is(res.Err(), rpc.ErrNotFound) {
		t.Fatalf("IsAuthorisedOperator() missing list got=%+v", res)
	}
}
