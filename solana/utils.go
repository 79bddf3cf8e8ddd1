package solana

import (
	"context"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

func GetLatestBlockhash(ctx context.Context, rpcClient RPCClient, commitment rpc.CommitmentType) (solana.Hash, error) {
	recent, err := rpcClient.GetLatestBlockhash(ctx, commitment)
	if err != nil {
		return solana.Hash{}, errors.Wrap(err, "get latest blockhash")
	}
	return recent.Value.Blockhash, nil
}

// Discriminator returns the anchor account discriminator for name.
func Discriminator(name string) []byte {
	id := bin.SighashTypeID(bin.SIGHASH_ACCOUNT_NAMESPACE, name)
	return id[:]
}

func GenProgramAccountFilter(key string, filter *Filter, commitment rpc.CommitmentType) *rpc.GetProgramAccountsOpts {
	opt := &rpc.GetProgramAccountsOpts{
		Commitment: commitment,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  Discriminator(key),
				},
			},
		},
	}
	if filter == nil || filter.Owner.IsZero() {
		return opt
	}

	opt.Filters = append(opt.Filters, rpc.RPCFilter{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: filter.Offset,
			Bytes:  filter.Owner[:],
		},
	})
	return opt
}

// GetAccountInfo returns rpc.ErrNotFound when the account does not exist.
func GetAccountInfo(ctx context.Context, rpcClient RPCClient, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetAccountInfoResult, error) {
	out, err := rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Commitment: commitment,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		return nil, err
	}
	if out == nil || out.Value == nil {
		return nil, rpc.ErrNotFound
	}
	return out, nil
}

// GetAccountData fetches an account and returns its raw data.
func GetAccountData(ctx context.Context, rpcClient RPCClient, account solana.PublicKey, commitment rpc.CommitmentType) ([]byte, error) {
	out, err := GetAccountInfo(ctx, rpcClient, account, commitment)
	if err != nil {
		return nil, err
	}
	return out.Value.Data.GetBinary(), nil
}

func GetProgramAccounts(ctx context.Context, rpcClient RPCClient, programID solana.PublicKey, key string, filter *Filter, commitment rpc.CommitmentType) (rpc.GetProgramAccountsResult, error) {
	out, err := rpcClient.GetProgramAccountsWithOpts(ctx, programID, GenProgramAccountFilter(key, filter, commitment))
	if err != nil {
		return nil, errors.Wrapf(err, "get %s program accounts", key)
	}
	return out, nil
}
