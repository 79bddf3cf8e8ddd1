package solana

import (
	"context"
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Signer resolves the private key for a required signature, nil when unknown.
type Signer = func(key solana.PublicKey) *solana.PrivateKey

// WalletSigner signs with any of the given wallets.
func WalletSigner(wallets ...*solana.Wallet) Signer {
	return func(key solana.PublicKey) *solana.PrivateKey {
		for _, w := range wallets {
			if w != nil && key.Equals(w.PublicKey()) {
				return &w.PrivateKey
			}
		}
		return nil
	}
}

func BuildSignedTransaction(
	ctx context.Context,
	rpcClient RPCClient,
	instructions []solana.Instruction,
	payer solana.PublicKey,
	commitment rpc.CommitmentType,
	sign Signer,
) (*solana.Transaction, error) {
	latestBlockhash, err := GetLatestBlockhash(ctx, rpcClient, commitment)
	if err != nil {
		return nil, err
	}

	tx, err := solana.NewTransaction(instructions, latestBlockhash, solana.TransactionPayer(payer))
	if err != nil {
		return nil, errors.Wrap(err, "build transaction")
	}

	if _, err = tx.Sign(sign); err != nil {
		return nil, errors.Wrap(err, "sign transaction")
	}
	return tx, nil
}

func SendTransaction(ctx context.Context, rpcClient RPCClient, tx *solana.Transaction, commitment rpc.CommitmentType) (solana.Signature, error) {
	sig, err := rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: commitment,
		},
	)
	if err != nil {
		if txErr := preflightError(tx, err); txErr != nil {
			err = txErr
		}
		return solana.Signature{}, errors.Wrap(err, "send transaction")
	}
	return sig, nil
}

// preflightError returns the simulation failure a node reports when it
// rejects a transaction in preflight, nil when there is none.
func preflightError(tx *solana.Transaction, err error) *TransactionError {
	var rpcErr *jsonrpc.RPCError
	if !errors.As(err, &rpcErr) || rpcErr.Data == nil {
		return nil
	}
	raw, mErr := json.Marshal(rpcErr.Data)
	if mErr != nil {
		return nil
	}
	status := gjson.GetBytes(raw, "err")
	if !status.Exists() || status.Type == gjson.Null {
		return nil
	}
	var sig solana.Signature
	if len(tx.Signatures) > 0 {
		sig = tx.Signatures[0]
	}
	return NewTransactionError(sig, status.Value())
}

// SendAndConfirm builds, signs, submits and waits for a transaction.
// The signature is returned alongside a confirmation error so callers can
// still report what was sent.
func SendAndConfirm(
	ctx context.Context,
	rpcClient RPCClient,
	confirmer Confirmer,
	instructions []solana.Instruction,
	payer solana.PublicKey,
	commitment rpc.CommitmentType,
	sign Signer,
) (solana.Signature, error) {
	tx, err := BuildSignedTransaction(ctx, rpcClient, instructions, payer, commitment, sign)
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := SendTransaction(ctx, rpcClient, tx, commitment)
	if err != nil {
		return solana.Signature{}, err
	}

	if err = confirmer.Confirm(ctx, sig); err != nil {
		return sig, err
	}
	return sig, nil
}
