package solana

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrConfirmTimeout       = errors.New("transaction confirmation timed out")
	ErrSubscriptionFinished = errors.New("signature subscription closed before a result")
)

// Confirmer waits until a submitted transaction reaches its target
// commitment, or reports why it did not.
type Confirmer interface {
	Confirm(ctx context.Context, sig solana.Signature) error
}

type PollConfirmer struct {
	client     RPCClient
	commitment rpc.CommitmentType
	interval   time.Duration
	timeout    time.Duration
	log        *logrus.Entry
}

func NewPollConfirmer(client RPCClient, commitment rpc.CommitmentType, interval, timeout time.Duration) *PollConfirmer {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &PollConfirmer{
		client:     client,
		commitment: commitment,
		interval:   interval,
		timeout:    timeout,
		log:        logrus.NewEntry(logrus.StandardLogger()),
	}
}

func (p *PollConfirmer) WithLogger(log *logrus.Entry) *PollConfirmer {
	if log != nil {
		p.log = log
	}
	return p
}

func (p *PollConfirmer) Confirm(ctx context.Context, sig solana.Signature) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var lastErr error
	for {
		done, err := p.check(ctx, sig)
		if done {
			return err
		}
		if err != nil && ctx.Err() == nil {
			// the transaction is already sent; keep asking
			lastErr = err
			p.log.WithError(err).WithField("signature", sig.String()).Warn("signature status poll failed")
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				if lastErr != nil {
					return errors.Wrapf(ErrConfirmTimeout, "signature %s: last poll error: %v", sig, lastErr)
				}
				return errors.Wrapf(ErrConfirmTimeout, "signature %s", sig)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// check reports done once the status settles. A transport error is returned
// with done false.
func (p *PollConfirmer) check(ctx context.Context, sig solana.Signature) (bool, error) {
	out, err := p.client.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return false, errors.Wrap(err, "get signature statuses")
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return false, nil
	}

	status := out.Value[0]
	if status.Err != nil {
		return true, NewTransactionError(sig, status.Err)
	}
	return reached(status, p.commitment), nil
}

// reached compares a status against the target commitment. Nodes that leave
// confirmationStatus empty report finalized as a nil confirmation count.
func reached(status *rpc.SignatureStatusesResult, target rpc.CommitmentType) bool {
	rank := map[rpc.ConfirmationStatusType]int{
		rpc.ConfirmationStatusProcessed: 1,
		rpc.ConfirmationStatusConfirmed: 2,
		rpc.ConfirmationStatusFinalized: 3,
	}
	want := rank[rpc.ConfirmationStatusType(target)]
	if want == 0 {
		want = rank[rpc.ConfirmationStatusFinalized]
	}
	got := rank[status.ConfirmationStatus]
	if got == 0 && status.Confirmations == nil {
		got = rank[rpc.ConfirmationStatusFinalized]
	}
	return got >= want
}

// WSConfirmer waits for a signature notification over the websocket API.
type WSConfirmer struct {
	client     *ws.Client
	commitment rpc.CommitmentType
	timeout    time.Duration
}

func NewWSConfirmer(client *ws.Client, commitment rpc.CommitmentType, timeout time.Duration) *WSConfirmer {
	return &WSConfirmer{
		client:     client,
		commitment: commitment,
		timeout:    timeout,
	}
}

func (w *WSConfirmer) Confirm(ctx context.Context, sig solana.Signature) error {
	sub, err := w.client.SignatureSubscribe(sig, w.commitment)
	if err != nil {
		return errors.Wrap(err, "signature subscribe")
	}
	defer sub.Unsubscribe()

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	res, err := sub.Recv(ctx)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errors.Wrapf(ErrConfirmTimeout, "signature %s", sig)
	case errors.Is(err, ws.ErrSubscriptionClosed):
		return ErrSubscriptionFinished
	case err != nil:
		return err
	}
	if res.Value.Err != nil {
		return NewTransactionError(sig, res.Value.Err)
	}
	return nil
}
