package chain

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// BufEq reports whether two byte buffers are identical. Account data
// buffers are compared wholesale rather than field by field so that any
// layout change invalidates the cached view.
func BufEq(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Reconciler suppresses redundant writes when the finalized view of an
// account has not changed since the last pass. Confirmed-commitment
// scans are optimistic; the finalized fetch here is the authority.
type Reconciler struct {
	client    *Client
	mu        sync.Mutex
	finalized map[solana.PublicKey][]byte
}

// NewReconciler builds a reconciler over the given client.
func NewReconciler(client *Client) *Reconciler {
	return &Reconciler{
		client:    client,
		finalized: make(map[solana.PublicKey][]byte),
	}
}

// Reconcile fetches the finalized account data and, if it differs from
// the last finalized snapshot, invokes apply and caches the new
// snapshot. Returns whether apply ran.
func (r *Reconciler) Reconcile(ctx context.Context, key solana.PublicKey, apply func(data []byte, slot uint64) error) (bool, error) {
	data, slot, err := r.client.FetchAccount(ctx, key, rpc.CommitmentFinalized)
	if err != nil {
		return false, err
	}
	if data == nil {
		// Account not finalized yet (or closed); try again next pass.
		return false, nil
	}

	r.mu.Lock()
	prev, seen := r.finalized[key]
	r.mu.Unlock()
	if seen && BufEq(prev, data) {
		return false, nil
	}

	if err := apply(data, slot); err != nil {
		// Drop the snapshot so the next pass retries the apply.
		r.Forget(key)
		return false, err
	}

	snapshot := make([]byte, len(data))
	copy(snapshot, data)
	r.mu.Lock()
	r.finalized[key] = snapshot
	r.mu.Unlock()
	return true, nil
}

// Forget drops the cached snapshot for an account.
func (r *Reconciler) Forget(key solana.PublicKey) {
	r.mu.Lock()
	delete(r.finalized, key)
	r.mu.Unlock()
}
