package gate

import (
	"context"
	"sync/atomic"
)

// Navigator runs the policy evaluator for client-side navigations. It reads
// the credential store fresh on every call — decoded claims are never cached
// across navigations, since role and verification state can change between
// them (admin approval, forced invalidation).
type Navigator struct {
	table       *RouteTable
	store       CredentialStore
	logger      Logger
	reconciler  *VerificationReconciler
	epoch       atomic.Uint64
	unsubscribe func()
}

type NavigatorOption func(*Navigator)

// WithNavigatorLogger overrides the default logger.
func WithNavigatorLogger(logger Logger) NavigatorOption {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithNavigatorReconciler enables the required server-side double check when
// a pending-verification route admits an unverified owner.
func WithNavigatorReconciler(r *VerificationReconciler) NavigatorOption {
	return func(n *Navigator) {
		n.reconciler = r
	}
}

func NewNavigator(table *RouteTable, store CredentialStore, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		table:  table,
		store:  store,
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}

	// Any credential change supersedes in-flight work.
	n.unsubscribe = store.Subscribe(func(string) {
		n.epoch.Add(1)
	})

	return n
}

// Navigate evaluates the descriptor for path against the current credential
// and returns the render decision. When a pending-verification route admits
// an unverified owner the reconciler, if configured, re-checks the server in
// the background; a stale claim clears the store so the next navigation
// re-routes.
func (n *Navigator) Navigate(ctx context.Context, path string) Decision {
	descriptor, known := n.table.Resolve(path)
	if !known {
		n.logger.Debug("no descriptor registered for %q, treating as open", path)
	}

	claims, _ := DecodeCredential(n.store.Get())
	decision := Evaluate(descriptor, claims)

	if decision.Allowed && descriptor.Mode == ModePendingVerification && n.reconciler != nil {
		go n.reconciler.Reconcile(ctx)
	}

	return decision
}

// Epoch returns the current store generation. Capture it before issuing an
// asynchronous call and check Stale when the response lands: a bumped epoch
// means the credential changed underneath and the result must be dropped
// rather than re-populate view state.
func (n *Navigator) Epoch() uint64 {
	return n.epoch.Load()
}

// Stale reports whether work started at the captured epoch was superseded.
func (n *Navigator) Stale(epoch uint64) bool {
	return n.epoch.Load() != epoch
}

// Close detaches the navigator from the store.
func (n *Navigator) Close() {
	if n.unsubscribe != nil {
		n.unsubscribe()
		n.unsubscribe = nil
	}
}
