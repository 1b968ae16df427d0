package gate

import "context"

// VerificationReconciler double-checks the server when a decoded credential
// claims an unverified owner. The decoded flag can be stale: an admin may
// have approved the owner after the credential was minted. When the server
// disagrees (or rejects the credential outright) the store is cleared so the
// next navigation re-routes to login and the owner picks up a fresh
// credential.
//
// Reconciliation runs once per pending-verification admission, after the
// evaluator has already returned Allow. The evaluator itself stays
// synchronous and total.
type VerificationReconciler struct {
	checker VerificationChecker
	store   CredentialStore
	logger  Logger

	// OnRedirect, when set, is invoked with the login target after the
	// store is cleared. The view layer uses it to navigate immediately
	// instead of waiting for the next navigation.
	OnRedirect func(target string)
}

func NewVerificationReconciler(checker VerificationChecker, store CredentialStore) *VerificationReconciler {
	return &VerificationReconciler{
		checker: checker,
		store:   store,
		logger:  defLogger{},
	}
}

func (r *VerificationReconciler) WithLogger(logger Logger) *VerificationReconciler {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Reconcile performs the server-side check. It reports whether the local
// claim survived: false means the store was cleared and the caller's view
// is stale.
func (r *VerificationReconciler) Reconcile(ctx context.Context) bool {
	verified, err := r.checker.OwnerVerified(ctx)
	if err != nil {
		if IsAuthorizationRejection(err) {
			// The request client already cleared the store.
			r.logger.Info("credential rejected during verification check")
			r.redirect(LoginPath(RoleOwner))
			return false
		}
		// Transient failure: keep the local claim, the next navigation
		// re-checks.
		r.logger.Warn("verification check failed: %v", err)
		return true
	}

	if !verified {
		return true
	}

	r.logger.Info("owner verified server-side, clearing stale credential")
	r.store.Clear()
	r.redirect(LoginPath(RoleOwner))
	return false
}

func (r *VerificationReconciler) redirect(target string) {
	if r.OnRedirect != nil {
		r.OnRedirect(target)
	}
}
