// Package gate implements the client-side authorization gate for the
// hotel-booking platform: the credential store, the claims decoder, the
// per-navigation policy evaluator, and the request client that talks to the
// platform API.
//
// Policy model:
//   - Every route group carries a static Descriptor (Open, PublicOnly,
//     RoleGated, or PendingVerification). Evaluate resolves a Descriptor and
//     the currently stored credential into a Decision (Allow or Redirect).
//     The unverified-owner rule lives in the evaluator, not in route code.
//   - Decoding is a routing convenience, never a security boundary. The
//     platform API independently authorizes every protected call; on a 406
//     the client clears the stored credential and the next navigation
//     re-routes to login.
//
// Credential lifecycle:
//   - A single opaque bearer token, written at login or OAuth completion,
//     read fresh on every navigation and every protected request, erased on
//     logout or server-side rejection. There is no partially valid state:
//     anything that fails to decode is treated as anonymous.
//
// The gatetest subpackage runs an in-process fake of the platform API for
// integration tests.
package gate
