// Package proof carries the store's tamper-evidence markers through to callers.
// Nothing here computes or checks a proof; values are forwarded as reported.
package proof

type Proof struct {
	Verified      bool
	TransactionID string
	Descriptor    string
}
