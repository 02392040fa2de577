// Package sepa builds SEPA payment transaction records and renders them as
// ISO 20022 subtrees: CdtTrfTxInf for pain.001 credit transfers and
// DrctDbtTxInf for pain.008 direct debits.
//
// Setters validate eagerly and leave the transaction untouched when they
// return an error. The subtree builders never fail and never validate; call
// CheckIsValidTransaction first.
//
// A transaction is not safe for concurrent use.
package sepa
