package service

import "fmt"

// ErrorKind groups service error codes by how the caller should react
type ErrorKind string

const (
	// KindValidation: malformed input, retry with corrected input
	KindValidation ErrorKind = "validation"
	// KindBusiness: legitimate state outcome, re-fetch before acting again
	KindBusiness ErrorKind = "business"
	// KindAuthorization: never retryable
	KindAuthorization ErrorKind = "authorization"
	// KindInfrastructure: gateway timeout/unavailability, retryable with backoff
	KindInfrastructure ErrorKind = "infrastructure"
	// KindConsistency: partial commit that could not be reversed; operator attention
	KindConsistency ErrorKind = "consistency"
)

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeInvalidInput    = "invalid_input"
	ErrCodeInvalidAmount   = "invalid_amount"
	ErrCodeInvalidCurrency = "invalid_currency"

	ErrCodeNotFound               = "not_found"
	ErrCodeListingNotFound        = "listing_not_found"
	ErrCodeListingUnavailable     = "listing_no_longer_available"
	ErrCodeListingExpired         = "listing_expired"
	ErrCodeProposalResolved       = "proposal_already_resolved"
	ErrCodeDuplicateActiveTarget  = "duplicate_active_target"
	ErrCodeNoActiveTarget         = "no_active_target"
	ErrCodeAuctionNotOpen         = "auction_not_open"
	ErrCodeAuctionNotEnded        = "auction_not_ended"
	ErrCodeWinnerAlreadySelected  = "winner_already_selected"
	ErrCodeProposalTypeNotAllowed = "proposal_type_not_allowed"
	ErrCodeCashBelowMinimum       = "cash_below_minimum"

	ErrCodeForbidden          = "forbidden"
	ErrCodeSelfTargeting      = "self_targeting_not_allowed"
	ErrCodeOwnAuctionProposal = "cannot_propose_to_own_auction"

	ErrCodePaymentDeclined    = "payment_declined"
	ErrCodeSettlementFailed   = "settlement_failed"
	ErrCodeGatewayUnavailable = "gateway_unavailable"
	ErrCodeInternalError      = "internal_error"

	ErrCodeCriticalRollback = "critical_rollback_failure"
)

var errorKinds = map[string]ErrorKind{
	ErrCodeInvalidInput:    KindValidation,
	ErrCodeInvalidAmount:   KindValidation,
	ErrCodeInvalidCurrency: KindValidation,

	ErrCodeNotFound:               KindBusiness,
	ErrCodeListingNotFound:        KindBusiness,
	ErrCodeListingUnavailable:     KindBusiness,
	ErrCodeListingExpired:         KindBusiness,
	ErrCodeProposalResolved:       KindBusiness,
	ErrCodeDuplicateActiveTarget:  KindBusiness,
	ErrCodeNoActiveTarget:         KindBusiness,
	ErrCodeAuctionNotOpen:         KindBusiness,
	ErrCodeAuctionNotEnded:        KindBusiness,
	ErrCodeWinnerAlreadySelected:  KindBusiness,
	ErrCodeProposalTypeNotAllowed: KindBusiness,
	ErrCodeCashBelowMinimum:       KindBusiness,
	ErrCodePaymentDeclined:        KindBusiness,

	ErrCodeForbidden:          KindAuthorization,
	ErrCodeSelfTargeting:      KindAuthorization,
	ErrCodeOwnAuctionProposal: KindAuthorization,

	ErrCodeSettlementFailed:   KindInfrastructure,
	ErrCodeGatewayUnavailable: KindInfrastructure,
	ErrCodeInternalError:      KindInfrastructure,

	ErrCodeCriticalRollback: KindConsistency,
}

// KindOf returns the error kind for a service error code. Unknown codes are
// treated as infrastructure failures.
func KindOf(code string) ErrorKind {
	if kind, ok := errorKinds[code]; ok {
		return kind
	}
	return KindInfrastructure
}
