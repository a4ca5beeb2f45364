package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"

	// Sniper session codes.
	NoDealsForRealm   failure.ErrorCode = "NoDealsForRealm"
	SessionNotFound   failure.ErrorCode = "SessionNotFound"
	SessionDisabled   failure.ErrorCode = "SessionDisabled"
	DealNotFound      failure.ErrorCode = "DealNotFound"
	InsufficientFunds failure.ErrorCode = "InsufficientFunds"

	// Shopping list and realm resolution codes.
	RealmNotFound        failure.ErrorCode = "RealmNotFound"
	InvalidShoppingEntry failure.ErrorCode = "InvalidShoppingEntry"
	ForbiddenItemID      failure.ErrorCode = "ForbiddenItemID"

	// Blizzard API codes.
	QuotaExceeded  failure.ErrorCode = "QuotaExceeded"
	UnmodifiedData failure.ErrorCode = "UnmodifiedData"
)
