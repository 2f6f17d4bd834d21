package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008

	// Bounty workflow codes
	InsufficientFunds Code = 200001
	BountyNotOpen     Code = 200002
	BountyClosed      Code = 200003
	SelfSubmission    Code = 200004
	DemoNotOwned      Code = 200005
	NotPending        Code = 200006
	AlreadySettled    Code = 200007
)
