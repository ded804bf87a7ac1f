package domain

import "time"

// AuditAction names a security-relevant operation.
type AuditAction string

const (
	AuditLogin      AuditAction = "login"
	AuditRegister   AuditAction = "register"
	AuditUserCreate AuditAction = "user.create"
	AuditUserUpdate AuditAction = "user.update"
	AuditUserDelete AuditAction = "user.delete"
)

// AuditOutcome is the result recorded for an audited operation.
type AuditOutcome string

const (
	OutcomeApplied  AuditOutcome = "applied"
	OutcomeRejected AuditOutcome = "rejected"
)

// Rejection reasons. These stay server-side; callers only see the error kind.
const (
	ReasonUnknownUser   = "unknown_user"
	ReasonBadPassword   = "bad_password"
	ReasonLocked        = "locked"
	ReasonUsernameTaken = "username_taken"
	ReasonNotFound      = "not_found"
	ReasonSelfDelete    = "self_delete"
	ReasonPeerAdmin     = "peer_admin"
	ReasonAdminTarget   = "admin_target"
)

// AuditEvent records who did what to which account. It never carries
// passwords, hashes or tokens.
type AuditEvent struct {
	Actor    string
	Action   AuditAction
	TargetID int64
	Target   string
	Outcome  AuditOutcome
	Reason   string
	At       time.Time
}
