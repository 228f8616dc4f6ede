package entities

// PermissionSet is the immutable capability verdict for one (principal,
// challenge) pair. Computed on demand, never stored, never mutated.
type PermissionSet struct {
	Read           bool `json:"read"`
	Update         bool `json:"update"`
	Delete         bool `json:"delete"`
	SubmitEvidence bool `json:"submit_evidence"`
	Validate       bool `json:"validate"`
	Comment        bool `json:"comment"`
	Report         bool `json:"report"`
	Moderate       bool `json:"moderate"`
}

type GlobalRole string

const (
	RoleUser      GlobalRole = "USER"
	RoleModerator GlobalRole = "MODERATOR"
	RoleAdmin     GlobalRole = "ADMIN"
)

// Principal is the caller identity the resolver evaluates. A zero UserID
// means the request is unauthenticated.
type Principal struct {
	UserID string
	Role   GlobalRole
}

func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

func (p Principal) Staff() bool {
	return p.Role == RoleAdmin || p.Role == RoleModerator
}
