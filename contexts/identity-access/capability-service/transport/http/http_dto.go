package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ResolvePermissionsRequest struct {
	UserID      string `json:"user_id,omitempty"`
	ChallengeID string `json:"challenge_id"`
}

type PermissionSetResponse struct {
	Read           bool `json:"read"`
	Update         bool `json:"update"`
	Delete         bool `json:"delete"`
	SubmitEvidence bool `json:"submit_evidence"`
	Validate       bool `json:"validate"`
	Comment        bool `json:"comment"`
	Report         bool `json:"report"`
	Moderate       bool `json:"moderate"`
}
