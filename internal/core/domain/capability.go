package domain

// Capability is the explicit authorization token passed into every guarded
// state transition. It replaces ambient current-user state: callers obtain it
// from the auth layer and the core only inspects the flags.
type Capability struct {
	ActorID    string `json:"actorID"`
	CanApprove bool   `json:"canApprove"`
	CanSettle  bool   `json:"canSettle"`
}
