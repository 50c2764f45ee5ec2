package domain

import (
	"errors"
	"time"
)

var (
	// ErrSelfCollaboration indicates that requester and collaborator are the same user.
	ErrSelfCollaboration = errors.New("cannot collaborate with yourself")
	// ErrInvalidContribution indicates a contribution outside (0, total_amount].
	ErrInvalidContribution = errors.New("invalid contribution")
	// ErrCollabRequestNotFound indicates that the collaboration request is not found.
	ErrCollabRequestNotFound = errors.New("collaboration request not found")
	// ErrInvalidTransition indicates that the request is no longer pending.
	ErrInvalidTransition = errors.New("collaboration request is not pending")
	// ErrNotCollaborator indicates that the acting user is not the invited collaborator.
	ErrNotCollaborator = errors.New("only the invited collaborator may act on the request")
	// ErrZeroContribution indicates that both contributions are zero.
	ErrZeroContribution = errors.New("both contributions are zero")
	// ErrRequestExpired indicates that the pending request has passed its expiry.
	ErrRequestExpired = errors.New("collaboration request has expired")
)

// Collaboration request statuses.
const (
	CollabStatusPending  = "Pending"
	CollabStatusAccepted = "Accepted"
	CollabStatusRejected = "Rejected"
)

// CollabRequest is a proposal for two users to jointly fund a position.
//
// Once the status leaves Pending the record is immutable.
type CollabRequest struct {
	ID                       int64     `json:"id"`
	Requester                string    `json:"requester"`
	Collaborator             string    `json:"collaborator"`
	AssetClass               string    `json:"asset_class"`
	Symbol                   string    `json:"symbol"`
	TotalAmount              string    `json:"total_amount"`
	RequesterContribution    string    `json:"requester_contribution"`
	CollaboratorContribution string    `json:"collaborator_contribution"`
	Status                   string    `json:"status"`
	CreatedAt                time.Time `json:"created_at"`
	Expired                  bool      `json:"expired,omitempty"`
	UnverifiedCollaborator   bool      `json:"unverified_collaborator,omitempty"`
}

// CreateCollabRequestParams holds data needed for CollabRequest creation.
type CreateCollabRequestParams struct {
	Requester                string `json:"requester"`
	Collaborator             string `json:"collaborator"`
	AssetClass               string `json:"asset_class"`
	Symbol                   string `json:"symbol"`
	TotalAmount              string `json:"total_amount"`
	RequesterContribution    string `json:"requester_contribution"`
	CollaboratorContribution string `json:"collaborator_contribution"`
}

// HoldingCredit is one holding credit booked during settlement.
type HoldingCredit struct {
	Username  string `json:"username"`
	Quantity  string `json:"quantity"`
	CostBasis string `json:"cost_basis"`
}

// SettleTxParams is the input data for the settlement transaction.
type SettleTxParams struct {
	RequestID int64           `json:"request_id"`
	Credits   []HoldingCredit `json:"credits"`
}

// SettlementResult is the result of an accepted collaboration request.
type SettlementResult struct {
	Request           CollabRequest `json:"request"`
	Holdings          []Holding     `json:"holdings"`
	RequesterShare    string        `json:"requester_share"`
	CollaboratorShare string        `json:"collaborator_share"`
	ReferencePrice    string        `json:"reference_price"`
}
