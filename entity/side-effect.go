package entity

import "time"

// SideEffectKind names the cross-page handoff record kinds. At most one
// record per kind is kept; later writes overwrite earlier ones.
type SideEffectKind string

const (
	SideEffectOnlinePurchase SideEffectKind = "onlinePurchase"
	SideEffectOfflinePickup  SideEffectKind = "offlinePickup"
)

// SideEffectRecord is the journey-result record handed off to external pages
// (profile, store dashboard) when a purchase branch completes.
type SideEffectRecord struct {
	Type      SideEffectKind `json:"type"`
	Product   Product        `json:"product"`
	Store     *Store         `json:"store,omitempty"`
	UserID    string         `json:"userId"`
	UserName  string         `json:"userName"`
	Timestamp time.Time      `json:"timestamp"`
}
