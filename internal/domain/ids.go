package domain

import (
	"strings"

	"github.com/google/uuid"
)

// draftPrefix marks identifiers minted in the editor that the store has
// not yet seen. The codec maps draft ids to null on the wire; the store
// assigns real ids and matches entities positionally.
const draftPrefix = "new-"

// NewID returns a server-style identifier, used by the persistence layer.
func NewID() string {
	return uuid.New().String()
}

// NewDraftID returns a client-only identifier for an unsaved entity.
func NewDraftID() string {
	return draftPrefix + uuid.New().String()
}

// IsDraftID reports whether id is client-only (unsaved).
// An empty id counts as draft: the store must assign one.
func IsDraftID(id string) bool {
	return id == "" || strings.HasPrefix(id, draftPrefix)
}
