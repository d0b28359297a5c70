package model

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ChangeKind - the kind of document mutation delivered by the platform
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// DocumentEvent - a single document mutation as delivered by the
// trigger surface. Delivery is at-least-once; ID identifies the
// delivery for de-duplication. Params is bound by the dispatcher from
// the matched path template.
type DocumentEvent struct {
	ID     string            `json:"id,omitempty"`
	Path   string            `json:"path"`
	Change ChangeKind        `json:"change"`
	Before json.RawMessage   `json:"before,omitempty"`
	After  json.RawMessage   `json:"after,omitempty"`
	Params map[string]string `json:"-"`
}

// Snapshot returns the document body that travels with the event: the
// post-change state for creates and updates, the pre-change state for
// deletes.
func (e *DocumentEvent) Snapshot() json.RawMessage {
	if e.Change == ChangeDeleted {
		return e.Before
	}
	return e.After
}

// DecodeSnapshot unmarshals the event snapshot into out.
func (e *DocumentEvent) DecodeSnapshot(out interface{}) error {
	raw := e.Snapshot()
	if len(raw) == 0 {
		return errors.New("event has no document snapshot")
	}
	return errors.Wrap(json.Unmarshal(raw, out), "unable to decode event snapshot")
}

// DecodeBefore unmarshals the pre-change snapshot into out.
func (e *DocumentEvent) DecodeBefore(out interface{}) error {
	if len(e.Before) == 0 {
		return errors.New("event has no before snapshot")
	}
	return errors.Wrap(json.Unmarshal(e.Before, out), "unable to decode before snapshot")
}

// DecodeAfter unmarshals the post-change snapshot into out.
func (e *DocumentEvent) DecodeAfter(out interface{}) error {
	if len(e.After) == 0 {
		return errors.New("event has no after snapshot")
	}
	return errors.Wrap(json.Unmarshal(e.After, out), "unable to decode after snapshot")
}
