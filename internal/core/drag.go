package core

import "github.com/valter-silva-au/taskboard/pkg/models"

// DragTracker is the two-level drag state machine: an active drag
// (Idle or Dragging) plus an independent hovered-zone indicator.
type DragTracker struct {
	current  models.TransferToken
	dragging bool
	hovered  models.ZoneID
}

// Start begins dragging the task described by token. The returned token is
// the platform payload; the front-end keeps it alongside the drag so a drop
// can still be resolved after the in-memory reference is lost.
func (d *DragTracker) Start(token models.TransferToken) models.TransferToken {
	d.current = token
	d.dragging = true
	return token
}

// Dragging returns the in-memory token and whether a drag is active.
func (d *DragTracker) Dragging() (models.TransferToken, bool) {
	return d.current, d.dragging
}

// Enter highlights zone.
func (d *DragTracker) Enter(zone models.ZoneID) {
	d.hovered = zone
}

// Leave clears the highlight if zone is the one highlighted. Leaving a zone
// after another has already been entered keeps the newer highlight.
func (d *DragTracker) Leave(zone models.ZoneID) {
	if d.hovered == zone {
		d.hovered = ""
	}
}

// Hovered returns the highlighted zone, or "" when none is.
func (d *DragTracker) Hovered() models.ZoneID {
	return d.hovered
}

// Forget drops the in-memory reference, as happens when the page reloads
// mid-drag. The hover indicator is left alone.
func (d *DragTracker) Forget() {
	d.current = models.TransferToken{}
	d.dragging = false
}

// ResolveSource determines the dragged task for a drop. The in-memory
// reference wins; the payload is consulted only when that reference is gone.
// A payload that fails validation resolves nothing.
func (d *DragTracker) ResolveSource(payload models.TransferToken) (models.TransferToken, bool) {
	if d.dragging && d.current.TaskID != "" {
		return d.current, true
	}
	if err := payload.Validate(); err != nil {
		return models.TransferToken{}, false
	}
	return payload, true
}

// End returns to Idle and clears the highlight. It is safe to call in any
// state, and is called for every drag whether or not a drop happened.
func (d *DragTracker) End() {
	d.current = models.TransferToken{}
	d.dragging = false
	d.hovered = ""
}
