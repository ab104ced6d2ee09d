package events

type SnapshotAction string

const (
	SnapshotSaved   SnapshotAction = "saved"
	SnapshotUpdated SnapshotAction = "updated"
	SnapshotDeleted SnapshotAction = "deleted"
)

// SnapshotEvent is the payload of SnapshotMessageKind events.
type SnapshotEvent struct {
	SnapshotID   string         `json:"snapshot_id"`
	Action       SnapshotAction `json:"action"`
	Label        string         `json:"label,omitempty"`
	TableVersion string         `json:"table_version,omitempty"`
}
