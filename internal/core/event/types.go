package event

// ActorSpawned is emitted when the first snapshot of a remote actor arrives.
type ActorSpawned struct {
	ActorID int32
	At      int64 // snapshot timestamp, ms
}

// ActorDestroyed is emitted when a remote actor is forgotten.
type ActorDestroyed struct {
	ActorID int32
	At      int64 // render time, ms
}

// SnapshotRejected is emitted for snapshots older than an actor's newest.
type SnapshotRejected struct {
	ActorID   int32
	Timestamp int64
}
