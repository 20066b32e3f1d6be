package azstore

// DeleteSnapshots controls what happens to the snapshots of a blob when the base blob is deleted, the service rejects
// deletion of a blob with snapshots unless one of these is supplied.
type DeleteSnapshots string

const (
	// DeleteSnapshotsInclude deletes the base blob and all of its snapshots.
	DeleteSnapshotsInclude DeleteSnapshots = "include"

	// DeleteSnapshotsOnly deletes the snapshots, leaving the base blob in place.
	DeleteSnapshotsOnly DeleteSnapshots = "only"
)

// SetDeleteSnapshots emits the delete snapshots request header, the zero value is a no-op.
func SetDeleteSnapshots(headers map[string]string, snapshots DeleteSnapshots) {
	if snapshots == "" {
		return
	}

	headers[HeaderDeleteSnapshots] = string(snapshots)
}
