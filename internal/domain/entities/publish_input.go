package entities

// Identity is the author and committer of the sync commit.
type Identity struct {
	Name  string
	Email string
}

// PublishInput carries everything a publisher needs to commit and push the
// rewritten manifests.
type PublishInput struct {
	ChangedPaths []string
	Identity     Identity
	Message      string
	ExtraArgs    []string // appended to the commit invocation
	Token        string   // optional, used by publishers that authenticate themselves
}

// SyncResult summarises a sync run.
type SyncResult struct {
	Scanned      int
	Inconsistent []InconsistentManifest
	Written      []string
	Published    bool
}
