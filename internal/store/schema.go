package store

// schemaSQL creates the lookup table. One row per cached fact; the
// discriminator records the context (branch, directory) the value was
// fetched for so a slot invalidates when that context changes.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS lookups (
	slot          TEXT PRIMARY KEY,
	discriminator TEXT NOT NULL,
	value         TEXT NOT NULL,
	recorded_at   INTEGER NOT NULL
);
`

// Well-known slot names.
const (
	SlotGitInfo  = "git_info"
	SlotPRURL    = "pr_url"
	SlotPRChecks = "pr_checks"
)
