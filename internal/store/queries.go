package store

// SQL query constants. All SQL lives here — PostgresStore methods reference
// these constants.

// Credential queries. The table holds at most one row, enforced by the
// CHECK constraint on id; writes are upserts against that fixed id.
const (
	queryUpsertCredentials = `
		INSERT INTO discogs_credentials (id, access_token, access_secret, last_updated)
		VALUES (1, @access_token, @access_secret, now())
		ON CONFLICT (id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			access_secret = EXCLUDED.access_secret,
			last_updated = now()
		RETURNING last_updated`

	queryGetCredentials = `
		SELECT access_token, access_secret, last_updated
		FROM discogs_credentials
		WHERE id = 1`
)
