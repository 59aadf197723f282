// Package backup dumps the configured MySQL databases, compresses the dumps
// and stores them in the backups bucket under tiered retention paths.
package backup

import "errors"

var (
	// ErrNilStore indicates that a nil object store was provided.
	ErrNilStore = errors.New("store cannot be nil")

	// ErrNilSettings indicates that nil settings were provided.
	ErrNilSettings = errors.New("settings cannot be nil")

	// ErrNoDatabases is returned when the settings define no databases.
	ErrNoDatabases = errors.New("no databases configured")

	// ErrUnsupportedEngine is returned for a database URL whose scheme is not
	// mysql. Only MySQL is supported at the moment.
	ErrUnsupportedEngine = errors.New("only MySQL is supported at the moment")

	// ErrIncompleteConnection is returned when a database URL is missing the
	// user, password, host or database name.
	ErrIncompleteConnection = errors.New("connection is missing required fields")
)
