package oplogo

import (
	"log"
	"runtime"

	"github.com/bodgit/oplogo/plmn"
)

// Library imports images into a LogoDB.
type Library struct {
	db      *LogoDB
	logger  *log.Logger
	network plmn.ID
	workers int
}

// NewLibrary returns a Library saving to db. Imported logos are assigned
// network. If workers is less than one, one worker per CPU is used.
func NewLibrary(db *LogoDB, logger *log.Logger, network plmn.ID, workers int) *Library {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Library{
		db:      db,
		logger:  logger,
		network: network,
		workers: workers,
	}
}
