package cli

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/rustyeddy/tradesim/config"
	"github.com/rustyeddy/tradesim/journal"
)

// openJournal is replaced in tests.
var openJournal = journal.Open

// withJournal opens the configured journal, runs fn and closes the journal
// once. A close error is reported alongside any error from fn.
func withJournal(cfg config.JournalConfig, fn func(journal.Journal) error) (err error) {
	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := j.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("close journal: %w", cerr))
		}
	}()

	return fn(j)
}
