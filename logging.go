package pgfrag

import (
	"sync"

	"github.com/skillian/logging"
)

// rawLogger is the package's logger, named after the package the same way
// skillian-sqlstream names its own logger after itself
// (logging.GetLogger("github.com/skillian/sqlstream")).
var rawLogger = logging.GetLogger("github.com/halvorsen/pgfrag")

var warnRawOnce sync.Once

// warnRawUsage emits a single, one-time-per-process warning the first time
// Raw is called. Raw is the package's one deliberately dangerous escape
// hatch — every other constructor builds its fixed text through the
// unlogged mustRaw instead, so Raw is the sole place an accidental,
// unescaped, caller-assembled string can enter a fragment tree.
func warnRawUsage() {
	warnRawOnce.Do(func() {
		rawLogger.Warn1(
			"pgfrag.Raw called for the first time in this process; "+
				"Raw emits %s verbatim and bypasses all escaping — prefer "+
				"Identifier, Value, or Literal wherever possible",
			"its argument",
		)
	})
}
