package production

import (
	"time"

	"github.com/comalice/immutablectx/internal/core"
)

// Instruments fans each write out to several core.Instrument sinks.
type Instruments []core.Instrument

func (is Instruments) Applied(start time.Time, err error) {
	for _, i := range is {
		i.Applied(start, err)
	}
}

func (is Instruments) Forced(start time.Time) {
	for _, i := range is {
		i.Forced(start)
	}
}
