package output

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/chessctl-dev/chessctl/internal/cli/transport"
)

// ErrorStatus is printed in place of an HTTP status for transport failures
const ErrorStatus = "Error"

// Printer is the display sink: it renders every API outcome as a status line
// followed by the formatted body. It never fails; formatting problems are logged.
type Printer struct {
	mu        sync.Mutex
	w         io.Writer
	formatter Formatter
	logger    zerolog.Logger
}

// NewPrinter creates a Printer writing to w
func NewPrinter(w io.Writer, formatter Formatter, logger zerolog.Logger) *Printer {
	if formatter == nil {
		formatter = &JSONFormatter{}
	}
	return &Printer{w: w, formatter: formatter, logger: logger}
}

// Observe implements transport.Observer
func (p *Printer) Observe(_ transport.Request, res transport.Result) {
	var (
		status string
		data   any
	)
	if res.Failed() {
		status = ErrorStatus
		data = map[string]string{"error": res.Message()}
	} else {
		status = strconv.Itoa(res.Status)
		data = res.Data
	}
	p.Display(data, status)
}

// Display renders data under a status line
func (p *Printer) Display(data any, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := fmt.Fprintf(p.w, "Status: %s\n", status); err != nil {
		p.logger.Warn().Err(err).Msg("Failed to write response")
		return
	}
	if err := p.formatter.Format(p.w, data); err != nil {
		p.logger.Warn().Err(err).Msg("Failed to format response")
	}
}
