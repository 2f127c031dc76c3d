package logging

import (
	"os"
	"time"

	"github.com/lestrrat-go/strftime"
)

// OpenDailyFile opens (creating if needed) a log file whose name is
// pattern with strftime verbs expanded against t, the teacher's
// "g_daily_names" convention (src/log.go) for rolling a fresh file
// each day without an external log-rotation tool. A typical pattern is
// "trace-%Y%m%d.log".
func OpenDailyFile(pattern string, t time.Time) (*os.File, error) {
	f, err := strftime.New(pattern)
	if err != nil {
		return nil, err
	}
	name, err := f.FormatString(t)
	if err != nil {
		return nil, err
	}
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// UseDailyFile opens today's daily log file per pattern and redirects
// every named logger to it via SetOutput.
func UseDailyFile(pattern string, t time.Time) (*os.File, error) {
	f, err := OpenDailyFile(pattern, t)
	if err != nil {
		return nil, err
	}
	SetOutput(f)
	return f, nil
}
