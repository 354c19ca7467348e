package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jeffrom/logit/config"
	"github.com/jeffrom/logit/model"
)

// Formatter renders entries into report rows.
type Formatter struct {
	Columns        []string
	DurationFormat string
	DateFormat     string
	// Location converts dates before formatting. Nil keeps each commit's
	// own offset.
	Location *time.Location
}

func NewFormatter(cfg config.Config) (*Formatter, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &Formatter{
		Columns:        cfg.Columns,
		DurationFormat: cfg.DurationFormat,
		DateFormat:     cfg.DateFormat,
		Location:       loc,
	}, nil
}

// Header returns the header row.
func (f *Formatter) Header() []string {
	header := make([]string, len(f.Columns))
	copy(header, f.Columns)
	return header
}

// Values returns an entry's cells. Numeric duration formats are returned as
// numbers so spreadsheets can sum them.
func (f *Formatter) Values(e *model.Entry) []interface{} {
	date := e.Date
	if f.Location != nil {
		date = date.In(f.Location)
	}

	vals := make([]interface{}, len(f.Columns))
	for i, col := range f.Columns {
		switch col {
		case "date":
			vals[i] = date.Format(f.dateFormat())
		case "time":
			vals[i] = date.Format("15:04:05")
		case "title":
			vals[i] = e.Title
		case "duration":
			vals[i] = f.duration(e.Duration)
		case "author":
			vals[i] = e.Author
		case "repo":
			vals[i] = e.Repo
		case "commit":
			vals[i] = e.CommitID
		default:
			vals[i] = ""
		}
	}
	return vals
}

// Row returns an entry's cells as strings.
func (f *Formatter) Row(e *model.Entry) []string {
	vals := f.Values(e)
	row := make([]string, len(vals))
	for i, v := range vals {
		switch val := v.(type) {
		case string:
			row[i] = val
		case int64:
			row[i] = strconv.FormatInt(val, 10)
		case float64:
			row[i] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			row[i] = fmt.Sprint(val)
		}
	}
	return row
}

func (f *Formatter) dateFormat() string {
	if f.DateFormat == "" {
		return "2006-01-02"
	}
	return f.DateFormat
}

func (f *Formatter) duration(d time.Duration) interface{} {
	switch f.DurationFormat {
	case "seconds":
		return int64(d / time.Second)
	case "minutes":
		return round2(d.Minutes())
	case "hours":
		return round2(d.Hours())
	default:
		return FormatClock(d)
	}
}

// FormatClock formats d as H:MM:SS.
func FormatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
