package report

import (
	"encoding/csv"
	"io"

	"github.com/jeffrom/logit/model"
)

type CSV struct{}

func (CSV) WriteEntries(w io.Writer, f *Formatter, entries []*model.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Header()); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write(f.Row(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
