package runner

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeffrom/logit/report"
)

// topN is how many rows per bucket TextSummary prints unless asked for all.
const topN = 10

type Stats struct {
	Commits int64
	Entries int64
	Repos   int64
	Skipped int64
	Total   time.Duration
	Last    time.Time
	Counts  map[string][]*statCount
}

func (s *Stats) Add(bucket, name string, d time.Duration) {
	counts := s.Counts[bucket]
	count, found := s.findCount(name, counts)
	if !found {
		counts = append(counts, count)
	}
	count.Add(d)

	s.Counts[bucket] = counts
}

func (s *Stats) findCount(name string, counts []*statCount) (*statCount, bool) {
	for _, c := range counts {
		if c.label == name {
			return c, true
		}
	}
	return &statCount{label: name}, false
}

func (s *Stats) sortedBuckets() []string {
	buckets := make([]string, len(s.Counts))
	i := 0
	for name := range s.Counts {
		buckets[i] = name
		i++
	}
	sort.Strings(buckets)
	return buckets
}

type statCount struct {
	label string
	n     int64
	d     time.Duration
}

func (c *statCount) Add(d time.Duration) {
	c.n++
	c.d += d
}

func (s *Stats) TextSummary(w io.Writer, all bool) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(fmt.Sprintf("%s entries from %s commits in %s repositories",
		humanize.Comma(s.Entries), humanize.Comma(s.Commits), humanize.Comma(s.Repos)))
	if s.Skipped > 0 {
		bw.WriteString(fmt.Sprintf(" (%d skipped)", s.Skipped))
	}
	bw.WriteString("\n")
	bw.WriteString(fmt.Sprintf("Total: %s\n", report.FormatClock(s.Total)))
	if !s.Last.IsZero() {
		bw.WriteString(fmt.Sprintf("Last commit: %s\n", humanize.Time(s.Last)))
	}
	bw.WriteString("\n")

	buckets := s.sortedBuckets()
	for _, name := range buckets {
		counts := s.Counts[name]
		sort.SliceStable(counts, func(i, j int) bool {
			if counts[i].d != counts[j].d {
				return counts[i].d > counts[j].d
			}
			return counts[i].label < counts[j].label
		})
		bw.WriteString(fmt.Sprintf("%s:\n", toTitle(name)))
		for i, count := range counts {
			if !all && i >= topN {
				bw.WriteString(fmt.Sprintf("  ... %d more\n", len(counts)-topN))
				break
			}
			label := count.label
			if label == "" {
				label = "n/a"
			}
			bw.WriteString(fmt.Sprintf("  %20s\t%10s\t%d\n", label, report.FormatClock(count.d), count.n))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Stats totals a run's entries per date and per repository.
func (r *Runner) Stats(res *Result) *Stats {
	stats := &Stats{
		Commits: int64(res.Commits),
		Entries: int64(len(res.Entries)),
		Repos:   int64(res.Repos),
		Skipped: int64(res.SkippedCount()),
		Counts:  make(map[string][]*statCount),
	}

	for _, e := range res.Entries {
		stats.Total += e.Duration
		if e.Date.After(stats.Last) {
			stats.Last = e.Date
		}
		date := e.Date
		if r.loc != nil {
			date = date.In(r.loc)
		}
		stats.Add("date", date.Format("2006-01-02"), e.Duration)
		stats.Add("repository", e.Repo, e.Duration)
	}
	return stats
}

var nonAlphaRE = regexp.MustCompile(`[^A-Za-z]`)

var titleCaser = cases.Title(language.English)

func toTitle(s string) string {
	s = nonAlphaRE.ReplaceAllLiteralString(s, " ")
	return titleCaser.String(s)
}
