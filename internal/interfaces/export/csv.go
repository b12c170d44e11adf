package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerpoints"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	"github.com/valyala/bytebufferpool"
)

const (
	SeasonFileName = "player_stats.csv"
	WeeklyFileName = "player_weekly_stats.csv"
	ContentType    = "text/csv; charset=utf-8"
)

// leadingColumns precede the per-code totals. "Games Played" is an addition
// to the historical layout and sits just before Positions.
var leadingColumns = []string{
	"Player ID",
	"Name",
	"Team",
	"Cost",
	"Total Points",
	"Average Points",
	"Owned By",
	"High Score",
	"Low Score",
	"Games Played",
	"Positions",
}

// Header returns the column order for codes. Weekly files prefix "Week".
func Header(codes []scoring.StatCode, weekly bool) []string {
	out := make([]string, 0, len(leadingColumns)+len(codes)+2)
	if weekly {
		out = append(out, "Week")
	}
	out = append(out, leadingColumns...)
	for _, code := range codes {
		out = append(out, "Total "+string(code)+" Points")
	}
	return append(out, "Total Combined Points")
}

// WriteCSV writes season records in the given order.
func WriteCSV(w io.Writer, records []playerpoints.Record, codes []scoring.StatCode) error {
	return write(w, Header(codes, false), func(cw *csv.Writer) error {
		for _, record := range records {
			if err := cw.Write(row(record, codes)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteWeeklyCSV writes every week in week order, players by id inside a
// week.
func WriteWeeklyCSV(w io.Writer, weekly map[gameweek.Label][]playerpoints.Record, codes []scoring.StatCode) error {
	labels := make([]gameweek.Label, 0, len(weekly))
	for label := range weekly {
		labels = append(labels, label)
	}
	gameweek.SortLabels(labels)

	return write(w, Header(codes, true), func(cw *csv.Writer) error {
		for _, label := range labels {
			records := append([]playerpoints.Record(nil), weekly[label]...)
			sort.SliceStable(records, func(i, j int) bool {
				return records[i].PlayerID < records[j].PlayerID
			})
			for _, record := range records {
				if err := cw.Write(append([]string{string(label)}, row(record, codes)...)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func write(w io.Writer, header []string, rows func(*csv.Writer) error) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	cw := csv.NewWriter(buf)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := rows(cw); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("copy csv: %w", err)
	}
	return nil
}

func row(record playerpoints.Record, codes []scoring.StatCode) []string {
	out := make([]string, 0, len(leadingColumns)+len(codes)+1)
	out = append(out,
		strconv.FormatInt(record.PlayerID, 10),
		record.Name,
		record.TeamName,
		record.FormattedCost(),
		strconv.Itoa(record.Totals.Combined),
		strconv.FormatFloat(record.AveragePoints(), 'f', 2, 64),
		record.FormattedOwnedBy(),
		strconv.Itoa(record.Totals.High),
		strconv.Itoa(record.Totals.Low),
		strconv.Itoa(record.Totals.Games),
		record.PositionLabel(),
	)
	for _, code := range codes {
		out = append(out, strconv.Itoa(record.Totals.Point(code)))
	}
	return append(out, strconv.Itoa(record.Totals.Combined))
}
