package wordleexport

import (
	"fmt"
	"io"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the monthly workbook.
const (
	StandingsSheet = "Standings"
	ResultsSheet   = "Results"
)

var (
	standingsHeader = []any{"Rank", "Player", "Points"}
	resultsHeader   = []any{"Puzzle", "Date", "Player", "Score", "Max Tries", "Result"}
)

// WriteMonth writes a workbook with the month's standings and every result behind them.
func WriteMonth(w io.Writer, board wordledomain.MonthlyBoard, results []wordledomain.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), StandingsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ResultsSheet); err != nil {
		return fmt.Errorf("create results sheet: %w", err)
	}

	standings := make([][]any, 0, len(board.Standings)+2)
	standings = append(standings, []any{board.Title()}, standingsHeader)
	for _, s := range board.Standings {
		standings = append(standings, []any{s.Rank, s.Player, s.Points})
	}
	if err := writeRows(f, StandingsSheet, standings); err != nil {
		return err
	}

	rows := make([][]any, 0, len(results)+1)
	rows = append(rows, resultsHeader)
	for _, r := range results {
		rows = append(rows, []any{r.Puzzle, r.DateString(), r.Player, r.Score, r.MaxTries, r.FormatScore()})
	}
	if err := writeRows(f, ResultsSheet, rows); err != nil {
		return err
	}

	if err := f.SetColWidth(StandingsSheet, "B", "B", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(ResultsSheet, "B", "C", 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
