package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/output"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	demoEmployeeFile  = "sample.xlsx"
	demoEmployeeSheet = "社員リスト"
	demoMultiFile     = "multi_sheet_sample.xlsx"

	salaryColumn = 4
	nameColumn   = 1
	deptColumn   = 3
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [dir]",
		Short: "Write, read back and summarize sample workbooks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runDemo(cmd.OutOrStdout(), dir)
		},
	}
}

func runDemo(w io.Writer, dir string) error {
	path := filepath.Join(dir, demoEmployeeFile)

	fmt.Fprintln(w, "Step 1: creating sample data")
	data := sampleEmployees()
	for _, row := range data[1:] {
		fmt.Fprintf(w, "added employee: %s (%s)\n", row[nameColumn], row[deptColumn])
	}

	fmt.Fprintf(w, "Step 2: writing %s\n", path)
	if err := xlgrid.WriteSheet(path, data, demoEmployeeSheet, xlgrid.DefaultWriteOptions()); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	fmt.Fprintf(w, "Step 3: file size %d bytes\n", info.Size())

	fmt.Fprintln(w, "Step 4: reading the file back")
	grid, err := xlgrid.ReadSheet(path, "")
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Step 5: rows")
	if err := output.ToTable(w, grid); err != nil {
		return err
	}

	fmt.Fprintln(w, "Step 6: salary statistics")
	if stats, ok := computeSalaryStats(grid); ok {
		writeSalaryStats(w, stats)
	}

	multiPath := filepath.Join(dir, demoMultiFile)
	fmt.Fprintf(w, "Step 7: writing %s\n", multiPath)
	return xlgrid.WriteSheets(multiPath, sampleDepartmentSheets(), xlgrid.WriteOptions{Verify: true})
}

func sampleEmployees() models.Grid {
	return models.Grid{
		{"社員ID", "名前", "年齢", "部署", "給与", "入社日"},
		{"EMP001", "田中太郎", "30", "開発部", "500000", "2020-04-01"},
		{"EMP002", "佐藤花子", "25", "デザイン部", "400000", "2021-07-15"},
		{"EMP003", "鈴木一郎", "35", "営業部", "600000", "2019-01-10"},
		{"EMP004", "高橋美咲", "28", "人事部", "450000", "2022-03-01"},
		{"EMP005", "山田和夫", "42", "管理部", "700000", "2018-08-20"},
	}
}

func sampleDepartmentSheets() []models.Sheet {
	return []models.Sheet{
		{Name: "部署別売上", Rows: models.Grid{
			{"部署", "Q1売上", "Q2売上", "Q3売上", "Q4売上", "年間合計"},
			{"開発部", "1200", "1350", "1100", "1450", "5100"},
			{"営業部", "2200", "2100", "2300", "2400", "9000"},
			{"デザイン部", "800", "900", "850", "950", "3500"},
			{"人事部", "400", "420", "380", "440", "1640"},
		}},
		{Name: "月別経費", Rows: models.Grid{
			{"月", "人件費", "オフィス費", "システム費", "その他", "合計"},
			{"1月", "3000", "500", "200", "300", "4000"},
			{"2月", "3100", "500", "250", "280", "4130"},
			{"3月", "3050", "520", "200", "350", "4120"},
		}},
	}
}

type salaryEntry struct {
	Name   string
	Dept   string
	Salary int64
}

type salaryStats struct {
	Entries []salaryEntry
	Total   int64
	Max     int64
	Min     int64
	Highest string
}

func (s salaryStats) Average() float64 {
	return float64(s.Total) / float64(len(s.Entries))
}

// computeSalaryStats summarizes the salary column of the rows below the
// header. Rows without a numeric salary are skipped; ok is false when none
// remain.
func computeSalaryStats(grid models.Grid) (stats salaryStats, ok bool) {
	if len(grid) <= 1 {
		return stats, false
	}

	stats.Min = math.MaxInt64
	for _, row := range grid[1:] {
		if len(row) <= salaryColumn {
			continue
		}
		salary, err := strconv.ParseInt(row[salaryColumn], 10, 64)
		if err != nil {
			continue
		}

		entry := salaryEntry{Salary: salary}
		if len(row) > nameColumn {
			entry.Name = row[nameColumn]
		}
		if len(row) > deptColumn {
			entry.Dept = row[deptColumn]
		}
		stats.Entries = append(stats.Entries, entry)
		stats.Total += salary
		if salary > stats.Max {
			stats.Max = salary
			stats.Highest = entry.Name
		}
		if salary < stats.Min {
			stats.Min = salary
		}
	}

	if len(stats.Entries) == 0 {
		return salaryStats{}, false
	}
	return stats, true
}

func writeSalaryStats(w io.Writer, stats salaryStats) {
	p := message.NewPrinter(language.Japanese)
	for _, e := range stats.Entries {
		p.Fprintf(w, "%s(%s): %d円\n", e.Name, e.Dept, e.Salary)
	}
	p.Fprintf(w, "employees: %d\n", len(stats.Entries))
	p.Fprintf(w, "total: %d円\n", stats.Total)
	p.Fprintf(w, "average: %d円\n", int64(math.Round(stats.Average())))
	p.Fprintf(w, "highest: %d円 (%s)\n", stats.Max, stats.Highest)
	p.Fprintf(w, "lowest: %d円\n", stats.Min)
}
