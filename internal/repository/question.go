package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

var (
	ErrMalformedSchema   = errors.New("malformed question table schema")
	ErrUnsupportedFormat = errors.New("unsupported question file format")
	errSkipRow           = errors.New("row skipped")
)

const (
	colQuestion      = "question"
	colOption1       = "option1"
	colOption2       = "option2"
	colOption3       = "option3"
	colOption4       = "option4"
	colCorrectOption = "correct_option"
)

var requiredColumns = []string{
	colQuestion, colOption1, colOption2, colOption3, colOption4, colCorrectOption,
}

// SkippedRow describes a data row excluded from the bank.
type SkippedRow struct {
	Row    int // 1-based row number in the source, header included
	Reason string
}

// LoadResult is the outcome of parsing a question table.
type LoadResult struct {
	Questions []entities.Question
	Skipped   []SkippedRow
}

// LoadQuestions reads questions from an .xlsx or .csv file.
// Rows with missing cells or a bad correct_option are skipped, not rejected.
func LoadQuestions(path string) (*LoadResult, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(path)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return ParseRows(rows)
}

// LoadQuestionBank loads questions from path and builds the shared bank,
// shuffling it once when shuffle is set.
func LoadQuestionBank(path string, shuffle bool, rng *rand.Rand) (*entities.QuestionBank, *LoadResult, error) {
	res, err := LoadQuestions(path)
	if err != nil {
		return nil, nil, err
	}

	questions := res.Questions
	if shuffle {
		questions = make([]entities.Question, len(res.Questions))
		copy(questions, res.Questions)
		rng.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	bank, err := entities.NewQuestionBank(questions)
	if err != nil {
		return nil, res, fmt.Errorf("load %s: %w", path, err)
	}

	return bank, res, nil
}

// ParseRows converts a header row followed by data rows into questions.
func ParseRows(rows [][]string) (*LoadResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrMalformedSchema)
	}

	headers := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := headers[name]; !ok {
			headers[name] = i
		}
	}

	for _, col := range requiredColumns {
		if _, ok := headers[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedSchema, col)
		}
	}

	res := &LoadResult{}
	for i, row := range rows[1:] {
		q, err := parseRow(row, headers)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedRow{Row: i + 2, Reason: err.Error()})
			continue
		}
		res.Questions = append(res.Questions, q)
	}

	return res, nil
}

func parseRow(row []string, headers map[string]int) (entities.Question, error) {
	if isBlankRow(row) {
		return entities.Question{}, fmt.Errorf("%w: empty", errSkipRow)
	}

	cell := func(col string) string {
		idx := headers[col]
		if idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	text := cell(colQuestion)
	options := [entities.OptionsCount]string{
		cell(colOption1), cell(colOption2), cell(colOption3), cell(colOption4),
	}

	if isBlank(text) {
		return entities.Question{}, fmt.Errorf("%w: empty question", errSkipRow)
	}
	for i, opt := range options {
		if isBlank(opt) {
			return entities.Question{}, fmt.Errorf("%w: empty option%d", errSkipRow, i+1)
		}
	}

	correct, err := parseCorrectOption(cell(colCorrectOption))
	if err != nil {
		return entities.Question{}, err
	}

	return entities.NewQuestion(text, options, correct-1)
}

// parseCorrectOption accepts "2" as well as integral floats such as "2.0",
// which is how spreadsheets often store numbers.
func parseCorrectOption(raw string) (int, error) {
	raw = strings.TrimSpace(raw)

	n, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("%w: correct_option %q is not an integer", errSkipRow, raw)
		}
		n = int(f)
	}

	if n < 1 || n > entities.OptionsCount {
		return 0, fmt.Errorf("%w: correct_option %d out of range", errSkipRow, n)
	}

	return n, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if !isBlank(c) {
			return false
		}
	}
	return true
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}

	return rows, nil
}
