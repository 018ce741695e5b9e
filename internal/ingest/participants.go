package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoParticipants    = errors.New("no participant names found")
)

// ParseParticipants reads display names from the first column of the first
// sheet (or of a CSV file), skipping the header row and blank names.
// Verification ids share one time token per upload and are numbered from 1.
func ParseParticipants(filename string, data []byte, prefix string, now time.Time) ([]model.Participant, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(data)
	case ".csv":
		rows, err = readCSV(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	names := firstColumn(rows)
	if len(names) == 0 {
		return nil, ErrNoParticipants
	}

	ids := NewVerificationIDs(prefix, now)
	participants := make([]model.Participant, len(names))
	for i, name := range names {
		participants[i] = model.Participant{
			ID:             uuid.NewString(),
			Name:           name,
			VerificationID: ids.Next(),
		}
	}
	return participants, nil
}

func readWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoParticipants
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func firstColumn(rows [][]string) []string {
	if len(rows) <= 1 {
		return nil
	}
	var names []string
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		if name := strings.TrimSpace(row[0]); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// VerificationIDs yields PREFIX-TOKEN-NNNN ids where TOKEN is the upload
// time in base-36 milliseconds.
type VerificationIDs struct {
	prefix string
	token  string
	seq    int
}

func NewVerificationIDs(prefix string, now time.Time) *VerificationIDs {
	if prefix == "" {
		prefix = model.DefaultIDPrefix
	}
	return &VerificationIDs{
		prefix: prefix,
		token:  strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)),
	}
}

func (v *VerificationIDs) Next() string {
	v.seq++
	return fmt.Sprintf("%s-%s-%04d", v.prefix, v.token, v.seq)
}
