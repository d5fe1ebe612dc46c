package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"
)

// Header aliases accepted on import, matched case-sensitively. Export always
// writes the first alias of each column.
var (
	stdHeaderAliases  = []string{"Mã sinh viên", "std", "MSV"}
	nameHeaderAliases = []string{"Họ tên", "full_name", "name"}
)

// RosterService converts between the two-column spreadsheet schema and
// candidate labels.
type RosterService struct {
	candidateRepo repository.CandidateRepository
	contestRepo   repository.ContestRepository
}

func NewRosterService(candidateRepo repository.CandidateRepository, contestRepo repository.ContestRepository) *RosterService {
	return &RosterService{candidateRepo: candidateRepo, contestRepo: contestRepo}
}

// RowError reports one roster line that could not be imported. Line numbers
// are 1-based and count the header row.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Imported []model.CandidateLabel `json:"imported"`
	Skipped  []RowError             `json:"skipped,omitempty"`
}

// ParseRoster decodes CSV rows into roster entries. Rows whose student id
// fails integer parsing are reported, not imported.
func ParseRoster(r io.Reader) ([]model.CandidateLabel, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, common.Errorf("roster file is empty: %w", common.ErrValidation)
		}
		return nil, nil, common.Errorf("failed to read roster header: %w", common.ErrValidation)
	}

	stdCol := findColumn(header, stdHeaderAliases)
	nameCol := findColumn(header, nameHeaderAliases)
	if stdCol < 0 || nameCol < 0 {
		return nil, nil, common.Errorf(
			"roster header must contain a student id column (%s) and a name column (%s): %w",
			strings.Join(stdHeaderAliases, "/"), strings.Join(nameHeaderAliases, "/"),
			common.ErrValidation,
		)
	}

	var labels []model.CandidateLabel
	var skipped []RowError
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			skipped = append(skipped, RowError{Line: line, Reason: err.Error()})
			continue
		}
		if stdCol >= len(record) || nameCol >= len(record) {
			skipped = append(skipped, RowError{Line: line, Reason: "missing columns"})
			continue
		}

		std, err := strconv.ParseInt(strings.TrimSpace(record[stdCol]), 10, 64)
		if err != nil {
			skipped = append(skipped, RowError{
				Line:   line,
				Reason: fmt.Sprintf("student id %q is not an integer", record[stdCol]),
			})
			continue
		}
		name := strings.TrimSpace(record[nameCol])
		if name == "" {
			skipped = append(skipped, RowError{Line: line, Reason: "empty full name"})
			continue
		}
		labels = append(labels, model.CandidateLabel{Std: std, FullName: name})
	}
	return labels, skipped, nil
}

func findColumn(header []string, aliases []string) int {
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, alias := range aliases {
			if h == alias {
				return i
			}
		}
	}
	return -1
}

// WriteRoster encodes labels to the export schema: exactly the canonical
// two headers, one row per candidate.
func WriteRoster(w io.Writer, labels []model.CandidateLabel) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{stdHeaderAliases[0], nameHeaderAliases[0]}); err != nil {
		return fmt.Errorf("write roster header: %w", err)
	}
	for _, l := range labels {
		if err := writer.Write([]string{strconv.FormatInt(l.Std, 10), l.FullName}); err != nil {
			return fmt.Errorf("write roster row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (s *RosterService) Import(ctx context.Context, contestID int64, r io.Reader) (*ImportResult, error) {
	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		return nil, err
	}

	labels, skipped, err := ParseRoster(r)
	if err != nil {
		return nil, err
	}
	for i := range labels {
		labels[i].ContestID = contestID
	}

	imported, err := s.candidateRepo.BulkAdd(ctx, labels)
	if err != nil {
		return nil, common.Errorf("failed to store roster: %w", err)
	}
	return &ImportResult{Imported: imported, Skipped: skipped}, nil
}

func (s *RosterService) Export(ctx context.Context, contestID int64, w io.Writer) error {
	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		return err
	}
	labels, err := s.candidateRepo.ListByContest(ctx, contestID)
	if err != nil {
		return err
	}
	return WriteRoster(w, labels)
}

func (s *RosterService) ListCandidates(ctx context.Context, contestID int64) ([]model.CandidateLabel, error) {
	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		return nil, err
	}
	return s.candidateRepo.ListByContest(ctx, contestID)
}

func (s *RosterService) AddCandidate(ctx context.Context, contestID int64, label *model.CandidateLabel) (*model.CandidateLabel, error) {
	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		return nil, err
	}
	if label.Std <= 0 {
		return nil, common.Errorf("student id must be a positive integer: %w", common.ErrValidation)
	}
	if strings.TrimSpace(label.FullName) == "" {
		return nil, common.Errorf("full name is required: %w", common.ErrValidation)
	}
	label.ContestID = contestID
	label.FullName = strings.TrimSpace(label.FullName)
	if err := s.candidateRepo.Add(ctx, label); err != nil {
		return nil, common.Errorf("failed to add candidate: %w", err)
	}
	return label, nil
}

func (s *RosterService) RemoveCandidate(ctx context.Context, id int64) error {
	return s.candidateRepo.Remove(ctx, id)
}
