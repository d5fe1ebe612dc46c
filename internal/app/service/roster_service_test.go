package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
)

type memContestRepo struct {
	contests map[int64]*model.Contest
}

func newMemContestRepo(contests ...*model.Contest) *memContestRepo {
	repo := &memContestRepo{contests: make(map[int64]*model.Contest)}
	for _, c := range contests {
		repo.contests[c.ID] = c
	}
	return repo
}

func (r *memContestRepo) Create(_ context.Context, contest *model.Contest) error {
	contest.ID = int64(len(r.contests) + 1)
	copied := *contest
	r.contests[contest.ID] = &copied
	return nil
}

func (r *memContestRepo) Update(_ context.Context, contest *model.Contest) error {
	if _, ok := r.contests[contest.ID]; !ok {
		return common.ErrNotFound
	}
	copied := *contest
	r.contests[contest.ID] = &copied
	return nil
}

func (r *memContestRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.contests[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.contests, id)
	return nil
}

func (r *memContestRepo) FindByID(_ context.Context, id int64) (*model.Contest, error) {
	contest, ok := r.contests[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *contest
	return &copied, nil
}

func (r *memContestRepo) FindBySlug(_ context.Context, slug string) (*model.Contest, error) {
	for _, c := range r.contests {
		if c.Slug == slug {
			copied := *c
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memContestRepo) List(_ context.Context, _, _ int, _ string) ([]model.Contest, int, error) {
	var out []model.Contest
	for _, c := range r.contests {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (r *memContestRepo) CountOngoing(_ context.Context, now time.Time) (int, error) {
	n := 0
	for _, c := range r.contests {
		if c.StatusAt(now) == model.ContestOngoing {
			n++
		}
	}
	return n, nil
}

type memCandidateRepo struct {
	labels map[int64]*model.CandidateLabel
	nextID int64
}

func newMemCandidateRepo() *memCandidateRepo {
	return &memCandidateRepo{labels: make(map[int64]*model.CandidateLabel), nextID: 1}
}

func (r *memCandidateRepo) ListByContest(_ context.Context, contestID int64) ([]model.CandidateLabel, error) {
	var out []model.CandidateLabel
	for id := int64(1); id < r.nextID; id++ {
		if l, ok := r.labels[id]; ok && l.ContestID == contestID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *memCandidateRepo) Add(_ context.Context, label *model.CandidateLabel) error {
	label.ID = r.nextID
	r.nextID++
	copied := *label
	r.labels[label.ID] = &copied
	return nil
}

func (r *memCandidateRepo) BulkAdd(ctx context.Context, labels []model.CandidateLabel) ([]model.CandidateLabel, error) {
	out := make([]model.CandidateLabel, 0, len(labels))
	for _, l := range labels {
		if err := r.Add(ctx, &l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *memCandidateRepo) Remove(_ context.Context, id int64) error {
	if _, ok := r.labels[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.labels, id)
	return nil
}

func TestParseRosterVietnameseHeaders(t *testing.T) {
	input := "Mã sinh viên,Họ tên\n21020001,Nguyễn Văn An\n21020002,Trần Thị Bình\n"

	labels, skipped, err := ParseRoster(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRoster() error = %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("skipped = %v, want none", skipped)
	}
	if len(labels) != 2 {
		t.Fatalf("labels = %d, want 2", len(labels))
	}
	if labels[0].Std != 21020001 || labels[0].FullName != "Nguyễn Văn An" {
		t.Errorf("first label = %+v", labels[0])
	}
	if labels[1].Std != 21020002 || labels[1].FullName != "Trần Thị Bình" {
		t.Errorf("second label = %+v", labels[1])
	}
}

func TestParseRosterHeaderAliases(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"short aliases", "std,name\n100,Alice\n"},
		{"msv and full_name", "MSV,full_name\n100,Alice\n"},
		{"extra columns", "email,std,full_name\na@b.c,100,Alice\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			labels, _, err := ParseRoster(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("ParseRoster() error = %v", err)
			}
			if len(labels) != 1 || labels[0].Std != 100 || labels[0].FullName != "Alice" {
				t.Fatalf("labels = %+v", labels)
			}
		})
	}
}

func TestParseRosterHeadersAreCaseSensitive(t *testing.T) {
	_, _, err := ParseRoster(strings.NewReader("STD,NAME\n100,Alice\n"))
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("ParseRoster() error = %v, want ErrValidation", err)
	}
}

func TestParseRosterSkipsBadRows(t *testing.T) {
	input := "std,name\nnot-a-number,Alice\n101,Bob\n102,\n"

	labels, skipped, err := ParseRoster(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRoster() error = %v", err)
	}
	if len(labels) != 1 || labels[0].Std != 101 {
		t.Fatalf("labels = %+v, want only Bob", labels)
	}
	if len(skipped) != 2 {
		t.Fatalf("skipped = %+v, want 2 rows", skipped)
	}
	if skipped[0].Line != 2 || skipped[1].Line != 4 {
		t.Errorf("skipped lines = %d, %d, want 2 and 4", skipped[0].Line, skipped[1].Line)
	}
}

func TestParseRosterEmptyFile(t *testing.T) {
	_, _, err := ParseRoster(strings.NewReader(""))
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("ParseRoster() error = %v, want ErrValidation", err)
	}
}

func TestWriteRosterRoundTrip(t *testing.T) {
	in := []model.CandidateLabel{
		{Std: 21020001, FullName: "Nguyễn Văn An"},
		{Std: 21020002, FullName: "Trần Thị Bình"},
	}

	var buf bytes.Buffer
	if err := WriteRoster(&buf, in); err != nil {
		t.Fatalf("WriteRoster() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Mã sinh viên,Họ tên\n") {
		t.Fatalf("export header = %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	out, skipped, err := ParseRoster(&buf)
	if err != nil {
		t.Fatalf("ParseRoster() error = %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("skipped = %v", skipped)
	}
	if len(out) != len(in) {
		t.Fatalf("round trip lost rows: %d != %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Std != in[i].Std || out[i].FullName != in[i].FullName {
			t.Errorf("row %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestImportAssignsContestAndIDs(t *testing.T) {
	contests := newMemContestRepo(&model.Contest{ID: 3, Name: "Midterm"})
	candidates := newMemCandidateRepo()
	s := NewRosterService(candidates, contests)

	result, err := s.Import(context.Background(), 3, strings.NewReader("std,name\n100,Alice\n101,Bob\n"))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(result.Imported) != 2 {
		t.Fatalf("imported = %d, want 2", len(result.Imported))
	}
	for i, l := range result.Imported {
		if l.ContestID != 3 {
			t.Errorf("row %d contest_id = %d, want 3", i, l.ContestID)
		}
		if l.ID != int64(i+1) {
			t.Errorf("row %d id = %d, want %d", i, l.ID, i+1)
		}
	}
}

func TestImportUnknownContest(t *testing.T) {
	s := NewRosterService(newMemCandidateRepo(), newMemContestRepo())

	if _, err := s.Import(context.Background(), 9, strings.NewReader("std,name\n100,Alice\n")); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("Import() error = %v, want ErrNotFound", err)
	}
}

func TestAddCandidateValidation(t *testing.T) {
	contests := newMemContestRepo(&model.Contest{ID: 3})
	s := NewRosterService(newMemCandidateRepo(), contests)

	if _, err := s.AddCandidate(context.Background(), 3, &model.CandidateLabel{Std: 0, FullName: "Alice"}); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("zero std error = %v, want ErrValidation", err)
	}
	if _, err := s.AddCandidate(context.Background(), 3, &model.CandidateLabel{Std: 100, FullName: "  "}); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("blank name error = %v, want ErrValidation", err)
	}

	label, err := s.AddCandidate(context.Background(), 3, &model.CandidateLabel{Std: 100, FullName: " Alice "})
	if err != nil {
		t.Fatalf("AddCandidate() error = %v", err)
	}
	if label.FullName != "Alice" {
		t.Errorf("full name = %q, want trimmed", label.FullName)
	}
	if label.ContestID != 3 {
		t.Errorf("contest_id = %d, want 3", label.ContestID)
	}
}
