package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"
)

type memRoomRepo struct {
	rooms  map[int64]*model.Room
	nextID int64
}

func newMemRoomRepo(rooms ...*model.Room) *memRoomRepo {
	repo := &memRoomRepo{rooms: make(map[int64]*model.Room), nextID: 1}
	for _, r := range rooms {
		repo.rooms[r.ID] = r
		if r.ID >= repo.nextID {
			repo.nextID = r.ID + 1
		}
	}
	return repo
}

func (r *memRoomRepo) Create(_ context.Context, room *model.Room) error {
	room.ID = r.nextID
	r.nextID++
	copied := *room
	r.rooms[room.ID] = &copied
	return nil
}

func (r *memRoomRepo) Update(_ context.Context, room *model.Room) error {
	if _, ok := r.rooms[room.ID]; !ok {
		return common.ErrNotFound
	}
	copied := *room
	r.rooms[room.ID] = &copied
	return nil
}

func (r *memRoomRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rooms[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.rooms, id)
	return nil
}

func (r *memRoomRepo) FindByID(_ context.Context, id int64) (*model.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *room
	return &copied, nil
}

func (r *memRoomRepo) List(_ context.Context, contestID int64) ([]model.Room, error) {
	var out []model.Room
	for _, room := range r.rooms {
		if room.ContestID == contestID {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (r *memRoomRepo) CountAll(_ context.Context) (int, error) {
	return len(r.rooms), nil
}

func newContestService(contestRepo repository.ContestRepository, roomRepo repository.RoomRepository, now time.Time) *ContestService {
	s := NewContestService(contestRepo, roomRepo)
	s.clock = func() time.Time { return now }
	return s
}

func TestCreateContestSlugsName(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s := newContestService(newMemContestRepo(), newMemRoomRepo(), now)

	contest, err := s.CreateContest(context.Background(), 7, ContestRequest{
		Name:      "  Kỳ thi Giữa Kỳ 2025  ",
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(3 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateContest() error = %v", err)
	}
	if contest.Slug != "ky-thi-giua-ky-2025" {
		t.Fatalf("slug = %q", contest.Slug)
	}
	if contest.Name != "Kỳ thi Giữa Kỳ 2025" {
		t.Fatalf("name = %q, want trimmed", contest.Name)
	}
	if contest.CreatedByID == nil || *contest.CreatedByID != 7 {
		t.Fatalf("created_by = %v, want 7", contest.CreatedByID)
	}
}

func TestContestStatusIsDerived(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	contest := &model.Contest{ID: 1, Name: "Final", Slug: "final", StartTime: start, EndTime: end}

	cases := []struct {
		name string
		now  time.Time
		want model.ContestStatus
	}{
		{"before window", start.Add(-time.Minute), model.ContestUpcoming},
		{"at start", start, model.ContestOngoing},
		{"inside window", start.Add(time.Hour), model.ContestOngoing},
		{"at end", end, model.ContestOngoing},
		{"after window", end.Add(time.Minute), model.ContestEnded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newContestService(newMemContestRepo(contest), newMemRoomRepo(), tc.now)
			got, err := s.GetContest(context.Background(), 1)
			if err != nil {
				t.Fatalf("GetContest() error = %v", err)
			}
			if got.Status != tc.want {
				t.Fatalf("status at %v = %s, want %s", tc.now, got.Status, tc.want)
			}
		})
	}
}

func TestCreateContestValidation(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s := newContestService(newMemContestRepo(), newMemRoomRepo(), now)

	cases := []struct {
		name string
		req  ContestRequest
	}{
		{"empty name", ContestRequest{StartTime: now, EndTime: now.Add(time.Hour)}},
		{"inverted window", ContestRequest{Name: "X", StartTime: now.Add(time.Hour), EndTime: now}},
		{"zero-length window", ContestRequest{Name: "X", StartTime: now, EndTime: now}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.CreateContest(context.Background(), 7, tc.req); !errors.Is(err, common.ErrValidation) {
				t.Fatalf("CreateContest() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestGetContestBySlug(t *testing.T) {
	now := time.Now()
	contest := &model.Contest{ID: 2, Name: "Final", Slug: "final", StartTime: now, EndTime: now.Add(time.Hour)}
	s := newContestService(newMemContestRepo(contest), newMemRoomRepo(), now)

	got, err := s.GetContestBySlug(context.Background(), "final")
	if err != nil {
		t.Fatalf("GetContestBySlug() error = %v", err)
	}
	if got.ID != 2 {
		t.Fatalf("id = %d, want 2", got.ID)
	}

	if _, err := s.GetContestBySlug(context.Background(), "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("missing slug error = %v, want ErrNotFound", err)
	}
}

func TestContestRoomsUnknownContest(t *testing.T) {
	s := newContestService(newMemContestRepo(), newMemRoomRepo(), time.Now())

	if _, err := s.ContestRooms(context.Background(), 5); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("ContestRooms() error = %v, want ErrNotFound", err)
	}
}
