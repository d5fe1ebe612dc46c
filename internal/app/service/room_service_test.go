package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
)

func validRoom() *model.Room {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	return &model.Room{
		AccessCode:            "ROOM-A1",
		RegistrationStartTime: base,
		RegistrationEndTime:   base.Add(time.Hour),
		ExamStartTime:         base.Add(time.Hour),
		ExamEndTime:           base.Add(3 * time.Hour),
		Capacity:              30,
	}
}

func TestValidateRoom(t *testing.T) {
	if err := ValidateRoom(validRoom()); err != nil {
		t.Fatalf("ValidateRoom() error = %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*model.Room)
	}{
		{"blank access code", func(r *model.Room) { r.AccessCode = "  " }},
		{"zero capacity", func(r *model.Room) { r.Capacity = 0 }},
		{"negative capacity", func(r *model.Room) { r.Capacity = -5 }},
		{"inverted registration window", func(r *model.Room) {
			r.RegistrationStartTime = r.RegistrationEndTime.Add(time.Minute)
		}},
		{"inverted exam window", func(r *model.Room) {
			r.ExamStartTime = r.ExamEndTime.Add(time.Minute)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			room := validRoom()
			tc.mutate(room)
			if err := ValidateRoom(room); !errors.Is(err, common.ErrValidation) {
				t.Fatalf("ValidateRoom() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateRoomRequiresContest(t *testing.T) {
	s := NewRoomService(newMemRoomRepo(), newMemContestRepo())

	if _, err := s.CreateRoom(context.Background(), 9, validRoom()); !errors.Is(err, common.ErrBadRequest) {
		t.Fatalf("CreateRoom() error = %v, want ErrBadRequest", err)
	}
}

func TestCreateRoomBindsContest(t *testing.T) {
	contests := newMemContestRepo(&model.Contest{ID: 3, Name: "Midterm"})
	s := NewRoomService(newMemRoomRepo(), contests)

	room, err := s.CreateRoom(context.Background(), 3, validRoom())
	if err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}
	if room.ContestID != 3 {
		t.Fatalf("contest_id = %d, want 3", room.ContestID)
	}
	if room.ID == 0 {
		t.Fatal("room id not assigned")
	}
}
