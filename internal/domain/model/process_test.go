package model

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	p := Process{PID: 4312, Name: "chrome.exe", StartTime: time.Now()}
	if p.DeriveStatus() != ProcessRunning {
		t.Fatal("process without end time must be running")
	}

	ended := p.StartTime.Add(time.Minute)
	p.EndTime = &ended
	if p.DeriveStatus() != ProcessStopped {
		t.Fatal("process with end time must be stopped")
	}
}
