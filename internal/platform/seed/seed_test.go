package seed

import (
	"strings"
	"testing"
)

func TestParseAlerts(t *testing.T) {
	data := []byte(`
alerts:
  - code: warning
    name: tab_switch
    description: Candidate switched away from the exam window
    severity: low
  - code: critical
    name: forbidden_process
    severity: high
`)
	alerts, err := ParseAlerts(data)
	if err != nil {
		t.Fatalf("ParseAlerts() error = %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("alerts = %d, want 2", len(alerts))
	}
	if alerts[0].Name != "tab_switch" || alerts[0].Severity != "low" {
		t.Errorf("first alert = %+v", alerts[0])
	}
	if alerts[1].Code != "critical" {
		t.Errorf("second alert code = %q", alerts[1].Code)
	}
}

func TestParseAlertsRejectsBadEntries(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "alerts:\n  - code: warning\n    severity: low\n",
			wantErr: "name is required",
		},
		{
			name:    "bad code",
			yaml:    "alerts:\n  - code: info\n    name: x\n    severity: low\n",
			wantErr: "invalid code",
		},
		{
			name:    "bad severity",
			yaml:    "alerts:\n  - code: warning\n    name: x\n    severity: extreme\n",
			wantErr: "invalid severity",
		},
		{
			name:    "not yaml",
			yaml:    "alerts: [",
			wantErr: "parse alert seed",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAlerts([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("ParseAlerts() error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestParseBlacklist(t *testing.T) {
	data := []byte(`
processes:
  - name: teamviewer.exe
    description: Remote control
  - name: anydesk.exe
`)
	entries, err := ParseBlacklist(data)
	if err != nil {
		t.Fatalf("ParseBlacklist() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Name != "teamviewer.exe" {
		t.Errorf("first entry = %+v", entries[0])
	}
}

func TestParseBlacklistRequiresName(t *testing.T) {
	_, err := ParseBlacklist([]byte("processes:\n  - description: nameless\n"))
	if err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Fatalf("ParseBlacklist() error = %v, want name required", err)
	}
}
