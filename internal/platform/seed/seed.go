package seed

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AlertSeed is one taxonomy entry from alerts.yaml.
type AlertSeed struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Severity    string `yaml:"severity"`
}

// BlacklistSeed is one disallowed process name from blacklist.yaml.
type BlacklistSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type alertFile struct {
	Alerts []AlertSeed `yaml:"alerts"`
}

type blacklistFile struct {
	Processes []BlacklistSeed `yaml:"processes"`
}

// Apply loads the alert taxonomy and default process blacklist from dir and
// inserts them when the corresponding tables are empty. Missing seed files
// are logged and skipped so a bare deployment still starts.
func Apply(db *sql.DB, dir string) error {
	alerts, err := loadAlerts(filepath.Join(dir, "alerts.yaml"))
	if err != nil {
		return err
	}
	if alerts != nil {
		if err := seedAlerts(db, alerts); err != nil {
			return err
		}
	}

	entries, err := loadBlacklist(filepath.Join(dir, "blacklist.yaml"))
	if err != nil {
		return err
	}
	if entries != nil {
		if err := seedBlacklist(db, entries); err != nil {
			return err
		}
	}
	return nil
}

func loadAlerts(path string) ([]AlertSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Seed file %s not found, skipping alert taxonomy seed", path)
			return nil, nil
		}
		return nil, fmt.Errorf("read alert seed: %w", err)
	}
	return ParseAlerts(data)
}

// ParseAlerts decodes and validates alerts.yaml content.
func ParseAlerts(data []byte) ([]AlertSeed, error) {
	var f alertFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse alert seed: %w", err)
	}
	for i, a := range f.Alerts {
		if a.Name == "" {
			return nil, fmt.Errorf("alert seed entry %d: name is required", i)
		}
		if a.Code != "warning" && a.Code != "critical" {
			return nil, fmt.Errorf("alert seed entry %q: invalid code %q", a.Name, a.Code)
		}
		switch a.Severity {
		case "low", "medium", "high":
		default:
			return nil, fmt.Errorf("alert seed entry %q: invalid severity %q", a.Name, a.Severity)
		}
	}
	return f.Alerts, nil
}

func loadBlacklist(path string) ([]BlacklistSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Seed file %s not found, skipping process blacklist seed", path)
			return nil, nil
		}
		return nil, fmt.Errorf("read blacklist seed: %w", err)
	}
	return ParseBlacklist(data)
}

// ParseBlacklist decodes and validates blacklist.yaml content.
func ParseBlacklist(data []byte) ([]BlacklistSeed, error) {
	var f blacklistFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse blacklist seed: %w", err)
	}
	for i, p := range f.Processes {
		if p.Name == "" {
			return nil, fmt.Errorf("blacklist seed entry %d: name is required", i)
		}
	}
	return f.Processes, nil
}

func seedAlerts(db *sql.DB, alerts []AlertSeed) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM alerts`).Scan(&count); err != nil {
		return fmt.Errorf("count alerts: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, a := range alerts {
		_, err := db.Exec(
			`INSERT INTO alerts (code, name, description, severity) VALUES ($1, $2, $3, $4)`,
			a.Code, a.Name, a.Description, a.Severity,
		)
		if err != nil {
			return fmt.Errorf("seed alert %q: %w", a.Name, err)
		}
	}
	log.Printf("Seeded %d alert taxonomy entries", len(alerts))
	return nil
}

func seedBlacklist(db *sql.DB, entries []BlacklistSeed) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM process_blacklist`).Scan(&count); err != nil {
		return fmt.Errorf("count process blacklist: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, p := range entries {
		_, err := db.Exec(
			`INSERT INTO process_blacklist (name, description) VALUES ($1, $2)`,
			p.Name, p.Description,
		)
		if err != nil {
			return fmt.Errorf("seed blacklist entry %q: %w", p.Name, err)
		}
	}
	log.Printf("Seeded %d process blacklist entries", len(entries))
	return nil
}
