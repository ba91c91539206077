package utils

import (
	"testing"

	"saasquatch/config"
)

func TestMailerDryRunRecordsWithoutSending(t *testing.T) {
	m := NewMailer(config.SMTPConfig{DryRun: true})

	if err := m.Send("ann@acme.com", "Hi Ann", "Hello"); err != nil {
		t.Fatalf("dry-run send must succeed: %v", err)
	}
	if err := m.Send("bob@acme.com", "Hi Bob", "Hello"); err != nil {
		t.Fatalf("dry-run send must succeed: %v", err)
	}

	records := m.SentRecords()
	if len(records) != 2 {
		t.Fatalf("want 2 records, got %d", len(records))
	}
	if records[0].To != "ann@acme.com" || records[1].To != "bob@acme.com" {
		t.Fatalf("records out of order: %+v", records)
	}
	if records[0].SentAt.IsZero() {
		t.Fatal("records should carry a timestamp")
	}
}

func TestMailerLiveModeRequiresConfiguration(t *testing.T) {
	m := NewMailer(config.SMTPConfig{DryRun: false})

	if err := m.Send("ann@acme.com", "Hi", "Hello"); err == nil {
		t.Fatal("unconfigured live mailer must refuse to send")
	}
	if len(m.SentRecords()) != 0 {
		t.Fatal("a refused send must not be recorded")
	}
}
