package worker

import (
	"testing"
	"time"

	"saasquatch/models"
	"saasquatch/utils"
)

func testSequence(steps []models.Step, contacts []models.Contact) *models.Sequence {
	return &models.Sequence{
		SequenceID: "seq-1",
		Name:       "Test",
		Steps:      steps,
		Contacts:   contacts,
	}
}

func TestBuildQueueItemsOnePerStepContactPair(t *testing.T) {
	seq := testSequence(
		[]models.Step{
			{StepID: "s1", Type: models.StepTypeEmail},
			{StepID: "s2", Type: models.StepTypeLinkedIn, DelayDays: 2},
			{StepID: "s3", Type: models.StepTypeEmail, DelayDays: 3},
		},
		[]models.Contact{
			{Name: "Ann", Email: "ann@acme.com"},
			{Name: "Bob", Email: "bob@acme.com"},
		},
	)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	items := BuildQueueItems(seq, now, nil)

	if len(items) != 6 {
		t.Fatalf("want 3 steps x 2 contacts = 6 items, got %d", len(items))
	}
	seen := map[string]bool{}
	for _, it := range items {
		if it.SequenceID != "seq-1" {
			t.Fatalf("wrong sequence id %q", it.SequenceID)
		}
		if it.Status != models.QueueStatusPending {
			t.Fatalf("new items must be pending, got %q", it.Status)
		}
		if it.ItemID == "" || seen[it.ItemID] {
			t.Fatalf("item ids must be unique and non-empty, got %q", it.ItemID)
		}
		seen[it.ItemID] = true
	}
}

func TestBuildQueueItemsDelaysAccumulate(t *testing.T) {
	seq := testSequence(
		[]models.Step{
			{StepID: "s1", Type: models.StepTypeEmail},
			{StepID: "s2", Type: models.StepTypeEmail, DelayDays: 2},
			{StepID: "s3", Type: models.StepTypeEmail, DelayDays: 3},
		},
		[]models.Contact{{Email: "ann@acme.com"}},
	)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	items := BuildQueueItems(seq, now, nil)

	want := []time.Time{
		now,
		now.Add(2 * 24 * time.Hour),
		now.Add(5 * 24 * time.Hour),
	}
	for i, it := range items {
		if !it.ScheduledAt.Equal(want[i]) {
			t.Fatalf("step %d scheduled at %s, want %s", i+1, it.ScheduledAt, want[i])
		}
	}
	for i := 1; i < len(items); i++ {
		if items[i].ScheduledAt.Before(items[i-1].ScheduledAt) {
			t.Fatalf("due times must be non-decreasing in step order")
		}
	}
}

func TestBuildQueueItemsSendTimeOverridesTimeOfDay(t *testing.T) {
	seq := testSequence(
		[]models.Step{{StepID: "s1", Type: models.StepTypeEmail, DelayDays: 1, SendTime: "09:00"}},
		[]models.Contact{{Email: "ann@acme.com"}},
	)
	now := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	items := BuildQueueItems(seq, now, nil)

	want := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	if !items[0].ScheduledAt.Equal(want) {
		t.Fatalf("send_time should override time-of-day: got %s, want %s", items[0].ScheduledAt, want)
	}
}

func TestBuildQueueItemsMalformedSendTimeIgnored(t *testing.T) {
	seq := testSequence(
		[]models.Step{{StepID: "s1", Type: models.StepTypeEmail, SendTime: "25:99"}},
		[]models.Contact{{Email: "ann@acme.com"}},
	)
	now := time.Date(2024, 1, 1, 20, 30, 0, 0, time.UTC)

	items := BuildQueueItems(seq, now, nil)

	if !items[0].ScheduledAt.Equal(now) {
		t.Fatalf("malformed send_time must be ignored: got %s, want %s", items[0].ScheduledAt, now)
	}
}

func TestBuildQueueItemsRendersAndSnapshotsContact(t *testing.T) {
	seq := testSequence(
		[]models.Step{{
			StepID:  "s1",
			Type:    models.StepTypeEmail,
			Subject: "Hi {name}",
			Content: "Saw {company} is hiring, {name}.",
		}},
		[]models.Contact{{Name: "Ann", Email: "ann@acme.com", Company: "Acme"}},
	)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	items := BuildQueueItems(seq, now, nil)

	if items[0].Subject != "Hi Ann" {
		t.Fatalf("subject not rendered: %q", items[0].Subject)
	}
	if items[0].Content != "Saw Acme is hiring, Ann." {
		t.Fatalf("content not rendered: %q", items[0].Content)
	}

	// Mutating the sequence contact after the build must not leak into the
	// item's snapshot.
	seq.Contacts[0].Email = "changed@acme.com"
	if items[0].Contact.Email != "ann@acme.com" {
		t.Fatalf("contact snapshot must be by value, got %q", items[0].Contact.Email)
	}
}

func TestBuildQueueItemsUsesStartedAtWhenSet(t *testing.T) {
	started := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	seq := testSequence(
		[]models.Step{{StepID: "s1", Type: models.StepTypeEmail, DelayDays: 1}},
		[]models.Contact{{Email: "ann@acme.com"}},
	)
	seq.StartedAt = utils.Pointer(started)
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	items := BuildQueueItems(seq, now, nil)

	want := started.Add(24 * time.Hour)
	if !items[0].ScheduledAt.Equal(want) {
		t.Fatalf("origin must be started_at when set: got %s, want %s", items[0].ScheduledAt, want)
	}
}

func TestBuildQueueItemsNegativeDelayDoesNotRewindSchedule(t *testing.T) {
	seq := testSequence(
		[]models.Step{
			{StepID: "s1", Type: models.StepTypeEmail, DelayDays: 2},
			{StepID: "s2", Type: models.StepTypeEmail, DelayDays: -5},
		},
		[]models.Contact{{Email: "ann@acme.com"}},
	)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	items := BuildQueueItems(seq, now, nil)

	if items[1].ScheduledAt.Before(items[0].ScheduledAt) {
		t.Fatalf("negative delay must not rewind the schedule")
	}
}

type fakeReplacer struct {
	sequenceID string
	items      []models.QueueItem
}

func (f *fakeReplacer) ReplaceForSequence(sequenceID string, items []models.QueueItem) error {
	f.sequenceID = sequenceID
	f.items = items
	return nil
}

func TestRebuildQueueReplacesWithFreshBuild(t *testing.T) {
	seq := testSequence(
		[]models.Step{{StepID: "s1", Type: models.StepTypeEmail}},
		[]models.Contact{{Email: "ann@acme.com"}, {Email: "bob@acme.com"}},
	)
	fr := &fakeReplacer{}

	if err := RebuildQueue(fr, seq, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), nil); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	if fr.sequenceID != "seq-1" {
		t.Fatalf("replaced wrong sequence: %q", fr.sequenceID)
	}
	if len(fr.items) != 2 {
		t.Fatalf("want 2 items handed to the store, got %d", len(fr.items))
	}
}
