package utils

import (
	"strings"
	"testing"

	"saasquatch/models"
)

func TestGenerateEmailContentFirstTouch(t *testing.T) {
	g := NewTemplateContentGenerator()
	got := g.GenerateEmailContent(ContentRequest{
		RecipientName: "Ann Smith",
		Company:       "Acme",
		Role:          "CTO",
		ProductInfo:   "our platform",
		Tone:          "professional",
		Channel:       "email",
		StepNumber:    1,
	})

	if got.Subject == "" {
		t.Fatal("first-touch email should carry a subject")
	}
	if !strings.Contains(got.Content, "Hi Ann,") {
		t.Fatalf("content should greet by first name: %q", got.Content)
	}
	if got.Length != len(got.Content) {
		t.Fatalf("length mismatch: %d vs %d", got.Length, len(got.Content))
	}
}

func TestGenerateEmailContentLinkedInHasNoSubject(t *testing.T) {
	g := NewTemplateContentGenerator()
	got := g.GenerateEmailContent(ContentRequest{
		RecipientName: "Bob",
		Company:       "Acme",
		Channel:       "linkedin",
	})

	if got.Subject != "" {
		t.Fatalf("linkedin messages have no subject, got %q", got.Subject)
	}
}

func TestGenerateEmailContentFollowUpAfterFirstStep(t *testing.T) {
	g := NewTemplateContentGenerator()
	got := g.GenerateEmailContent(ContentRequest{Channel: "email", StepNumber: 2})

	if !strings.Contains(got.Content, "Following up") {
		t.Fatalf("step 2 should use follow-up copy: %q", got.Content)
	}
	if !strings.Contains(got.Content, "Hi there,") {
		t.Fatalf("missing name should fall back to a generic greeting: %q", got.Content)
	}
}

func TestGenerateStepsFromTemplateAssignsFreshIDs(t *testing.T) {
	first := GenerateStepsFromTemplate("simple-2-step")
	second := GenerateStepsFromTemplate("simple-2-step")

	if len(first) != 2 {
		t.Fatalf("simple-2-step has 2 steps, got %d", len(first))
	}
	if first[0].StepID == "" || first[0].StepID == second[0].StepID {
		t.Fatal("each draft must get fresh step ids")
	}
	for _, s := range first {
		if s.Status != "draft" {
			t.Fatalf("generated steps start as draft, got %q", s.Status)
		}
	}
}

func TestGenerateStepsFromTemplateUnknownIDFallsBack(t *testing.T) {
	steps := GenerateStepsFromTemplate("does-not-exist")
	if len(steps) != 3 {
		t.Fatalf("fallback template has 3 steps, got %d", len(steps))
	}
}

func TestGenerateStepSkeletonsRotatesChannels(t *testing.T) {
	steps := GenerateStepSkeletons("book more demos", "professional", 4)

	if len(steps) != 4 {
		t.Fatalf("want 4 steps, got %d", len(steps))
	}
	wantTypes := []string{
		models.StepTypeEmail,
		models.StepTypeLinkedIn,
		models.StepTypeEmail,
		models.StepTypeManual,
	}
	for i, s := range steps {
		if s.Type != wantTypes[i] {
			t.Fatalf("step %d: want type %s, got %s", i+1, wantTypes[i], s.Type)
		}
	}
	if steps[0].DelayDays != 0 {
		t.Fatalf("first step sends immediately, got delay %d", steps[0].DelayDays)
	}
	if steps[1].DelayDays != 2 || steps[2].DelayDays != 3 {
		t.Fatalf("unexpected default delays: %d, %d", steps[1].DelayDays, steps[2].DelayDays)
	}
}
