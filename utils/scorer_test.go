package utils

import (
	"errors"
	"net"
	"testing"
)

func stubMX(t *testing.T, fn func(domain string) ([]*net.MX, error)) {
	t.Helper()
	orig := LookupMX
	LookupMX = fn
	t.Cleanup(func() { LookupMX = orig })
}

func TestCalculateConfidenceScoreFullLead(t *testing.T) {
	stubMX(t, func(domain string) ([]*net.MX, error) {
		return []*net.MX{{Host: "mx.acme.io"}}, nil
	})

	got := CalculateConfidenceScore(
		"ann@acme.io", "acme.io",
		"https://www.linkedin.com/in/ann-smith", "CTO", "Acme")

	// 20 + 25 + 20 + 15 + 10
	if got.ConfidenceScore != 90 {
		t.Fatalf("want score 90, got %d", got.ConfidenceScore)
	}
	if got.Status != "Valid" {
		t.Fatalf("want Valid, got %s", got.Status)
	}
	if got.Breakdown["title_relevance"] != 15 {
		t.Fatalf("CTO should count as decision-maker title: %+v", got.Breakdown)
	}
}

func TestCalculateConfidenceScoreBadEmailNoDomain(t *testing.T) {
	got := CalculateConfidenceScore("not-an-email", "", "", "", "")
	if got.ConfidenceScore != 0 {
		t.Fatalf("want score 0, got %d", got.ConfidenceScore)
	}
	if got.Status != "Invalid" {
		t.Fatalf("want Invalid, got %s", got.Status)
	}
}

func TestCalculateConfidenceScoreDomainLookupFails(t *testing.T) {
	stubMX(t, func(domain string) ([]*net.MX, error) {
		return nil, errors.New("NXDOMAIN")
	})

	got := CalculateConfidenceScore("ann@acme.io", "acme.io", "", "Engineer", "Acme")
	// 20 + 0 + 5 + 10
	if got.ConfidenceScore != 35 {
		t.Fatalf("want score 35, got %d", got.ConfidenceScore)
	}
	if got.Breakdown["domain_valid"] != 0 {
		t.Fatalf("failed lookup must score 0: %+v", got.Breakdown)
	}
}

func TestCalculateConfidenceScoreInvalidLinkedIn(t *testing.T) {
	stubMX(t, func(domain string) ([]*net.MX, error) {
		return []*net.MX{{Host: "mx.acme.io"}}, nil
	})

	got := CalculateConfidenceScore("ann@acme.io", "acme.io", "https://twitter.com/ann", "", "")
	if got.Breakdown["linkedin_valid"] != 0 {
		t.Fatalf("non-linkedin URL must score 0: %+v", got.Breakdown)
	}
	// 20 + 25 + 0
	if got.ConfidenceScore != 45 {
		t.Fatalf("want score 45, got %d", got.ConfidenceScore)
	}
}
