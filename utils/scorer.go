package utils

import (
	"regexp"
	"strings"

	"github.com/badoux/checkmail"
)

// LeadScore is the result of the confidence scoring heuristic.
type LeadScore struct {
	ConfidenceScore  int            `json:"confidence_score"`
	ConfidenceReason string         `json:"confidence_reason"`
	Status           string         `json:"status"` // Valid, Warning, Invalid
	Breakdown        map[string]int `json:"breakdown"`
}

var linkedinRegex = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/[\w-]+/?`)

// Titles that usually mean the contact can sign off on a purchase.
var decisionMakerTitles = []string{
	"cto", "ceo", "cfo", "vp", "director", "head", "founder", "manager", "lead",
}

// CalculateConfidenceScore rates how likely a lead is real and reachable.
// Email format is worth 20 points, a resolvable domain 25, a valid LinkedIn
// profile 20, a decision-maker title 15 (5 for any other title) and company
// info 10. Scores of 80+ are Valid, 50+ Warning, anything lower Invalid.
func CalculateConfidenceScore(email, domain, linkedinURL, title, company string) LeadScore {
	score := 0
	var reasons []string
	breakdown := map[string]int{}

	if checkmail.ValidateFormat(email) == nil {
		score += 20
		reasons = append(reasons, "Valid email format")
		breakdown["email_format"] = 20
	} else {
		reasons = append(reasons, "Invalid email format")
		breakdown["email_format"] = 0
	}

	if domain != "" {
		if mx, err := LookupMX(domain); err == nil && len(mx) > 0 {
			score += 25
			reasons = append(reasons, "Valid domain with MX records")
			breakdown["domain_valid"] = 25
		} else {
			reasons = append(reasons, "Domain verification failed")
			breakdown["domain_valid"] = 0
		}
	}

	if linkedinURL != "" {
		if linkedinRegex.MatchString(linkedinURL) {
			score += 20
			reasons = append(reasons, "Valid LinkedIn profile")
			breakdown["linkedin_valid"] = 20
		} else {
			reasons = append(reasons, "Invalid LinkedIn URL")
			breakdown["linkedin_valid"] = 0
		}
	} else {
		breakdown["linkedin_valid"] = 0
	}

	if title != "" {
		lower := strings.ToLower(title)
		matched := false
		for _, keyword := range decisionMakerTitles {
			if strings.Contains(lower, keyword) {
				matched = true
				break
			}
		}
		if matched {
			score += 15
			reasons = append(reasons, "Decision-maker title")
			breakdown["title_relevance"] = 15
		} else {
			score += 5
			reasons = append(reasons, "Standard title")
			breakdown["title_relevance"] = 5
		}
	}

	if company != "" {
		score += 10
		reasons = append(reasons, "Company info available")
		breakdown["company_info"] = 10
	}

	status := "Invalid"
	if score >= 80 {
		status = "Valid"
	} else if score >= 50 {
		status = "Warning"
	}

	if score > 100 {
		score = 100
	}

	return LeadScore{
		ConfidenceScore:  score,
		ConfidenceReason: strings.Join(reasons, ", "),
		Status:           status,
		Breakdown:        breakdown,
	}
}
