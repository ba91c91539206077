package utils

import "fmt"

// EngagementInput are the signals the engagement heuristic weighs.
type EngagementInput struct {
	LinkedInActivity  int     `json:"linkedin_activity"`  // posts/comments per month
	CompanyGrowth     string  `json:"company_growth"`     // growing, stable, declining
	RoleSeniority     string  `json:"role_seniority"`     // junior, mid, senior, executive
	IndustryRelevance int     `json:"industry_relevance"` // 0-10
	PreviousReplyRate float64 `json:"previous_reply_rate"`
	WebsiteStatus     bool    `json:"website_status"`
}

type EngagementFactor struct {
	Score       float64 `json:"score"`
	Value       string  `json:"value"`
	Description string  `json:"description"`
}

// EngagementResult is the predicted reply probability for a lead.
type EngagementResult struct {
	EngagementIndex int                         `json:"engagement_index"`
	PotentialLabel  string                      `json:"potential_label"` // High, Medium, Low
	Reason          string                      `json:"reason"`
	Factors         map[string]EngagementFactor `json:"factors"`
}

// CalculateEngagementIndex scores a lead's likelihood to reply on a 0-100
// scale: LinkedIn activity up to 30 points, company growth 20, role seniority
// 20, industry relevance 15, previous reply rate 10 and an active website 5.
func CalculateEngagementIndex(in EngagementInput) EngagementResult {
	score := 0.0
	factors := map[string]EngagementFactor{}

	var activityScore float64
	var activityDesc string
	switch {
	case in.LinkedInActivity >= 20:
		activityScore, activityDesc = 30, "Very active on LinkedIn"
	case in.LinkedInActivity >= 10:
		activityScore, activityDesc = 22, "Active on LinkedIn"
	case in.LinkedInActivity >= 5:
		activityScore, activityDesc = 15, "Moderately active"
	default:
		activityScore, activityDesc = 5, "Low LinkedIn activity"
	}
	score += activityScore
	factors["linkedin_activity"] = EngagementFactor{
		Score:       activityScore,
		Value:       fmt.Sprintf("%d posts/month", in.LinkedInActivity),
		Description: activityDesc,
	}

	growthScore, growthDesc := 10.0, "Unknown growth"
	switch in.CompanyGrowth {
	case "growing":
		growthScore, growthDesc = 20, "Company growing rapidly"
	case "stable":
		growthScore, growthDesc = 12, "Company stable"
	case "declining":
		growthScore, growthDesc = 5, "Company declining"
	}
	score += growthScore
	factors["company_growth"] = EngagementFactor{
		Score:       growthScore,
		Value:       in.CompanyGrowth,
		Description: growthDesc,
	}

	seniorityScore, seniorityDesc := 8.0, "Unknown level"
	switch in.RoleSeniority {
	case "executive":
		seniorityScore, seniorityDesc = 20, "Executive level"
	case "senior":
		seniorityScore, seniorityDesc = 15, "Senior level"
	case "mid":
		seniorityScore, seniorityDesc = 10, "Mid level"
	case "junior":
		seniorityScore, seniorityDesc = 5, "Junior level"
	}
	score += seniorityScore
	factors["role_seniority"] = EngagementFactor{
		Score:       seniorityScore,
		Value:       in.RoleSeniority,
		Description: seniorityDesc,
	}

	relevanceScore := float64(in.IndustryRelevance) * 1.5
	if relevanceScore > 15 {
		relevanceScore = 15
	}
	score += relevanceScore
	factors["industry_relevance"] = EngagementFactor{
		Score:       relevanceScore,
		Value:       fmt.Sprintf("%d/10", in.IndustryRelevance),
		Description: fmt.Sprintf("Industry relevance: %d/10", in.IndustryRelevance),
	}

	replyScore := in.PreviousReplyRate * 10
	score += replyScore
	factors["previous_replies"] = EngagementFactor{
		Score:       replyScore,
		Value:       fmt.Sprintf("%.2f", in.PreviousReplyRate),
		Description: fmt.Sprintf("%.0f%% previous reply rate", in.PreviousReplyRate*100),
	}

	if in.WebsiteStatus {
		score += 5
		factors["website_status"] = EngagementFactor{Score: 5, Value: "active", Description: "Active website"}
	} else {
		factors["website_status"] = EngagementFactor{Score: 0, Value: "inactive", Description: "No active website"}
	}

	final := int(score)
	if final > 100 {
		final = 100
	}

	label, reason := "Low", "Limited engagement signals, may require warming up"
	if final >= 75 {
		label, reason = "High", "Strong engagement signals: active professional with relevant background"
	} else if final >= 50 {
		label, reason = "Medium", "Moderate engagement potential with some positive indicators"
	}

	return EngagementResult{
		EngagementIndex: final,
		PotentialLabel:  label,
		Reason:          reason,
		Factors:         factors,
	}
}
