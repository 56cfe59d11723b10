package recommend

import "arnio/internal/domain"

// BasicStats is available on every plan.
type BasicStats struct {
	TotalTimeMinutes int `json:"totalTime"`
	AverageSpeedWPM  int `json:"averageSpeed"`
	CompletedBooks   int `json:"completedBooks"`
}

// Patterns is unlocked on paying plans.
type Patterns struct {
	BestReadingTime string   `json:"bestReadingTime"`
	PreferredGenres []string `json:"preferredGenres"`
	ReadingStreak   int      `json:"readingStreak"`
}

// Advanced is unlocked on pro and above.
type Advanced struct {
	ComprehensionScore int    `json:"comprehensionScore"`
	FocusLevel         string `json:"focusLevel"`
	RecommendedBreaks  string `json:"recommendedBreaks"`
	LearningStyle      string `json:"learningStyle"`
}

// Predictions is ultraPro only.
type Predictions struct {
	NextBookCompletion   string `json:"nextBookCompletion"`
	YearlyGoalProgress   string `json:"yearlyGoalProgress"`
	SuggestedReadingGoal string `json:"suggestedReadingGoal"`
}

// Insights is the tier-shaped analytics payload.
type Insights struct {
	Basic       BasicStats   `json:"basicStats"`
	Patterns    *Patterns    `json:"patterns,omitempty"`
	Advanced    *Advanced    `json:"advanced,omitempty"`
	Predictions *Predictions `json:"predictions,omitempty"`
}

// Insights builds reading analytics from the user's usage stats. Blocks
// beyond the basic ones appear only on entitled tiers; the analysis content
// itself stands in for the external AI service.
func (s *Service) Insights(plan domain.Plan, usage domain.UsageStats) Insights {
	out := Insights{
		Basic: BasicStats{
			TotalTimeMinutes: usage.ReadingTimeMinutes,
			CompletedBooks:   usage.CompletedBooks,
		},
	}
	if domain.RecommendationQuota(plan) == 0 {
		return out
	}

	out.Basic.AverageSpeedWPM = 250
	out.Patterns = &Patterns{
		BestReadingTime: "Morning (9-11 AM)",
		PreferredGenres: []string{"Education", "Self-Help", "Science"},
		ReadingStreak:   7,
	}
	if plan.ID == domain.PlanPro || plan.ID == domain.PlanUltraPro {
		out.Advanced = &Advanced{
			ComprehensionScore: 85,
			FocusLevel:         "High",
			RecommendedBreaks:  "Every 45 minutes",
			LearningStyle:      "Visual learner",
		}
	}
	if plan.ID == domain.PlanUltraPro {
		out.Predictions = &Predictions{
			NextBookCompletion:   "3 days",
			YearlyGoalProgress:   "67%",
			SuggestedReadingGoal: "24 books this year",
		}
	}
	return out
}
