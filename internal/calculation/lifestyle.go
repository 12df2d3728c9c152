package calculation

import (
	"fmt"

	"github.com/rgehrsitz/hcpredict/internal/domain"
)

// ValidateHabits checks habit values are physically possible
func ValidateHabits(h domain.LifestyleHabits) error {
	if h.ExerciseDays < 0 || h.ExerciseDays > 7 {
		return domain.NewValidationError("exercise_days", fmt.Sprintf("must be between 0 and 7, got %d", h.ExerciseDays))
	}
	if h.FruitVegPortions < 0 || h.FruitVegPortions > 10 {
		return domain.NewValidationError("fruit_veg_portions", fmt.Sprintf("must be between 0 and 10, got %d", h.FruitVegPortions))
	}
	if h.SleepHours < 0 || h.SleepHours > 24 {
		return domain.NewValidationError("sleep_hours", fmt.Sprintf("must be between 0 and 24, got %d", h.SleepHours))
	}
	return nil
}

// LifestyleScore derives a 0-10 lifestyle score from weekly habits.
// Exercise and diet contribute up to 3 points each, sleep up to 4.
func LifestyleScore(h domain.LifestyleHabits) (int, error) {
	if err := ValidateHabits(h); err != nil {
		return 0, err
	}

	score := tierPoints(h.ExerciseDays) + tierPoints(h.FruitVegPortions)

	switch {
	case h.SleepHours >= 7 && h.SleepHours <= 9:
		score += 4
	case h.SleepHours == 6 || h.SleepHours == 10:
		score += 2
	}

	if score > domain.MaxLifestyleScore {
		score = domain.MaxLifestyleScore
	}
	return score, nil
}

func tierPoints(n int) int {
	switch {
	case n >= 5:
		return 3
	case n >= 3:
		return 2
	case n >= 1:
		return 1
	}
	return 0
}
