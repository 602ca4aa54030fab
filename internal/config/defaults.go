package config

func float(v float64) *float64 { return &v }

// DefaultExerciseRules are keyed by the ids of the seeded exercises:
// Chinups are bodyweight, Clean and Snatch are singles.
func DefaultExerciseRules() []ExerciseRule {
	return []ExerciseRule{
		{ID: 5, Name: "Chinups", Weight: float(0), Sets: float(1)},
		{ID: 6, Name: "Clean", Reps: float(1), Sets: float(1)},
		{ID: 10, Name: "Snatch", Reps: float(1), Sets: float(1)},
	}
}

// DefaultPlan is a six-day bench/press cycle over the seeded exercises
// (1 Squat, 2 Bench, 3 Deadlift, 4 Press, 5 Chinups, 6 Clean).
func DefaultPlan() []PlanDay {
	return []PlanDay{
		{Name: "Volume Bench", Lifts: []PrescriptionSpec{
			{Exercise: 1, Weight: "90%", Reps: "5", Sets: 5},
			{Exercise: 2, Weight: "90%", Reps: "5", Sets: 5},
			{Exercise: 3, Weight: "100%", Reps: "5", Sets: 1},
		}},
		{Name: "Recovery Press", Lifts: []PrescriptionSpec{
			{Exercise: 1, Weight: "72%", Reps: "5", Sets: 2},
			{Exercise: 4, Weight: "81%", Reps: "5", Sets: 3},
			{Exercise: 5, Weight: "0", Reps: "amrap", Sets: 1},
		}},
		{Name: "PR Press", Lifts: []PrescriptionSpec{
			{Exercise: 1, Weight: "100%", Reps: "5", Sets: 1},
			{Exercise: 4, Weight: "100%", Reps: "5", Sets: 1},
			{Exercise: 6, Weight: "100%", Reps: "3", Sets: 5},
		}},
		{Name: "Volume Press", Lifts: []PrescriptionSpec{
			{Exercise: 1, Weight: "90%", Reps: "5", Sets: 5},
			{Exercise: 4, Weight: "90%", Reps: "5", Sets: 5},
			{Exercise: 3, Weight: "100%", Reps: "5", Sets: 1},
		}},
		{Name: "Recovery Bench", Lifts: []PrescriptionSpec{
			{Exercise: 1, Weight: "72%", Reps: "5", Sets: 2},
			{Exercise: 2, Weight: "81%", Reps: "5", Sets: 3},
			{Exercise: 5, Weight: "0", Reps: "amrap", Sets: 1},
		}},
		{Name: "PR Bench", Lifts: []PrescriptionSpec{
			{Exercise: 1, Weight: "100%", Reps: "5", Sets: 1},
			{Exercise: 2, Weight: "100%", Reps: "5", Sets: 1},
			{Exercise: 6, Weight: "100%", Reps: "3", Sets: 5},
		}},
	}
}
