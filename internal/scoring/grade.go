package scoring

// Grade bands shown on result screens and fed into AI feedback prompts.
const (
	GradeCemerlang = "Cemerlang" // excellent
	GradeBaik      = "Baik"
	GradeSederhana = "Sederhana"
	GradeLemah     = "Lemah"
)

// GradeFor converts a 0-100 percentage into its display band.
func GradeFor(percentage int) string {
	switch {
	case percentage >= 85:
		return GradeCemerlang
	case percentage >= 70:
		return GradeBaik
	case percentage >= 50:
		return GradeSederhana
	default:
		return GradeLemah
	}
}
