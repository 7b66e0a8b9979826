package constants

const (
	// DateFormat is the canonical date format (YYYY-MM-DD) used for
	// progress entries and schedule dates.
	DateFormat = "2006-01-02"

	// TimeFormat is the canonical clock-time format (HH:MM) used for
	// preferred start slots.
	TimeFormat = "15:04"
)
