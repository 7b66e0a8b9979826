package constants

const (
	// Preference keys
	PrefDailyStudyGoal      = "daily_study_goal"
	PrefSessionLength       = "session_length"
	PrefBreakLength         = "break_length"
	PrefLongBreakLength     = "long_break_length"
	PrefStudyDaysPerWeek    = "study_days_per_week"
	PrefPreferredStartTimes = "preferred_start_times"
	PrefMaxSessionsPerDay   = "max_sessions_per_day"
	PrefTimezone            = "timezone"

	// Default preference values
	DefaultDailyStudyGoalMin = 120
	DefaultSessionLengthMin  = 25
	DefaultBreakLengthMin    = 5
	DefaultLongBreakMin      = 15
	DefaultStudyDaysPerWeek  = 5
	DefaultMaxSessionsPerDay = 8
	DefaultTimezone          = "Local" // Use system local timezone by default
)

// DefaultPreferredStartTimes are the default preferred session start slots.
func DefaultPreferredStartTimes() []string {
	return []string{"09:00", "14:00", "19:00"}
}
