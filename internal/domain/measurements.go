package domain

// BloodPressure is a single blood pressure reading.
type BloodPressure struct {
	ID        int64
	Date      Date
	Systolic  float64
	Diastolic float64
	User      *UserRef
}

// Points is a daily points entry.
type Points struct {
	ID     int64
	Date   Date
	Points float64
	User   *UserRef
}

// Weight is a body weight measurement in kilograms.
type Weight struct {
	ID     int64
	Date   Date
	Weight float64
	User   *UserRef
}

// Weight units accepted by Preferences.
const (
	UnitKG = "kg"
	UnitLB = "lb"
)

// Preferences holds per-account display settings.
type Preferences struct {
	ID          int64
	WeeklyGoal  int
	WeightUnits string
	User        *UserRef
}
