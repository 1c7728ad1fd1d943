package services

// FailureKind classifies why an assignment attempt produced no schedule.
// These are expected business outcomes, not errors: storage and validation
// problems travel as Go errors instead.
type FailureKind int

const (
	// FailureNone means the attempt succeeded.
	FailureNone FailureKind = iota

	// FailureJobNotPending means the job is not in PendingSchedule status.
	// Repeating an assignment for an already scheduled job yields this.
	FailureJobNotPending

	// FailureMissingCoordinates means the job carries neither a site area
	// nor coordinates, so no crew can ever be matched to it.
	FailureMissingCoordinates

	// FailureNoEligibleCrew means no active crew passes the specialization
	// and service-area filters.
	FailureNoEligibleCrew

	// FailureNoSlotInHorizon means eligible crews exist but every one of
	// them is at capacity on every day of the scheduling horizon.
	FailureNoSlotInHorizon

	// FailureSlotTaken means the chosen slot was claimed by a concurrent
	// assignment between planning and commit.
	FailureSlotTaken
)

func getFailureStrings() map[FailureKind]string {
	return map[FailureKind]string{
		FailureNone:               "None",
		FailureJobNotPending:      "JobNotPending",
		FailureMissingCoordinates: "MissingCoordinates",
		FailureNoEligibleCrew:     "NoEligibleCrew",
		FailureNoSlotInHorizon:    "NoSlotInHorizon",
		FailureSlotTaken:          "SlotTaken",
	}
}

func getFailureReasons() map[FailureKind]string {
	return map[FailureKind]string{
		FailureNone:               "",
		FailureJobNotPending:      "job is not pending schedule",
		FailureMissingCoordinates: "job has no site area and no coordinates",
		FailureNoEligibleCrew:     "no active crew matches the job's area and specialization",
		FailureNoSlotInHorizon:    "no crew has capacity within the scheduling horizon",
		FailureSlotTaken:          "selected slot was taken by a concurrent assignment",
	}
}

// String returns the short machine-readable name of the failure kind.
// It implements the fmt.Stringer interface and is safe to call on any
// FailureKind value, including invalid ones.
func (k FailureKind) String() string {
	if str, ok := getFailureStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// Reason returns a human-readable explanation of the failure kind,
// suitable for reports and API responses. Empty for FailureNone.
func (k FailureKind) Reason() string {
	if reason, ok := getFailureReasons()[k]; ok {
		return reason
	}
	return "unknown failure"
}
