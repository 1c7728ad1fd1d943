package job

import (
	"fmt"

	"installation/internal/pkg/errs"
)

// AssignmentMethod records how a job received its crew: picked by the
// automatic assignment pipeline or chosen by a dispatcher.
type AssignmentMethod int

const (
	// MethodUnknown represents an invalid or undefined assignment method.
	MethodUnknown AssignmentMethod = iota

	// MethodAuto indicates the assignment was made by the engine.
	MethodAuto

	// MethodManual indicates a dispatcher assigned the crew by hand.
	MethodManual
)

func getMethodStrings() map[AssignmentMethod]string {
	return map[AssignmentMethod]string{
		MethodUnknown: "Unknown",
		MethodAuto:    "Auto",
		MethodManual:  "Manual",
	}
}

// Validate checks if the AssignmentMethod value is valid.
// MethodUnknown (0) and any other values are invalid.
func (m AssignmentMethod) Validate() error {
	if m != MethodAuto && m != MethodManual {
		return errs.NewValueIsInvalidErrorWithCause(
			"assignmentMethod is invalid",
			fmt.Errorf("%d is not a valid assignment method", m),
		)
	}
	return nil
}

// String returns the human-readable name of the method.
// It implements the fmt.Stringer interface and is safe to call
// on any AssignmentMethod value, including invalid ones.
func (m AssignmentMethod) String() string {
	if str, ok := getMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}
