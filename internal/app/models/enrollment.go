package models

// Enrollment links a student to a module. StudentID is the student's
// username, ModuleID is the module code; both are back-references by
// string key, not structural pointers. Marks default to 0 at creation
// and are mutated later. Enrollments are never hard-deleted;
// deregistration clears IsRegistered.
type Enrollment struct {
	ID           string  `json:"id"`
	StudentID    string  `json:"studentId"`
	ModuleID     string  `json:"moduleId"`
	SemesterMark float64 `json:"semesterMark"`
	ExamMark     float64 `json:"examMark"`
	FinalMark    float64 `json:"finalMark"`
	IsRegistered bool    `json:"isRegistered"`
}
