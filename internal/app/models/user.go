package models

// RoleType is a user's role in the records system
type RoleType string

const (
	RoleStudent  RoleType = "STUDENT"
	RoleLecturer RoleType = "LECTURER"
	RoleAdmin    RoleType = "ADMIN"
)

// Valid reports whether the role is one of the known values
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RoleAdmin:
		return true
	}
	return false
}

// User is an identity record. Username is the unique, case-sensitive
// login key; Password holds the bcrypt hash of the credential. The
// stored document carries the hash, API responses never do.
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Surname  string   `json:"surname"`
	Role     RoleType `json:"role"`
}

// StudentDetail is the composed view returned for a student: the user
// record plus their registered enrollments, merged with catalog data.
// Derived on read, never persisted.
type StudentDetail struct {
	User            *User             `json:"user"`
	EnrolledModules []*EnrolledModule `json:"enrolledModules"`
}

// EnrolledModule is one row of the student detail view: an enrollment
// joined with its module catalog entry.
type EnrolledModule struct {
	EnrollmentID string  `json:"enrollmentId"`
	ModuleCode   string  `json:"moduleId"`
	ModuleName   string  `json:"moduleName"`
	Lecturer     string  `json:"lecturer"`
	Semester     int     `json:"semester"`
	SemesterMark float64 `json:"semesterMark"`
	ExamMark     float64 `json:"examMark"`
	FinalMark    float64 `json:"finalMark"`
}
