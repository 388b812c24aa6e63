package services

// Services defined in this package:
// - AuthService: authentication, registration and password updates
// - ModuleService: module catalog (add/list)
// - EnrollmentService: the enrollment ledger (enroll, marks, deregister)
// - StudentService: composes the student detail view
