package domain

// Department represents an organizational unit employees belong to.
// EmployeeCount is derived at query time, never stored.
type Department struct {
	ID            int64
	Name          string
	Code          string
	EmployeeCount int64
}
