package models

// Conductor is the staff user who issues tickets. Password is never
// serialised.
type Conductor struct {
	ID          int64  `db:"id" json:"id"`
	Username    string `db:"username" json:"username"`
	Password    string `db:"password" json:"-"`
	Name        string `db:"name" json:"name"`
	EmployeeID  string `db:"employee_id" json:"employeeId"`
	RouteNumber string `db:"route_number" json:"routeNumber"`
}
