package repository

import "hr-payroll/internal/model"

// employeeSummaryJoin joins the employee behind x.employee_id together with
// its department and designation. Read it with employeeSummaryColumns.
const employeeSummaryJoin = `
	JOIN employees emp ON emp.id = x.employee_id
	LEFT JOIN departments emp_d ON emp_d.id = emp.department_id
	LEFT JOIN designations emp_g ON emp_g.id = emp.designation_id`

const employeeSummaryColumns = `emp.id, emp.emp_code, emp.full_name, emp_d.name, emp_g.title`

func summaryDest(s *model.EmployeeSummary) []any {
	return []any{&s.ID, &s.EmpCode, &s.FullName, &s.Department, &s.Designation}
}
