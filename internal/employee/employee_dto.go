package employee

type CreateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"omitempty"`
	BranchID       string `json:"branch_id" binding:"required,uuid"`
	Role           string `json:"role" binding:"omitempty,oneof=staff manager hr admin"`
	HireDate       string `json:"hire_date" binding:"required"`
	EmployeeNumber string `json:"employee_number" binding:"omitempty"`
}

type UpdateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty"`
	BranchID string `json:"branch_id" binding:"required,uuid"`
	Role     string `json:"role" binding:"omitempty,oneof=staff manager hr admin"`
	Status   string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	BranchID       string `json:"branch_id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Role           string `json:"role"`
	HireDate       string `json:"hire_date"`
	Status         string `json:"status"`
}
