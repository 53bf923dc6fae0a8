package contract

type CreateTermsRequest struct {
	EmployeeID           string `json:"employee_id" binding:"required,uuid"`
	PayType              string `json:"pay_type" binding:"omitempty,oneof=MONTHLY HOURLY"`
	BaseRate             int64  `json:"base_rate"`
	LunchAllowancePerDay int64  `json:"lunch_allowance_per_day"`
	TransportAllowance   int64  `json:"transport_allowance"`
	PhoneAllowance       int64  `json:"phone_allowance"`
	OtherAllowance       int64  `json:"other_allowance"`
	KPITarget            int64  `json:"kpi_target"`
	EffectiveDate        string `json:"effective_date" binding:"required"`
}

type UpdateTermsRequest struct {
	PayType              string `json:"pay_type" binding:"required,oneof=MONTHLY HOURLY"`
	BaseRate             int64  `json:"base_rate" binding:"required"`
	LunchAllowancePerDay int64  `json:"lunch_allowance_per_day"`
	TransportAllowance   int64  `json:"transport_allowance"`
	PhoneAllowance       int64  `json:"phone_allowance"`
	OtherAllowance       int64  `json:"other_allowance"`
	KPITarget            int64  `json:"kpi_target"`
	EffectiveDate        string `json:"effective_date" binding:"required"`
}

type TermsResponse struct {
	ID                   string `json:"id"`
	CompanyID            string `json:"company_id"`
	EmployeeID           string `json:"employee_id"`
	PayType              string `json:"pay_type"`
	BaseRate             int64  `json:"base_rate"`
	LunchAllowancePerDay int64  `json:"lunch_allowance_per_day"`
	TransportAllowance   int64  `json:"transport_allowance"`
	PhoneAllowance       int64  `json:"phone_allowance"`
	OtherAllowance       int64  `json:"other_allowance"`
	KPITarget            int64  `json:"kpi_target"`
	EffectiveDate        string `json:"effective_date"`
	Complete             bool   `json:"complete"`
}
