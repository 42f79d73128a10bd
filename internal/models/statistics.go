package models

// BeneficiaryStats aggregates identity verification counts.
// Always computed as a fold over the beneficiaries table;
// verified + pending + rejected == total by construction.
type BeneficiaryStats struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

// DashboardStats is the single-call aggregate for the admin dashboard
type DashboardStats struct {
	Beneficiaries    BeneficiaryStats `json:"beneficiaries"`
	Requests         RequestStats     `json:"requests"`
	TasksTotal       int              `json:"tasks_total"`
	TasksDelivered   int              `json:"tasks_delivered"`
	ActiveCouriers   int              `json:"active_couriers"`
	ActiveTemplates  int              `json:"active_templates"`
	UnreadAlerts     int              `json:"unread_alerts"`
	DeliveryRate     float64          `json:"delivery_rate"`
	TotalDistributed int              `json:"total_distributed"`
}
