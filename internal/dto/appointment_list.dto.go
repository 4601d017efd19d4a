package dto

type AppointmentListDTO struct {
	ID               uint   `json:"id"`
	Reference        string `json:"reference"`
	DoctorName       string `json:"doctor_name"`
	Specialty        string `json:"specialty"`
	AppointmentDate  string `json:"appointment_date"`
	AppointmentTime  string `json:"appointment_time"`
	Status           string `json:"status"`
	Reason           string `json:"reason"`
	CanLeaveFeedback bool   `json:"can_leave_feedback"`
}

type GroupedAppointments struct {
	Upcoming  []AppointmentListDTO `json:"upcoming"`
	Past      []AppointmentListDTO `json:"past"`
	Cancelled []AppointmentListDTO `json:"cancelled"`
}
