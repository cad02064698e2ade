package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type SchedulePublishedMailData struct {
	FullName  string   `json:"fullName"`
	WeekStart string   `json:"weekStart"`
	Shifts    []string `json:"shifts"`
}

type NewAccountMailData struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
