package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	SalesTo  string
}

type LeadNotificationData struct {
	Name   string
	Email  string
	Status string
}
