package dto

type TechnicianResponse struct {
	Name        string `json:"name"`
	HomeAddress string `json:"home_address"`
}

type ListTechniciansResponse struct {
	Technicians []TechnicianResponse `json:"technicians"`
}

type ProjectResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type DayResponse struct {
	Weekday string `json:"weekday"`
	Date    string `json:"date"`
}

type WeekResponse struct {
	Monday string        `json:"monday"`
	Days   []DayResponse `json:"days"`
}
