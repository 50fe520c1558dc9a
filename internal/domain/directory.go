package domain

// Technician is a field worker whose commute starts and ends at home.
// Names are unique within a directory.
type Technician struct {
	Name        string `json:"name"`
	HomeAddress string `json:"home_address"`
}

// Project is a work site a technician can be sent to.
// Names are unique within a directory.
type Project struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}
