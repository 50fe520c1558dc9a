package ports

import "commute-compensation-service/internal/domain"

// Port: read-only lookup of technicians and project sites.
//
// Lookups by name report ok=false for unknown names instead of failing;
// callers treat that as an incomplete entry.
type Directory interface {
	TechnicianAddress(name string) (string, bool)
	ProjectAddress(name string) (string, bool)
	// Technicians and Projects list entries in their source order.
	Technicians() []domain.Technician
	Projects() []domain.Project
}
