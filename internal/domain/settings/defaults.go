package settings

import "studioplan/internal/domain/kpi"

const defaultTargetKPI = 5000

// DefaultEmployees is the stock roster used until an admin edits it.
func DefaultEmployees() []kpi.Employee {
	return []kpi.Employee{
		{ID: "emp-1", Name: "Lead Architect", Role: "architect", TargetKPI: defaultTargetKPI},
		{ID: "emp-2", Name: "Interior Designer", Role: "interior", TargetKPI: defaultTargetKPI},
		{ID: "emp-3", Name: "Dossier Manager", Role: "dossier", TargetKPI: defaultTargetKPI},
		{ID: "emp-4", Name: "Client Advisor", Role: "advisor", TargetKPI: defaultTargetKPI},
	}
}

// DefaultAppLinks are the stock dashboard shortcuts.
func DefaultAppLinks() []AppLink {
	return []AppLink{
		{ID: "link-drive", Label: "Drive", URL: "https://drive.google.com", Icon: "folder"},
		{ID: "link-mail", Label: "Mail", URL: "https://mail.google.com", Icon: "mail"},
		{ID: "link-calendar", Label: "Calendar", URL: "https://calendar.google.com", Icon: "calendar"},
	}
}
