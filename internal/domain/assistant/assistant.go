// Package assistant answers free-text questions about the portfolio
// with keyword matching over the live project and planning data. It is
// deliberately rule-based: the answers must stay explainable from the
// data on screen.
package assistant

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"studioplan/internal/domain/alerts"
	"studioplan/internal/domain/planning"
	"studioplan/internal/domain/project"
)

// Answer is the assistant's reply plus the project ids it drew on, so
// the UI can link back to the evidence.
type Answer struct {
	Text       string   `json:"text"`
	ProjectIDs []string `json:"projectIds,omitempty"`
}

// Service holds the data accessors the assistant scans.
type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

func containsAny(q string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// Ask routes a question to the matching scan. Unrecognized questions
// get a short help text listing what the assistant can do.
func (s *Service) Ask(question string, projects []project.Project, entries []planning.Entry) Answer {
	q := strings.ToLower(strings.TrimSpace(question))

	switch {
	case containsAny(q, "delay", "late", "overdue", "stuck"):
		return s.delayAnswer(projects)
	case containsAny(q, "construction", "building", "site"):
		return s.constructionAnswer(projects)
	case containsAny(q, "workload", "working on", "busy", "doing"):
		return s.workloadAnswer(q, projects, entries)
	case containsAny(q, "hello", "hi", "hey", "help"):
		return Answer{Text: "I can tell you which projects are delayed, what is under construction, and what each person is working on. Try: \"what is Mia working on?\""}
	default:
		return Answer{Text: "I did not catch that. Ask me about delays, construction status, or someone's workload."}
	}
}

// delayAnswer runs the strict delay scan: started more than ninety
// days ago, not under construction, not finished.
func (s *Service) delayAnswer(projects []project.Project) Answer {
	delayed := alerts.StrictDelays(projects, s.now())
	if len(delayed) == 0 {
		return Answer{Text: "No project is seriously delayed right now."}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d project(s) need attention:\n", len(delayed))
	ids := make([]string, 0, len(delayed))
	for _, a := range delayed {
		fmt.Fprintf(&b, "- %s: %d days in, %.0f%% done\n", a.ProjectName, a.DaysOverdue, a.Progress)
		ids = append(ids, a.ProjectID)
	}
	return Answer{Text: strings.TrimRight(b.String(), "\n"), ProjectIDs: ids}
}

func (s *Service) constructionAnswer(projects []project.Project) Answer {
	var names, ids []string
	for _, p := range projects {
		if p.Metadata.UnderConstruction {
			names = append(names, p.DisplayName())
			ids = append(ids, p.ID)
		}
	}
	if len(names) == 0 {
		return Answer{Text: "Nothing is under construction at the moment."}
	}
	sort.Strings(names)
	return Answer{
		Text:       fmt.Sprintf("Under construction: %s.", strings.Join(names, ", ")),
		ProjectIDs: ids,
	}
}

// workloadAnswer reports what a person carries: their project roles
// from the metadata plus their open plan entries. When no name is
// found in the question, it summarizes everyone with open work.
func (s *Service) workloadAnswer(q string, projects []project.Project, entries []planning.Entry) Answer {
	person := matchPerson(q, projects, entries)
	if person == "" {
		return s.teamWorkload(entries)
	}

	var lines, ids []string
	for _, p := range projects {
		for _, role := range roleAssignments(p) {
			if strings.EqualFold(role.name, person) {
				lines = append(lines, fmt.Sprintf("%s on %s", role.title, p.DisplayName()))
				ids = append(ids, p.ID)
			}
		}
	}
	open := 0
	for _, e := range entries {
		if strings.EqualFold(e.AssignedTo, person) && !e.IsDone() {
			open++
		}
	}

	if len(lines) == 0 && open == 0 {
		return Answer{Text: fmt.Sprintf("%s has no assigned projects or open plan entries.", person)}
	}
	text := fmt.Sprintf("%s: %s", person, strings.Join(lines, "; "))
	if len(lines) == 0 {
		text = person
	}
	if open > 0 {
		text += fmt.Sprintf(" (%d open plan entries)", open)
	}
	return Answer{Text: text, ProjectIDs: ids}
}

func (s *Service) teamWorkload(entries []planning.Entry) Answer {
	counts := map[string]int{}
	for _, e := range entries {
		if !e.IsDone() {
			counts[e.AssignedTo]++
		}
	}
	if len(counts) == 0 {
		return Answer{Text: "Nobody has open plan entries this week."}
	}

	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s (%d)", n, counts[n]))
	}
	return Answer{Text: "Open plan entries: " + strings.Join(parts, ", ") + "."}
}

type roleAssignment struct {
	title string
	name  string
}

func roleAssignments(p project.Project) []roleAssignment {
	var out []roleAssignment
	add := func(title, name string) {
		if name != "" {
			out = append(out, roleAssignment{title, name})
		}
	}
	add("lead architect", p.Metadata.LeadArchitect)
	add("interior lead", p.Metadata.InteriorLead)
	add("dossier lead", p.Metadata.DossierLead)
	add("client advisor", p.Metadata.ClientAdvisor)
	return out
}

// matchPerson scans the question for any name known from project roles
// or plan assignments.
func matchPerson(q string, projects []project.Project, entries []planning.Entry) string {
	seen := map[string]bool{}
	var names []string
	note := func(name string) {
		if name != "" && !seen[strings.ToLower(name)] {
			seen[strings.ToLower(name)] = true
			names = append(names, name)
		}
	}
	for _, p := range projects {
		for _, role := range roleAssignments(p) {
			note(role.name)
		}
	}
	for _, e := range entries {
		note(e.AssignedTo)
	}

	// Longer names first so "Mia K" wins over "Mia".
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	for _, name := range names {
		if strings.Contains(q, strings.ToLower(name)) {
			return name
		}
	}
	return ""
}
