package models

// DashboardStats summarises one hackathon for its organizers.
type DashboardStats struct {
	HackathonID        string         `json:"hackathon_id"`
	Status             string         `json:"status"`
	DisplayStatus      string         `json:"display_status"`
	ParticipantsTotal  int            `json:"participants_total"`
	PendingApprovals   int            `json:"pending_approvals"`
	TeamsTotal         int            `json:"teams_total"`
	TeamsByStatus      map[string]int `json:"teams_by_status"`
	SubmissionsTotal   int            `json:"submissions_total"`
	DisqualifiedTeams  int            `json:"disqualified_teams"`
	JudgesTotal        int            `json:"judges_total"`
	ScoresTotal        int            `json:"scores_total"`
	UnassignedSolo     int            `json:"participants_without_team"`
	PendingInvitations int            `json:"pending_invitations"`
}
