package models

import (
	"slices"
	"time"
)

// HackathonStatus представляет статусы хакатона.
type HackathonStatus string

const (
	HackathonDraft              HackathonStatus = "draft"
	HackathonPublished          HackathonStatus = "published"
	HackathonRegistrationOpen   HackathonStatus = "registration_open"
	HackathonRegistrationClosed HackathonStatus = "registration_closed"
	HackathonOngoing            HackathonStatus = "ongoing"
	HackathonJudging            HackathonStatus = "judging"
	HackathonCompleted          HackathonStatus = "completed"
	HackathonCancelled          HackathonStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s HackathonStatus) Valid() bool {
	switch s {
	case HackathonDraft, HackathonPublished, HackathonRegistrationOpen, HackathonRegistrationClosed,
		HackathonOngoing, HackathonJudging, HackathonCompleted, HackathonCancelled:
		return true
	}
	return false
}

type HackathonMode string

const (
	ModeOnline  HackathonMode = "online"
	ModeOffline HackathonMode = "offline"
	ModeHybrid  HackathonMode = "hybrid"
)

// JudgingCriterion is one weighted axis judges score on (0-10 per criterion).
type JudgingCriterion struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description"`
	Weight      float64 `json:"weight" yaml:"weight"`
}

// Hackathon is stored as a single document. Participants, pending participants,
// teams and judges are identity references only.
type Hackathon struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Slug           string        `json:"slug"`
	Tagline        string        `json:"tagline,omitempty"`
	Description    string        `json:"description"`
	Theme          string        `json:"theme,omitempty"`
	OrganizationID string        `json:"organization_id,omitempty"`
	CreatedBy      string        `json:"created_by"`
	Organizers     []string      `json:"organizers"`
	Mode           HackathonMode `json:"mode"`

	Status      HackathonStatus `json:"status"`
	IsPublished bool            `json:"is_published"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`

	RegistrationStart    *time.Time `json:"registration_start,omitempty"`
	RegistrationDeadline time.Time  `json:"registration_deadline"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              time.Time  `json:"end_date"`
	SubmissionDeadline   *time.Time `json:"submission_deadline,omitempty"`
	ResultDate           *time.Time `json:"result_date,omitempty"`

	MaxParticipants    int  `json:"max_participants"` // 0 = unlimited
	MinTeamSize        int  `json:"min_team_size"`
	MaxTeamSize        int  `json:"max_team_size"`
	AllowTeamFormation bool `json:"allow_team_formation"`
	RequireApproval    bool `json:"require_approval"`

	Participants        []string           `json:"participants"`
	PendingParticipants []string           `json:"pending_participants"`
	Teams               []string           `json:"teams"`
	Judges              []string           `json:"judges"`
	JudgingCriteria     []JudgingCriterion `json:"judging_criteria"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"-"`
}

const (
	DefaultMinTeamSize = 1
	DefaultMaxTeamSize = 4
)

// RegistrationCount is derived from the participant list on read.
func (h *Hackathon) RegistrationCount() int {
	return len(h.Participants)
}

func (h *Hackathon) IsRegistered(userID string) bool {
	return slices.Contains(h.Participants, userID)
}

func (h *Hackathon) IsPending(userID string) bool {
	return slices.Contains(h.PendingParticipants, userID)
}

func (h *Hackathon) IsJudge(userID string) bool {
	return slices.Contains(h.Judges, userID)
}

// IsOrganizer checks the creator and the organizer list. Organization admins are
// resolved by the caller through the organization oracle.
func (h *Hackathon) IsOrganizer(userID string) bool {
	return userID != "" && (h.CreatedBy == userID || slices.Contains(h.Organizers, userID))
}

// CriteriaWeights returns the criterion → weight map, or nil if no criteria are defined.
func (h *Hackathon) CriteriaWeights() map[string]float64 {
	if len(h.JudgingCriteria) == 0 {
		return nil
	}
	weights := make(map[string]float64, len(h.JudgingCriteria))
	for _, c := range h.JudgingCriteria {
		weights[c.Name] = c.Weight
	}
	return weights
}

// HasTeam reports whether teamID is referenced by the hackathon.
func (h *Hackathon) HasTeam(teamID string) bool {
	return slices.Contains(h.Teams, teamID)
}

// AddTeam appends a team reference once.
func (h *Hackathon) AddTeam(teamID string) bool {
	if h.HasTeam(teamID) {
		return false
	}
	h.Teams = append(h.Teams, teamID)
	return true
}

// AddJudge appends a judge reference once.
func (h *Hackathon) AddJudge(userID string) bool {
	if h.IsJudge(userID) {
		return false
	}
	h.Judges = append(h.Judges, userID)
	return true
}
