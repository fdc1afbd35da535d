package models

import (
	"strings"
	"time"
)

type TeamStatus string

const (
	TeamForming   TeamStatus = "forming"
	TeamActive    TeamStatus = "active"
	TeamSubmitted TeamStatus = "submitted"
	TeamJudging   TeamStatus = "judging"
	TeamCompleted TeamStatus = "completed"
	TeamWithdrawn TeamStatus = "withdrawn"
)

type MemberRole string

const (
	RoleLeader  MemberRole = "leader"
	RoleMember  MemberRole = "member"
	RolePending MemberRole = "pending"
)

type ContributionLevel string

const (
	ContributionHigh   ContributionLevel = "high"
	ContributionMedium ContributionLevel = "medium"
	ContributionLow    ContributionLevel = "low"
	ContributionNone   ContributionLevel = "none"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationExpired  InvitationStatus = "expired"
)

type NoteType string

const (
	NoteGeneral  NoteType = "general"
	NoteTodo     NoteType = "todo"
	NoteIdea     NoteType = "idea"
	NoteBug      NoteType = "bug"
	NoteDecision NoteType = "decision"
)

// TeamMember holds the member's identity key, never the user document itself.
type TeamMember struct {
	UserID            string            `json:"user_id"`
	Role              MemberRole        `json:"role"`
	ProjectRole       string            `json:"project_role,omitempty"`
	ContributionLevel ContributionLevel `json:"contribution_level"`
	JoinedAt          time.Time         `json:"joined_at"`
}

type TeamInvitation struct {
	ID           string           `json:"id"`
	InviterID    string           `json:"inviter_id"`
	InviteeEmail string           `json:"invitee_email"`
	InviteeID    string           `json:"invitee_id,omitempty"`
	Message      string           `json:"message,omitempty"`
	Token        string           `json:"token,omitempty"`
	Status       InvitationStatus `json:"status"`
	InvitedAt    time.Time        `json:"invited_at"`
	ExpiresAt    time.Time        `json:"expires_at"`
	RespondedAt  *time.Time       `json:"responded_at,omitempty"`
}

// Matches reports whether the invitation addresses the given user, by identity or,
// for invitations sent before the user had an account, by email.
func (inv *TeamInvitation) Matches(userID, email string) bool {
	if inv.InviteeID != "" {
		return inv.InviteeID == userID
	}
	return email != "" && strings.EqualFold(inv.InviteeEmail, email)
}

type ProjectSubmission struct {
	ProjectName      string              `json:"project_name"`
	Tagline          string              `json:"tagline,omitempty"`
	Description      string              `json:"description"`
	ProblemStatement string              `json:"problem_statement,omitempty"`
	Solution         string              `json:"solution,omitempty"`
	Technologies     []string            `json:"technologies"`
	Track            string              `json:"track,omitempty"`
	GithubURL        string              `json:"github_url,omitempty"`
	DemoURL          string              `json:"demo_url,omitempty"`
	VideoURL         string              `json:"video_url,omitempty"`
	PresentationURL  string              `json:"presentation_url,omitempty"`
	Images           []string            `json:"images"`
	Files            []map[string]string `json:"files"`
	IsSubmitted      bool                `json:"is_submitted"`
	SubmittedAt      *time.Time          `json:"submitted_at,omitempty"`
	LastUpdated      time.Time           `json:"last_updated"`
}

// JudgeScore: one per judge per team; total is on a 0-100 scale.
type JudgeScore struct {
	JudgeID      string             `json:"judge_id"`
	Scores       map[string]float64 `json:"scores"`
	TotalScore   float64            `json:"total_score"`
	Feedback     string             `json:"feedback,omitempty"`
	PrivateNotes string             `json:"private_notes,omitempty"`
	ScoredAt     time.Time          `json:"scored_at"`
}

type TeamNote struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"author_id"`
	Content     string     `json:"content"`
	Type        NoteType   `json:"note_type"`
	IsPinned    bool       `json:"is_pinned"`
	Tags        []string   `json:"tags"`
	IsCompleted bool       `json:"is_completed"`
	CompletedBy string     `json:"completed_by,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Team is an aggregate: members, invitations, submission, scores and notes are owned
// values embedded in the team document.
type Team struct {
	ID          string `json:"id"`
	HackathonID string `json:"hackathon_id"`
	Name        string `json:"team_name"`
	Slug        string `json:"slug"`
	Tagline     string `json:"tagline,omitempty"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`

	LeaderID    string             `json:"leader_id"`
	Members     []TeamMember       `json:"members"`
	Invitations []TeamInvitation   `json:"invitations"`
	MinSize     int                `json:"min_size"`
	MaxSize     int                `json:"max_size"`
	Submission  *ProjectSubmission `json:"submission,omitempty"`
	Notes       []TeamNote         `json:"notes"`
	Status      TeamStatus         `json:"status"`

	IsRecruiting     bool     `json:"is_recruiting"`
	LookingForSkills []string `json:"looking_for_skills"`

	JudgeScores            []JudgeScore `json:"judge_scores"`
	FinalScore             float64      `json:"final_score"`
	Awards                 []string     `json:"awards"`
	IsDisqualified         bool         `json:"is_disqualified"`
	DisqualificationReason string       `json:"disqualification_reason,omitempty"`

	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastActivity time.Time `json:"last_activity"`
	Version      int       `json:"-"`
}

// MemberIndex returns the position of userID in Members, or -1.
func (t *Team) MemberIndex(userID string) int {
	for i := range t.Members {
		if t.Members[i].UserID == userID {
			return i
		}
	}
	return -1
}

func (t *Team) IsMember(userID string) bool {
	return t.MemberIndex(userID) >= 0
}

func (t *Team) IsLeader(userID string) bool {
	return userID != "" && t.LeaderID == userID
}

func (t *Team) IsFull() bool {
	return len(t.Members) >= t.MaxSize
}

// IsSubmitted reports whether the project has been finalized.
func (t *Team) IsSubmitted() bool {
	return t.Submission != nil && t.Submission.IsSubmitted
}

// MemberIDs returns member identities in roster order.
func (t *Team) MemberIDs() []string {
	ids := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

// InvitationByToken finds an invitation by its link token.
func (t *Team) InvitationByToken(token string) *TeamInvitation {
	if token == "" {
		return nil
	}
	for i := range t.Invitations {
		if t.Invitations[i].Token == token {
			return &t.Invitations[i]
		}
	}
	return nil
}
