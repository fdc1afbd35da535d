package apperrors

// Admission
var (
	ErrDeadlinePassed         = New(KindConflict, "deadline_passed", "registration deadline has passed")
	ErrNotYetOpen             = New(KindConflict, "not_yet_open", "registration has not started yet")
	ErrCapacityReached        = New(KindConflict, "capacity_reached", "maximum participants reached")
	ErrRegistrationClosed     = New(KindConflict, "registration_closed", "registration is not open")
	ErrAlreadyRegistered      = New(KindConflict, "already_registered", "already registered")
	ErrApprovalAlreadyPending = New(KindConflict, "approval_already_pending", "registration already pending approval")
	ErrNotRegistered          = New(KindNotFound, "not_registered", "user is not registered for this hackathon")
	ErrNotPending             = New(KindNotFound, "not_pending", "user has no pending registration")
)

// Roster and invitations
var (
	ErrTeamFull            = New(KindConflict, "team_full", "team is full")
	ErrAlreadyMember       = New(KindConflict, "already_member", "user is already a team member")
	ErrCannotRemoveLeader  = New(KindConflict, "cannot_remove_leader", "cannot remove team leader, transfer leadership first")
	ErrNotAMember          = New(KindNotFound, "not_a_member", "user is not a team member")
	ErrDuplicatePending    = New(KindConflict, "duplicate_pending", "invitation already sent to this email")
	ErrNoPendingInvitation = New(KindNotFound, "no_pending_invitation", "no pending invitation found")
	ErrInvitationExpired   = New(KindExpired, "invitation_expired", "invitation has expired")
	ErrInvalidInvitee      = New(KindValidation, "invalid_invitee", "a valid invitee email is required")
	ErrAlreadyInTeam       = New(KindConflict, "already_in_team", "user already belongs to a team in this hackathon")
	ErrTeamNameRequired    = New(KindValidation, "team_name_required", "team name is required")
	ErrNoteContentRequired = New(KindValidation, "note_content_required", "note content is required")
	ErrTeamWithdrawn       = New(KindConflict, "team_withdrawn", "team has withdrawn")
	ErrTeamDisqualified    = New(KindConflict, "team_disqualified", "team is disqualified")
)

// Submission
var (
	ErrNoSubmission       = New(KindValidation, "no_submission", "no project to submit")
	ErrMissingProjectName = New(KindValidation, "missing_project_name", "project name is required")
	ErrMissingDescription = New(KindValidation, "missing_description", "project description is required")
	ErrSubmissionLocked   = New(KindConflict, "submission_locked", "submission is finalized and can no longer be changed")
	ErrAlreadySubmitted   = New(KindConflict, "already_submitted", "project already submitted")
	ErrSubmissionClosed   = New(KindConflict, "submission_closed", "submissions are closed for this hackathon")
)

// Judging
var (
	ErrInvalidCriteria = New(KindValidation, "invalid_criteria", "invalid criteria scores")
	ErrJudgingClosed   = New(KindConflict, "judging_closed", "hackathon is not in judging")
	ErrNotAJudge       = New(KindForbidden, "not_a_judge", "user is not a judge for this hackathon")
)

// Lifecycle
var (
	ErrInvalidStatus           = New(KindValidation, "invalid_status", "invalid hackathon status")
	ErrInvalidStatusTransition = New(KindConflict, "invalid_status_transition", "invalid hackathon status transition")
	ErrTeamFormationClosed     = New(KindConflict, "team_formation_closed", "team formation is not open for this hackathon")
)

// Access and lookup
var (
	ErrForbidden            = New(KindForbidden, "forbidden", "operation not allowed for the current user")
	ErrLeaderOnly           = New(KindForbidden, "leader_only", "only the team leader can perform this action")
	ErrOrganizerOnly        = New(KindForbidden, "organizer_only", "only hackathon organizers can perform this action")
	ErrHackathonNotFound    = New(KindNotFound, "hackathon_not_found", "hackathon not found")
	ErrTeamNotFound         = New(KindNotFound, "team_not_found", "team not found")
	ErrUserNotFound         = New(KindNotFound, "user_not_found", "user not found")
	ErrOrganizationNotFound = New(KindNotFound, "organization_not_found", "organization not found")
	ErrInvitationNotFound   = New(KindNotFound, "invitation_not_found", "invitation not found")
	ErrValidationFailed     = New(KindValidation, "validation_failed", "validation failed")
)

// Store
var ErrConcurrentUpdate = New(KindConflict, "concurrent_update", "the record was changed concurrently, retry the request")
