package models

type JobStatus string

const (
	JobStatusApplicationsOpen   JobStatus = "Applications Open"
	JobStatusApplicationsClosed JobStatus = "Applications Closed"
	JobStatusShortlisted        JobStatus = "Shortlisted, Interview Pending"
	JobStatusInterviewsOpen     JobStatus = "Interviews Open"
	JobStatusInterviewsClosed   JobStatus = "Interviews Closed"
	JobStatusSelectionComplete  JobStatus = "Selection Complete"
)

type ApplicationStatus string

const (
	ApplicationStatusApplied          ApplicationStatus = "Applied"
	ApplicationStatusShortlisted      ApplicationStatus = "Shortlisted"
	ApplicationStatusNotQualified     ApplicationStatus = "Not Qualified"
	ApplicationStatusReviewing        ApplicationStatus = "Reviewing"
	ApplicationStatusInterviewExpired ApplicationStatus = "Interview Expired"
	ApplicationStatusSelected         ApplicationStatus = "Selected"
	ApplicationStatusNotSelected      ApplicationStatus = "Not Selected"
)

type InterviewStatus string

const (
	InterviewStatusPending    InterviewStatus = "Pending"
	InterviewStatusInProgress InterviewStatus = "In Progress"
	InterviewStatusCompleted  InterviewStatus = "Completed"
	InterviewStatusExpired    InterviewStatus = "Expired"
)

// IsTerminal - терминальный статус, дальнейшие изменения интервью запрещены
func (s InterviewStatus) IsTerminal() bool {
	return s == InterviewStatusCompleted || s == InterviewStatusExpired
}

var interviewTransitions = map[InterviewStatus][]InterviewStatus{
	InterviewStatusPending:    {InterviewStatusInProgress, InterviewStatusExpired},
	InterviewStatusInProgress: {InterviewStatusCompleted, InterviewStatusExpired},
}

// CanTransitionTo - допустимость перехода статуса интервью
func (s InterviewStatus) CanTransitionTo(next InterviewStatus) bool {
	for _, allowed := range interviewTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
