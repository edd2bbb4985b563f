package dashboard

import (
	"fmt"
	"time"

	"tickerdeck/internal/scheduler"
)

// AdvanceSeriesJob is the fast refresh job extending the price series.
type AdvanceSeriesJob struct {
	session *Session
}

// NewAdvanceSeriesJob creates the series refresh job
func NewAdvanceSeriesJob(session *Session) *AdvanceSeriesJob {
	return &AdvanceSeriesJob{session: session}
}

// Run advances the series by one point
func (j *AdvanceSeriesJob) Run() error {
	j.session.AdvanceSeries()
	return nil
}

// Name returns the job name
func (j *AdvanceSeriesJob) Name() string { return "advance_series" }

// RevaluePortfolioJob is the slow refresh job repricing the holdings.
type RevaluePortfolioJob struct {
	session *Session
}

// NewRevaluePortfolioJob creates the portfolio revaluation job
func NewRevaluePortfolioJob(session *Session) *RevaluePortfolioJob {
	return &RevaluePortfolioJob{session: session}
}

// Run revalues every holding
func (j *RevaluePortfolioJob) Run() error {
	j.session.RevaluePortfolio()
	return nil
}

// Name returns the job name
func (j *RevaluePortfolioJob) Name() string { return "revalue_portfolio" }

// RegisterJobs wires the two refresh jobs onto the scheduler. The series and
// valuation cadences are independent; the session mutex keeps their effects
// from interleaving mid-operation.
func RegisterJobs(sched *scheduler.Scheduler, session *Session, seriesEvery, revalueEvery time.Duration) error {
	if err := sched.AddJob(fmt.Sprintf("@every %s", seriesEvery), NewAdvanceSeriesJob(session)); err != nil {
		return fmt.Errorf("failed to register series job: %w", err)
	}
	if err := sched.AddJob(fmt.Sprintf("@every %s", revalueEvery), NewRevaluePortfolioJob(session)); err != nil {
		return fmt.Errorf("failed to register revalue job: %w", err)
	}
	return nil
}
