// Package service orchestrates the batch cycles: the analysis cycle
// that turns feed data into recorded decisions, and the audit cycle
// that settles the ledger against completed fixtures.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/goleador/internal/config"
	"github.com/yourusername/goleador/internal/feed"
	"github.com/yourusername/goleador/internal/ledger"
	"github.com/yourusername/goleador/internal/logger"
	"github.com/yourusername/goleador/internal/metrics"
	"github.com/yourusername/goleador/internal/models"
	"github.com/yourusername/goleador/internal/rating"
	"github.com/yourusername/goleador/internal/selector"
	"github.com/yourusername/goleador/internal/sim"
)

// AnalysisService runs the end-to-end decision pipeline for one cycle:
// fetch, rate, resolve, simulate, calibrate, select, size, record.
type AnalysisService struct {
	cfg       *config.Config
	source    feed.DataSource
	estimator *rating.Estimator
	resolver  rating.Resolver
	simulator *sim.Simulator
	calib     *sim.Calibrator
	sel       *selector.Selector
	sizer     *selector.StakeSizer
	repo      ledger.Repository
	log       *logrus.Logger
	audit     *logger.DecisionLogger
	rng       *rand.Rand
}

// NewAnalysisService wires the pipeline. The RNG drives the Monte Carlo
// stage; pass a fixed-seed source for reproducible runs.
func NewAnalysisService(
	cfg *config.Config,
	source feed.DataSource,
	resolver rating.Resolver,
	repo ledger.Repository,
	log *logrus.Logger,
	rng *rand.Rand,
) *AnalysisService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &AnalysisService{
		cfg:       cfg,
		source:    source,
		estimator: rating.NewEstimator(cfg.Model),
		resolver:  resolver,
		simulator: sim.NewSimulator(cfg.Model),
		calib:     sim.NewCalibrator(cfg.Model),
		sel:       selector.NewSelector(cfg.Selection, cfg.Model.Overround),
		sizer:     selector.NewStakeSizer(cfg.Staking),
		repo:      repo,
		log:       log,
		audit:     logger.NewDecisionLogger(log),
		rng:       rng,
	}
}

// CycleReport summarizes one analysis cycle.
type CycleReport struct {
	Leagues   int
	Fixtures  int
	Decisions int
	NoPicks   int
	Skipped   int
	Duration  time.Duration
}

func (r CycleReport) String() string {
	return fmt.Sprintf("leagues=%d fixtures=%d decisions=%d no_picks=%d skipped=%d duration=%s",
		r.Leagues, r.Fixtures, r.Decisions, r.NoPicks, r.Skipped, r.Duration.Round(time.Millisecond))
}

// RunCycle executes one full analysis cycle. A feed failure for one
// league skips that league; the cycle continues with the rest.
func (s *AnalysisService) RunCycle(ctx context.Context) ([]*models.Decision, CycleReport, error) {
	start := time.Now()
	var report CycleReport

	registry := rating.NewRegistry()
	for _, league := range s.cfg.Leagues {
		rows, err := s.source.HistoricalMatches(ctx, league.Code)
		if err != nil {
			s.log.WithError(err).WithField("league", league.Code).
				Warn("Skipping league, history fetch failed")
			metrics.RecordFeedError(league.Code)
			continue
		}

		lc := rating.BuildLeagueContext(models.LeagueProfile{
			Code: league.Code,
			Name: league.Name,
			Tier: league.Tier,
		}, rows, s.estimator)
		registry.Merge(lc)
		report.Leagues++
	}
	metrics.UpdateRegistrySize(float64(registry.Len()))

	if registry.Len() == 0 {
		report.Duration = time.Since(start)
		metrics.RecordCycle("failure", report.Duration.Seconds())
		return nil, report, fmt.Errorf("no league data available, registry is empty")
	}

	fixtures := s.collectFixtures(ctx, &report)

	var decisions []*models.Decision
	for _, row := range fixtures {
		decision, err := s.analyzeFixture(ctx, registry, row)
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"home": row.HomeTeam,
				"away": row.AwayTeam,
			}).Warn("Fixture analysis failed")
			report.Skipped++
			continue
		}
		if decision == nil {
			report.Skipped++
			continue
		}

		report.Fixtures++
		metrics.RecordFixtureAnalyzed(decision.Fixture.League)

		if decision.HasPick() {
			report.Decisions++
		} else {
			report.NoPicks++
		}
		decisions = append(decisions, decision)
	}

	report.Duration = time.Since(start)
	metrics.RecordCycle("success", report.Duration.Seconds())
	s.log.WithField("report", report.String()).Info("Analysis cycle completed")

	return decisions, report, nil
}

// collectFixtures gathers the per-league upcoming rows plus the manually
// configured cross-league cup ties.
func (s *AnalysisService) collectFixtures(ctx context.Context, report *CycleReport) []models.FixtureRow {
	var fixtures []models.FixtureRow

	for _, league := range s.cfg.Leagues {
		rows, err := s.source.UpcomingFixtures(ctx, league.Code)
		if err != nil {
			s.log.WithError(err).WithField("league", league.Code).
				Warn("Skipping league, fixtures fetch failed")
			metrics.RecordFeedError(league.Code)
			continue
		}
		fixtures = append(fixtures, rows...)
	}

	for _, tie := range s.cfg.CupTies {
		date, err := time.Parse("2006-01-02", tie.Date)
		if err != nil {
			s.log.WithError(err).WithField("date", tie.Date).
				Warn("Skipping cup tie with bad date")
			report.Skipped++
			continue
		}
		fixtures = append(fixtures, models.FixtureRow{
			Date:     date,
			HomeTeam: tie.HomeTeam,
			AwayTeam: tie.AwayTeam,
		})
	}

	return fixtures
}

// analyzeFixture runs one fixture through the pipeline. An unresolvable
// team name skips the fixture with a nil decision; only infrastructure
// failures surface as errors.
func (s *AnalysisService) analyzeFixture(ctx context.Context, registry *rating.Registry, row models.FixtureRow) (*models.Decision, error) {
	home, ok := registry.Resolve(row.HomeTeam, s.resolver)
	if !ok {
		metrics.RecordFixtureSkipped("home_unresolved")
		return nil, nil
	}
	away, ok := registry.Resolve(row.AwayTeam, s.resolver)
	if !ok {
		metrics.RecordFixtureSkipped("away_unresolved")
		return nil, nil
	}

	crossLeague := home.League != away.League
	league := row.League
	if league == "" {
		league = home.League
	}

	odds := row.Odds
	if odds == nil {
		odds = &models.MarketOdds{}
	}

	marketWeight := 0.0
	minEV := s.cfg.Selection.DefaultMinEV
	if lc, found := s.cfg.LeagueByCode(league); found {
		marketWeight = lc.MarketWeight
		if lc.MinEV > 0 {
			minEV = lc.MinEV
		}
	}

	simStart := time.Now()
	result, err := s.simulator.Simulate(sim.FixtureInput{
		Home:         home,
		Away:         away,
		CrossLeague:  crossLeague,
		Odds:         odds,
		MarketWeight: marketWeight,
	}, s.rng)
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}
	metrics.SimulationDuration.Observe(time.Since(simStart).Seconds())

	s.calib.Calibrate(result, odds)

	eval := s.sel.Evaluate(result, odds, minEV)

	fixture := models.Fixture{
		League:      league,
		Date:        row.Date,
		HomeTeam:    home.Team,
		AwayTeam:    away.Team,
		CrossLeague: crossLeague,
		Odds:        row.Odds,
	}

	decision := &models.Decision{
		Fixture:      fixture,
		Principal:    eval.Principal,
		Backup:       eval.Backup,
		Simulation:   result,
		BestRejected: eval.BestRejected,
	}

	for _, c := range eval.Candidates {
		if c.Status == models.PickStatusRejected {
			metrics.RecordRejection(c.Reason)
		}
	}

	if decision.Principal != nil {
		decision.StakePct = s.sizer.Stake(decision.Principal, result.ChaosScore)
		if err := s.record(ctx, fixture, decision.Principal, decision.StakePct); err != nil {
			return nil, err
		}
		metrics.RecordDecision(string(decision.Principal.Market), decision.StakePct)
		s.audit.LogDecision(fixture, decision.Principal, decision.StakePct)
	} else {
		s.audit.LogNoPick(fixture, decision.BestRejected)
	}

	if decision.Backup != nil {
		backupStake := s.sizer.Stake(decision.Backup, result.ChaosScore)
		if err := s.record(ctx, fixture, decision.Backup, backupStake); err != nil {
			return nil, err
		}
		metrics.RecordDecision(string(decision.Backup.Market), backupStake)
	}

	return decision, nil
}

// record appends one pick to the ledger. Re-analyzing a fixture within
// the same day is a no-op thanks to the natural-key constraint.
func (s *AnalysisService) record(ctx context.Context, fixture models.Fixture, pick *models.Candidate, stakePct float64) error {
	entry := &models.LedgerEntry{
		Date:          fixture.Date,
		League:        fixture.League,
		HomeTeam:      fixture.HomeTeam,
		AwayTeam:      fixture.AwayTeam,
		Pick:          pick.Pick,
		Market:        pick.Market,
		Probability:   pick.Probability,
		Odd:           pick.Odd,
		ExpectedValue: pick.ExpectedValue,
		Status:        models.OutcomePending,
		Stake:         stakePct,
		CreatedAt:     time.Now().UTC(),
	}

	err := s.repo.Append(ctx, entry)
	if errors.Is(err, models.ErrDuplicateKey) {
		s.log.WithField("key", entry.Key()).Debug("Entry already recorded")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to record entry %s: %w", entry.Key(), err)
	}
	return nil
}
