package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerpoints"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-points/internal/domain/team"
	"github.com/riskibarqy/fantasy-points/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-points/internal/platform/id"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultScoringWorkers = 8
	maxCompareIDs         = 10
)

type PointsServiceConfig struct {
	Workers     int
	CacheTTL    time.Duration
	PlayerLimit int
	RuleTable   scoring.RuleTable
	Ladder      gameweek.Ladder
}

// PlayerMatch is one scored match with the week it was bucketed into.
type PlayerMatch struct {
	Week gameweek.Label
	scoring.ScoredMatch
}

// Report is the full aggregation of one snapshot. It is shared read-only
// between requests.
type Report struct {
	GeneratedAt time.Time
	LoadedAt    time.Time
	RuleTable   string
	Codes       []scoring.StatCode
	Season      []playerpoints.Record
	Weekly      map[gameweek.Label][]playerpoints.Record
	Matches     map[int64][]PlayerMatch
	Teams       []team.Team
	PlayerCount int

	seasonIndex map[int64]int
}

func (r *Report) Weeks() []gameweek.Label {
	out := make([]gameweek.Label, 0, len(r.Weekly))
	for label := range r.Weekly {
		out = append(out, label)
	}
	gameweek.SortLabels(out)
	return out
}

func (r *Report) SeasonRecord(playerID int64) (playerpoints.Record, bool) {
	idx, ok := r.seasonIndex[playerID]
	if !ok {
		return playerpoints.Record{}, false
	}
	return r.Season[idx], true
}

type WeekSummary struct {
	Week          gameweek.Label
	Number        int
	Players       int
	Matches       int
	CombinedTotal int
}

type PlayerDetail struct {
	Season  playerpoints.Record
	Weekly  []playerpoints.Record
	Matches []PlayerMatch
}

type Options struct {
	Positions []string
	Teams     []string
	Weeks     []gameweek.Label
	Codes     []scoring.StatCode
}

type RefreshResult struct {
	GeneratedAt time.Time
	Players     int
	Records     int
	Weeks       int
}

type PointsService struct {
	source   playerpoints.Source
	repo     playerpoints.Repository
	idGen    idgen.Generator
	logger   *logging.Logger
	table    scoring.RuleTable
	ladder   gameweek.Ladder
	workers  int
	limit    int
	reports  *cache.Snapshot[*Report]
	now      func() time.Time
	exportMu sync.Mutex
}

// NewPointsService wires the scoring pipeline. repo may be nil, in which
// case Export only reports the run without persisting it.
func NewPointsService(
	source playerpoints.Source,
	repo playerpoints.Repository,
	idGen idgen.Generator,
	cfg PointsServiceConfig,
	logger *logging.Logger,
) *PointsService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = idgen.NewTimeOrderedGenerator()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = defaultScoringWorkers
	}
	table := cfg.RuleTable
	if len(table.Rules) == 0 {
		table = scoring.StandardRuleTable()
	}
	ladder := cfg.Ladder
	if len(ladder.Rungs) == 0 && ladder.SeasonFloor == 0 {
		ladder = gameweek.DefaultLadder()
	}

	s := &PointsService{
		source:  source,
		repo:    repo,
		idGen:   idGen,
		logger:  logger,
		table:   table,
		ladder:  ladder,
		workers: workers,
		limit:   cfg.PlayerLimit,
		now:     time.Now,
	}
	s.reports = cache.NewSnapshot(cfg.CacheTTL, s.buildReport)
	return s
}

// Report returns the cached report, building it on first use or expiry.
func (s *PointsService) Report(ctx context.Context) (*Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.Report")
	defer span.End()

	report, err := s.reports.Get(ctx)
	if err != nil {
		return nil, failSpan(span, fmt.Errorf("build points report: %w", err))
	}
	return report, nil
}

func (s *PointsService) Refresh(ctx context.Context) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.Refresh")
	defer span.End()

	report, err := s.reports.Refresh(ctx)
	if err != nil {
		return RefreshResult{}, failSpan(span, fmt.Errorf("refresh points report: %w", err))
	}

	records := len(report.Season)
	for _, week := range report.Weekly {
		records += len(week)
	}
	s.logger.InfoContext(ctx, "points report refreshed",
		"players", report.PlayerCount,
		"records", records,
		"weeks", len(report.Weekly),
	)

	return RefreshResult{
		GeneratedAt: report.GeneratedAt,
		Players:     report.PlayerCount,
		Records:     records,
		Weeks:       len(report.Weekly),
	}, nil
}

// Invalidate drops the cached report; the next read rebuilds it.
func (s *PointsService) Invalidate() {
	s.reports.Invalidate()
}

func (s *PointsService) ListSeason(ctx context.Context, query ListQuery) (RecordPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.ListSeason")
	defer span.End()

	report, err := s.Report(ctx)
	if err != nil {
		return RecordPage{}, err
	}
	return queryRecords(report.Season, report.Codes, playerpoints.ScopeSeason, query)
}

func (s *PointsService) ListWeek(ctx context.Context, week gameweek.Label, query ListQuery) (RecordPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.ListWeek", attribute.String("points.week", string(week)))
	defer span.End()

	if n := week.Number(); n < gameweek.MinWeek || n > gameweek.MaxWeek {
		return RecordPage{}, fmt.Errorf("%w: week must be between %d and %d", ErrInvalidInput, gameweek.MinWeek, gameweek.MaxWeek)
	}

	report, err := s.Report(ctx)
	if err != nil {
		return RecordPage{}, err
	}
	return queryRecords(report.Weekly[week], report.Codes, playerpoints.WeekScope(week), query)
}

func (s *PointsService) ListWeeks(ctx context.Context) ([]WeekSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.ListWeeks")
	defer span.End()

	report, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}

	labels := report.Weeks()
	out := make([]WeekSummary, 0, len(labels))
	for _, label := range labels {
		summary := WeekSummary{Week: label, Number: label.Number()}
		for _, record := range report.Weekly[label] {
			summary.Players++
			summary.Matches += record.Totals.Games
			summary.CombinedTotal += record.Totals.Combined
		}
		out = append(out, summary)
	}
	return out, nil
}

func (s *PointsService) GetPlayer(ctx context.Context, playerID int64) (PlayerDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.GetPlayer", attribute.Int64("player.id", playerID))
	defer span.End()

	if playerID <= 0 {
		return PlayerDetail{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	report, err := s.Report(ctx)
	if err != nil {
		return PlayerDetail{}, err
	}
	return playerDetail(report, playerID)
}

// Compare returns the details of every requested player in request order.
func (s *PointsService) Compare(ctx context.Context, playerIDs []int64) ([]PlayerDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.Compare", attribute.Int("player.count", len(playerIDs)))
	defer span.End()

	if len(playerIDs) < 2 || len(playerIDs) > maxCompareIDs {
		return nil, fmt.Errorf("%w: compare needs between 2 and %d player ids", ErrInvalidInput, maxCompareIDs)
	}
	seen := make(map[int64]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate player id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	report, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PlayerDetail, 0, len(playerIDs))
	for _, id := range playerIDs {
		detail, err := playerDetail(report, id)
		if err != nil {
			return nil, err
		}
		out = append(out, detail)
	}
	return out, nil
}

// Options lists the distinct filter values present in the season records.
func (s *PointsService) Options(ctx context.Context) (Options, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.Options")
	defer span.End()

	report, err := s.Report(ctx)
	if err != nil {
		return Options{}, err
	}

	positions := make(map[string]struct{})
	teams := make(map[string]struct{})
	for _, record := range report.Season {
		for _, position := range record.Positions {
			positions[string(position)] = struct{}{}
		}
		if len(record.Positions) == 0 {
			positions[string(player.PositionUnknown)] = struct{}{}
		}
		teams[record.TeamName] = struct{}{}
	}

	return Options{
		Positions: sortedKeys(positions),
		Teams:     sortedKeys(teams),
		Weeks:     report.Weeks(),
		Codes:     append([]scoring.StatCode(nil), report.Codes...),
	}, nil
}

// Export persists the current report as one run, replacing any previous
// run.
func (s *PointsService) Export(ctx context.Context) (playerpoints.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.Export")
	defer span.End()

	report, err := s.Report(ctx)
	if err != nil {
		return playerpoints.Run{}, err
	}

	runID, err := s.idGen.NewID()
	if err != nil {
		return playerpoints.Run{}, fmt.Errorf("generate run id: %w", err)
	}

	run := playerpoints.Run{
		ID:          runID,
		RuleTable:   report.RuleTable,
		Codes:       report.Codes,
		GeneratedAt: report.GeneratedAt,
		Season:      report.Season,
		Weekly:      report.Weekly,
	}
	if s.repo == nil {
		return run, nil
	}

	s.exportMu.Lock()
	defer s.exportMu.Unlock()
	if err := s.repo.ReplaceRun(ctx, run); err != nil {
		return playerpoints.Run{}, failSpan(span, fmt.Errorf("persist points run: %w", err))
	}

	s.logger.InfoContext(ctx, "points run persisted", "run_id", run.ID, "records", run.RecordCount())
	return run, nil
}

func (s *PointsService) buildReport(ctx context.Context) (*Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.buildReport")
	defer span.End()

	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, failSpan(span, err)
	}

	started := s.now()
	results, err := s.scorePlayers(snapshot)
	if err != nil {
		return nil, failSpan(span, err)
	}

	report := &Report{
		GeneratedAt: s.now().UTC(),
		LoadedAt:    snapshot.LoadedAt,
		RuleTable:   s.table.Name,
		Codes:       s.table.Codes(),
		Weekly:      make(map[gameweek.Label][]playerpoints.Record),
		Matches:     make(map[int64][]PlayerMatch, len(results)),
		Teams:       sortedTeams(snapshot.Teams),
		PlayerCount: len(snapshot.Players),
	}
	for _, result := range results {
		if !result.hasSeason {
			continue
		}
		report.Season = append(report.Season, result.season)
		report.Matches[result.playerID] = result.matches
		for label, record := range result.weekly {
			report.Weekly[label] = append(report.Weekly[label], record)
		}
	}

	sortByPlayerID(report.Season)
	for label := range report.Weekly {
		sortByPlayerID(report.Weekly[label])
	}
	report.seasonIndex = make(map[int64]int, len(report.Season))
	for i, record := range report.Season {
		report.seasonIndex[record.PlayerID] = i
	}

	if s.logger.Enabled(logging.LevelDebug) {
		labels := make([]gameweek.Label, 0, len(report.Weekly))
		for label := range report.Weekly {
			labels = append(labels, label)
		}
		gameweek.SortLabels(labels)
		s.logger.DebugContext(ctx, "weekly buckets", "labels", labels)
	}

	span.SetAttributes(
		attribute.Int("points.players", report.PlayerCount),
		attribute.Int("points.season_records", len(report.Season)),
		attribute.Int("points.weeks", len(report.Weekly)),
	)
	s.logger.InfoContext(ctx, "points report built",
		"players", report.PlayerCount,
		"season_records", len(report.Season),
		"weeks", len(report.Weekly),
		"duration_ms", s.now().Sub(started).Milliseconds(),
	)
	return report, nil
}

func (s *PointsService) loadSnapshot(ctx context.Context) (playerpoints.Snapshot, error) {
	if s.source == nil {
		return playerpoints.Snapshot{}, fmt.Errorf("%w: no points source configured", ErrDependencyUnavailable)
	}

	teams, err := s.source.ListTeams(ctx)
	if err != nil {
		return playerpoints.Snapshot{}, fmt.Errorf("load teams: %w", err)
	}
	players, err := s.source.ListPlayers(ctx)
	if err != nil {
		return playerpoints.Snapshot{}, fmt.Errorf("load players: %w", err)
	}
	if s.limit > 0 && len(players) > s.limit {
		players = players[:s.limit]
	}

	ids := make([]int64, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	matches, err := s.source.ListMatchStats(ctx, ids)
	if err != nil {
		return playerpoints.Snapshot{}, fmt.Errorf("load match stats: %w", err)
	}

	teamIndex := make(map[int64]team.Team, len(teams))
	for _, t := range teams {
		teamIndex[t.ID] = t
	}

	return playerpoints.Snapshot{
		Players:  players,
		Teams:    teamIndex,
		Matches:  matches,
		LoadedAt: s.now().UTC(),
	}, nil
}

type playerResult struct {
	playerID  int64
	season    playerpoints.Record
	hasSeason bool
	weekly    map[gameweek.Label]playerpoints.Record
	matches   []PlayerMatch
}

// scorePlayers fans players out over a worker pool. Workers only read the
// snapshot, rule table and ladder.
func (s *PointsService) scorePlayers(snapshot playerpoints.Snapshot) ([]playerResult, error) {
	results := make(chan playerResult, len(snapshot.Players))

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, p := range snapshot.Players {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- s.scorePlayer(p, snapshot)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit scoring task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]playerResult, 0, len(snapshot.Players))
	for result := range results {
		out = append(out, result)
	}
	return out, nil
}

func (s *PointsService) scorePlayer(p player.Player, snapshot playerpoints.Snapshot) playerResult {
	teamName := snapshot.TeamName(p.TeamID)
	scored := playerpoints.ScoreHistory(s.table, p, snapshot.Matches[p.ID])

	result := playerResult{playerID: p.ID}
	result.season, result.hasSeason = playerpoints.AggregateSeason(p, teamName, scored)
	if !result.hasSeason {
		return result
	}
	result.weekly = playerpoints.AggregateWeekly(p, teamName, scored, s.ladder)

	result.matches = make([]PlayerMatch, 0, len(scored))
	for _, match := range scored {
		result.matches = append(result.matches, PlayerMatch{
			Week:        s.ladder.BucketString(match.MatchID),
			ScoredMatch: match,
		})
	}
	sort.SliceStable(result.matches, func(i, j int) bool {
		return result.matches[i].MatchID < result.matches[j].MatchID
	})
	return result
}

func playerDetail(report *Report, playerID int64) (PlayerDetail, error) {
	season, ok := report.SeasonRecord(playerID)
	if !ok {
		return PlayerDetail{}, fmt.Errorf("%w: no points for player %d", ErrNotFound, playerID)
	}

	detail := PlayerDetail{
		Season:  season,
		Matches: report.Matches[playerID],
	}
	for _, label := range report.Weeks() {
		for _, record := range report.Weekly[label] {
			if record.PlayerID == playerID {
				detail.Weekly = append(detail.Weekly, record)
				break
			}
		}
	}
	return detail, nil
}

func sortByPlayerID(records []playerpoints.Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].PlayerID < records[j].PlayerID
	})
}

func sortedTeams(teams map[int64]team.Team) []team.Team {
	out := make([]team.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
