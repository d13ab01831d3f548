/*
sweeper.go - Background compliance sweep

PURPOSE:
  Periodically evaluates every employee's schedule against the compliance
  rules and records the findings. Guards block bad mutations at write time;
  the sweep catches what guards cannot: schedules that drift into violation
  as leave records change or rules are tightened.

DESIGN:
  - Runs a background goroutine with a configurable check interval
  - Evaluates a rolling window ending today (default: 28 days back,
    14 days forward, so upcoming published shifts are covered too)
  - Keeps the latest report per employee in memory for the admin surface
  - Findings are advisory; the sweep never mutates the schedule

CONFIGURATION:
  - CheckInterval: How often to sweep (default: 1 hour)
  - Enabled: Whether the sweeper is active (default: true)

USAGE:
  sweeper := NewComplianceSweeper(store, handler.Planner)
  sweeper.Start()
  // ... later
  sweeper.Stop()

SEE ALSO:
  - handlers.go: GetCompliance endpoint (on-demand evaluation)
  - schedule/compliance.go: the validator the sweep runs
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/schedule-engine/schedule"
	"github.com/warp/schedule-engine/store/sqlite"
)

// ComplianceSweeper runs periodic compliance evaluation over all employees.
type ComplianceSweeper struct {
	Store         *sqlite.Store
	Planner       *schedule.Planner
	CheckInterval time.Duration
	LookbackDays  int
	LookaheadDays int
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex

	resultsMu sync.RWMutex
	results   map[schedule.EmployeeID]schedule.ComplianceReport
	lastSweep time.Time
}

// NewComplianceSweeper creates a new sweeper.
func NewComplianceSweeper(store *sqlite.Store, planner *schedule.Planner) *ComplianceSweeper {
	return &ComplianceSweeper{
		Store:         store,
		Planner:       planner,
		CheckInterval: 1 * time.Hour,
		LookbackDays:  28,
		LookaheadDays: 14,
		Enabled:       true,
		stop:          make(chan bool),
		results:       make(map[schedule.EmployeeID]schedule.ComplianceReport),
	}
}

// Start begins the sweeper.
func (cs *ComplianceSweeper) Start() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.Enabled {
		log.Println("[Sweeper] Disabled, not starting")
		return
	}

	cs.ticker = time.NewTicker(cs.CheckInterval)
	cs.wg.Add(1)

	go cs.run()

	log.Printf("[Sweeper] Started with check interval: %v", cs.CheckInterval)
}

// Stop stops the sweeper.
func (cs *ComplianceSweeper) Stop() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.ticker != nil {
		cs.ticker.Stop()
		close(cs.stop)
		cs.wg.Wait()
		log.Println("[Sweeper] Stopped")
	}
}

func (cs *ComplianceSweeper) run() {
	defer cs.wg.Done()

	// Run immediately on start
	cs.sweep()

	for {
		select {
		case <-cs.ticker.C:
			cs.sweep()
		case <-cs.stop:
			return
		}
	}
}

func (cs *ComplianceSweeper) sweep() {
	ctx := context.Background()
	today := schedule.DateOf(time.Now().UTC())
	from := today.AddDays(-cs.LookbackDays)
	to := today.AddDays(cs.LookaheadDays)

	employees, err := cs.Store.ListEmployees(ctx)
	if err != nil {
		log.Printf("[Sweeper] Error listing employees: %v", err)
		return
	}

	flagged := 0
	findings := 0

	for _, emp := range employees {
		report, err := cs.Planner.ComplianceFor(ctx, emp.ID, from, to)
		if err != nil {
			log.Printf("[Sweeper] Error evaluating %s: %v", emp.ID, err)
			continue
		}

		cs.resultsMu.Lock()
		cs.results[emp.ID] = report
		cs.resultsMu.Unlock()

		if !report.IsValid {
			flagged++
			findings += report.Summary.TotalViolations
			log.Printf("[Sweeper] %s: %d violation(s), %d high severity",
				emp.ID, report.Summary.TotalViolations, report.Summary.HighSeverity)
		}
	}

	cs.resultsMu.Lock()
	cs.lastSweep = time.Now()
	cs.resultsMu.Unlock()

	if flagged > 0 {
		log.Printf("[Sweeper] Completed: %d of %d employees flagged, %d finding(s) total",
			flagged, len(employees), findings)
	}
}

// RunNow triggers an immediate sweep (for testing/admin).
func (cs *ComplianceSweeper) RunNow() {
	cs.sweep()
}

// ReportFor returns the latest sweep report for one employee, if any.
func (cs *ComplianceSweeper) ReportFor(id schedule.EmployeeID) (schedule.ComplianceReport, bool) {
	cs.resultsMu.RLock()
	defer cs.resultsMu.RUnlock()
	report, ok := cs.results[id]
	return report, ok
}

// LastSweep returns when the most recent sweep finished.
func (cs *ComplianceSweeper) LastSweep() time.Time {
	cs.resultsMu.RLock()
	defer cs.resultsMu.RUnlock()
	return cs.lastSweep
}
