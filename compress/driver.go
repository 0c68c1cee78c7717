// File: driver.go
// Role: the iteration loop — search once per round, accept the best
// positive-utility invention, rewrite the corpus to use it, and repeat.
// Grounded on flow.Dinic's outer loop shape (ctx-checked iteration, stop
// when no more progress is possible) at the level one step up from
// search.Run's own worklist loop.
package compress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lcinvent/lcinvent/internal/logging"
	"github.com/lcinvent/lcinvent/rewrite"
	"github.com/lcinvent/lcinvent/search"
	"github.com/lcinvent/lcinvent/sexpr"
	"github.com/lcinvent/lcinvent/shift"
	"github.com/lcinvent/lcinvent/term"
	"github.com/lcinvent/lcinvent/walk"
	"github.com/lcinvent/lcinvent/zipper"
)

// ProgramSummary reports one program's before/after state for one
// iteration, labeled with the task name it was submitted under.
type ProgramSummary struct {
	TaskName        string
	ProgramIndex    int
	OriginalCost    int
	RewrittenCost   int
	OccurrenceCount int
}

// CandidateSummary is a runner-up (or the winning) candidate reported
// alongside a StepResult, per Config.InvCandidates.
type CandidateSummary struct {
	Body    string
	Arity   int
	Utility int
}

// StepResult is what one driver iteration emits: the accepted invention
// (name, pretty-printed body, arity), its effect on every train and test
// program, the runner-up candidates considered, aggregate stats, and timing.
type StepResult struct {
	Iteration     int
	InventionName string
	InventionBody string
	Arity         int
	TrainPrograms []ProgramSummary
	TestPrograms  []ProgramSummary
	Candidates    []CandidateSummary
	Stats         *Stats
	Duration      time.Duration
}

// Compress runs the iterate-search-rewrite loop up to iterations times,
// stopping early once no remaining candidate has positive utility. Held-out
// testPrograms are never searched; an accepted invention is applied to them
// only where they already contain, by hash-consed identity, one of the
// occurrence nodes the search found in trainPrograms.
func Compress(ctx context.Context, trainPrograms, testPrograms []*term.Expr, iterations int, cfg Config, taskNames []string) ([]StepResult, error) {
	if len(trainPrograms) == 0 {
		return nil, ErrNoPrograms
	}
	if taskNames != nil && len(taskNames) != len(trainPrograms) {
		return nil, ErrTaskNameMismatch
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NoOp()
	}
	names := taskNames
	if names == nil {
		names = make([]string, len(trainPrograms))
		for i := range names {
			names[i] = fmt.Sprintf("task_%d", i)
		}
	}

	store := term.NewStore()
	trainRoots, err := insertCorpus(store, trainPrograms)
	if err != nil {
		return nil, err
	}
	testRoots, err := insertCorpus(store, testPrograms)
	if err != nil {
		return nil, err
	}

	var results []StepResult
	nextInvention := 0

	for iter := 0; iter < iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("compress: %w", search.ErrCancelled)
		}
		start := time.Now()

		allRoots := append(append([]term.NodeId(nil), trainRoots...), testRoots...)
		order, err := walk.ChildFirst(store, allRoots)
		if err != nil {
			return nil, err
		}
		sh := shift.New(store, cfg.NoCache)
		zippers, _, err := zipper.Bubble(store, sh, order)
		if err != nil {
			return nil, err
		}
		catalogue := zipper.BuildCatalogue(zippers)

		opts := search.NewOptions(
			search.WithMaxArity(cfg.MaxArity),
			search.WithThreads(cfg.Threads),
			search.WithFIFOWorklist(cfg.FIFOWorklist),
			search.WithAscendingWorklist(cfg.AscendingWorklist),
			search.WithNoOptFreeVars(cfg.NoOptFreeVars),
			search.WithNoOptSingleUse(cfg.NoOptSingleUse),
			search.WithNoOptUpperBound(cfg.NoOptUpperBound),
			search.WithNoOptForceMultiuse(cfg.NoOptForceMultiuse),
		)

		done, err := search.Run(ctx, store, catalogue, trainRoots, opts)
		if err != nil {
			if errors.Is(err, search.ErrCancelled) {
				return results, err
			}
			return nil, err
		}

		topN := done.Top(maxInt(cfg.InvCandidates, 1))
		winnerIdx, winnerBody, err := selectWinner(store, catalogue, topN, cfg.NoOptUselessAbstract)
		if err != nil {
			return nil, err
		}
		if winnerIdx < 0 {
			log.Infow("stopping: no usable positive-utility invention", "iteration", iter)
			break
		}
		winner := topN[winnerIdx]

		name := fmt.Sprintf("fn_%d", nextInvention)
		nextInvention++

		step, err := applyIteration(store, catalogue, order, winner, winnerBody, name, trainRoots, testRoots, names, cfg)
		if err != nil {
			return nil, err
		}
		step.Iteration = iter
		step.Candidates = candidateSummaries(store, catalogue, topN, cfg)
		step.Duration = time.Since(start)
		results = append(results, step.StepResult)

		if actual := actualSavings(step.TrainPrograms); actual != winner.Utility {
			log.Warnw("rewriter disagreement: applied savings do not match predicted utility",
				"iteration", iter, "name", name, "predictedUtility", winner.Utility, "actualSavings", actual)
		}

		log.Infow("accepted invention",
			"iteration", iter, "name", name, "arity", winner.Tuple.Arity, "utility", winner.Utility)

		trainRoots = remapRoots(trainRoots, step.rewritten)
		testRoots = remapRoots(testRoots, step.rewritten)
	}

	return results, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func insertCorpus(store *term.Store, programs []*term.Expr) ([]term.NodeId, error) {
	roots := make([]term.NodeId, len(programs))
	for i, e := range programs {
		id, err := store.Insert(e)
		if err != nil {
			return nil, fmt.Errorf("compress: inserting program %d: %w", i, err)
		}
		if store.FreeVars(id).Len() != 0 || store.FreeIVars(id).Len() != 0 {
			return nil, fmt.Errorf("%w: program %d", ErrIngestionViolation, i)
		}
		roots[i] = id
	}
	return roots, nil
}

// selectWinner finds the first candidate in topN (already ranked best
// first) whose materialized body is not degenerate, unless
// noOptUselessAbstract keeps degenerate ones too. Returns -1 if none of
// topN has positive utility or all are degenerate.
func selectWinner(store *term.Store, catalogue *zipper.Catalogue, topN []search.FinishedItem, noOptUselessAbstract bool) (int, term.NodeId, error) {
	for i, cand := range topN {
		if cand.Utility <= 0 {
			break
		}
		body, err := rewrite.MaterializeBody(store, catalogue, cand)
		if err != nil {
			return -1, term.Invalid, err
		}
		if !noOptUselessAbstract && isUselessAbstraction(store, body) {
			continue
		}
		return i, body, nil
	}
	return -1, term.Invalid, nil
}

// isUselessAbstraction reports whether body is exactly a bare invention
// variable: an abstraction that captures no structure of its own and would
// only ever be called as fn_i x = x.
func isUselessAbstraction(store *term.Store, body term.NodeId) bool {
	return store.Kind(body) == term.KindIVar
}

func candidateSummaries(store *term.Store, catalogue *zipper.Catalogue, topN []search.FinishedItem, cfg Config) []CandidateSummary {
	out := make([]CandidateSummary, 0, len(topN))
	for _, cand := range topN {
		body, err := rewrite.MaterializeBody(store, catalogue, cand)
		if err != nil {
			continue
		}
		if !cfg.LossyCandidates && isUselessAbstraction(store, body) {
			continue
		}
		out = append(out, CandidateSummary{
			Body:    sexpr.Print(store, body),
			Arity:   cand.Tuple.Arity,
			Utility: cand.Utility,
		})
	}
	return out
}

// iterationStepResult bundles applyIteration's StepResult with the rewritten-node
// map the driver needs to carry the corpus forward into the next iteration.
type iterationStepResult struct {
	StepResult
	rewritten map[term.NodeId]term.NodeId
}

func applyIteration(store *term.Store, catalogue *zipper.Catalogue, order []term.NodeId, winner search.FinishedItem, body term.NodeId, name string, trainRoots, testRoots []term.NodeId, taskNames []string, cfg Config) (iterationStepResult, error) {
	subst, err := rewrite.Apply(store, catalogue, winner, name, order)
	if err != nil {
		return iterationStepResult{}, err
	}
	rewritten, err := rewrite.RewriteCorpus(store, order, subst)
	if err != nil {
		return iterationStepResult{}, err
	}

	trainOcc, err := rewrite.OccurrencesPerRoot(store, trainRoots, winner.Nodes)
	if err != nil {
		return iterationStepResult{}, err
	}
	testOcc, err := rewrite.OccurrencesPerRoot(store, testRoots, winner.Nodes)
	if err != nil {
		return iterationStepResult{}, err
	}

	trainSummaries := programSummaries(rewrite.Programs(store, trainRoots, rewritten, trainOcc), taskNames)
	testSummaries := programSummaries(rewrite.Programs(store, testRoots, rewritten, testOcc), nil)

	var stats *Stats
	if !cfg.NoStats {
		orig := make([]int, len(trainSummaries))
		rew := make([]int, len(trainSummaries))
		for i, p := range trainSummaries {
			orig[i], rew[i] = p.OriginalCost, p.RewrittenCost
		}
		s := computeStats(orig, rew)
		stats = &s
	}

	return iterationStepResult{
		StepResult: StepResult{
			InventionName: name,
			InventionBody: sexpr.Print(store, body),
			Arity:         winner.Tuple.Arity,
			TrainPrograms: trainSummaries,
			TestPrograms:  testSummaries,
			Stats:         stats,
		},
		rewritten: rewritten,
	}, nil
}

func programSummaries(rewrites []rewrite.ProgramRewrite, taskNames []string) []ProgramSummary {
	out := make([]ProgramSummary, len(rewrites))
	for i, pr := range rewrites {
		name := ""
		if i < len(taskNames) {
			name = taskNames[i]
		}
		out[i] = ProgramSummary{
			TaskName:        name,
			ProgramIndex:    pr.ProgramIndex,
			OriginalCost:    pr.OriginalCost,
			RewrittenCost:   pr.RewrittenCost,
			OccurrenceCount: pr.OccurrenceCount,
		}
	}
	return out
}

// actualSavings sums each train program's realized cost reduction, the
// ground truth the utility accountant's prediction is checked against.
func actualSavings(programs []ProgramSummary) int {
	total := 0
	for _, p := range programs {
		total += p.OriginalCost - p.RewrittenCost
	}
	return total
}

func remapRoots(roots []term.NodeId, rewritten map[term.NodeId]term.NodeId) []term.NodeId {
	out := make([]term.NodeId, len(roots))
	for i, r := range roots {
		if nr, ok := rewritten[r]; ok {
			out[i] = nr
		} else {
			out[i] = r
		}
	}
	return out
}
