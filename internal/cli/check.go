package cli

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/advlock/internal/advisory"
	"github.com/mrz1836/advlock/internal/constants"
	"github.com/mrz1836/advlock/internal/errors"
	"github.com/mrz1836/advlock/internal/flock"
)

// checkResult is the JSON form of one probe.
type checkResult struct {
	Path       string `json:"path"`
	Discipline string `json:"discipline"`
	Locked     bool   `json:"locked"`
	Error      string `json:"error,omitempty"`

	err error
}

// AddCheckCommand adds the check subcommand.
func AddCheckCommand(root *cobra.Command, st *cliState) {
	var useFlock bool

	cmd := &cobra.Command{
		Use:   "check PATH...",
		Short: "Report whether paths are locked by another holder",
		Long: `Probe each PATH with a non-blocking exclusive lock and release it at once.

Prints "locked" or "unlocked" for a single path, or a table for several.
Exits 0 when every path is unlocked and 3 when any path is locked.

Record probes (the default) open the file for writing; --flock probes open it
read-only.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			discipline := flock.Record
			if st.cfg != nil {
				discipline = st.cfg.Lock.Discipline
			}
			if cmd.Flags().Changed("flock") {
				discipline = flock.Record
				if useFlock {
					discipline = flock.WholeFile
				}
			}
			return runCheck(cmd, st, discipline, args)
		},
	}

	cmd.Flags().BoolVar(&useFlock, "flock", false, "probe with flock(2) instead of an fcntl(2) record lock")
	root.AddCommand(cmd)
}

// probeTarget is one distinct file to probe and the argument positions that
// name it.
type probeTarget struct {
	path    string
	info    fs.FileInfo
	members []int
}

// groupProbeTargets folds arguments that name the same file (a repeated
// path, a hard link, or a route through a symlinked directory) into one
// target. Probes of one file from this process would contend with each
// other, since record and flock probes both lock the open file. Lstat keeps
// a symlink argument distinct from its target, so it still reports the
// symlink refusal.
func groupProbeTargets(paths []string, results []checkResult) []*probeTarget {
	targets := make([]*probeTarget, 0, len(paths))
	for i, p := range paths {
		expanded, err := expandPath(p)
		if err != nil {
			results[i].err = err
			results[i].Error = err.Error()
			continue
		}
		results[i].Path = expanded

		info, statErr := os.Lstat(expanded)
		if statErr == nil {
			if t := findTarget(targets, info); t != nil {
				t.members = append(t.members, i)
				continue
			}
		} else {
			// Let the probe report why the path cannot be opened.
			info = nil
		}
		targets = append(targets, &probeTarget{path: expanded, info: info, members: []int{i}})
	}
	return targets
}

func findTarget(targets []*probeTarget, info fs.FileInfo) *probeTarget {
	for _, t := range targets {
		if t.info != nil && os.SameFile(t.info, info) {
			return t
		}
	}
	return nil
}

// runCheck probes each distinct file concurrently, prints the results in
// argument order, and maps them to an exit status.
func runCheck(cmd *cobra.Command, st *cliState, discipline flock.Discipline, paths []string) error {
	ctx := cmd.Context()
	results := make([]checkResult, len(paths))
	for i, p := range paths {
		results[i] = checkResult{Path: p, Discipline: discipline.String()}
	}

	targets := groupProbeTargets(paths, results)

	var g errgroup.Group
	g.SetLimit(constants.MaxConcurrentProbes)
	for _, target := range targets {
		g.Go(func() error {
			locked, err := advisory.IsLockedWith(ctx, target.path, discipline)
			for _, i := range target.members {
				results[i].Locked = locked
				if err != nil {
					results[i].err = err
					results[i].Error = err.Error()
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := st.printCheck(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	logger := zerolog.Ctx(ctx)
	anyLocked := false
	for _, res := range results {
		if res.err != nil {
			return res.err
		}
		logger.Debug().Str("path", res.Path).Bool("locked", res.Locked).Msg("probed")
		anyLocked = anyLocked || res.Locked
	}

	if anyLocked {
		return errors.NewSilentExitCodeError(ExitLocked, errors.ErrAlreadyLocked)
	}
	return nil
}

// printCheck writes the probe results. A single path prints a bare
// "locked" or "unlocked" so shell scripts can compare it.
func (st *cliState) printCheck(w io.Writer, results []checkResult) error {
	if st.flags.Output == OutputJSON {
		return st.out.JSON(results)
	}

	if len(results) == 1 {
		if results[0].err == nil {
			_, _ = fmt.Fprintln(w, stateName(results[0]))
		}
		return nil
	}

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{res.Path, stateName(res)})
	}
	st.out.Table([]string{"PATH", "STATE"}, rows)
	return nil
}

func stateName(res checkResult) string {
	switch {
	case res.err != nil:
		return "error"
	case res.Locked:
		return statusLocked
	default:
		return statusUnlocked
	}
}
