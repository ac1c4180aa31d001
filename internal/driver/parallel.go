package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lamb/internal/diag"
	"lamb/internal/source"
	"lamb/internal/trace"
)

// SourceExt is the extension of lamb source files.
const SourceExt = ".lc"

// CheckDirResult is the outcome for one file of a directory.
type CheckDirResult struct {
	Path   string
	Result *CheckResult // nil when the file could not be read
	Bag    *diag.Bag
}

// ListSourceFiles returns every *.lc file under dir, sorted.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// CheckDir checks every source file under dir, up to jobs at a time
// (GOMAXPROCS when jobs <= 0). Each file gets its own FileSet and pipeline;
// results come back in path order.
func CheckDir(ctx context.Context, dir string, maxDiagnostics, jobs int) ([]CheckDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	return CheckFiles(ctx, files, maxDiagnostics, jobs, nil)
}

// CheckFiles is CheckDir over an explicit file list. Progress, if not nil,
// sees a queued event for every file before any work starts.
func CheckFiles(ctx context.Context, files []string, maxDiagnostics, jobs int, progress ProgressSink) ([]CheckDirResult, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "check-dir")
	defer span.WithExtra("files", itoa(len(files))).End("")

	for _, path := range files {
		emit(progress, Event{File: path, Stage: StageParse, Status: StatusQueued})
	}

	results := make([]CheckDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(progress, Event{File: path, Stage: StageCheck, Status: StatusWorking})
			results[i] = checkOne(gctx, path, maxDiagnostics)
			status := StatusDone
			if results[i].Bag.HasErrors() {
				status = StatusError
			}
			emit(progress, Event{File: path, Stage: StageCheck, Status: status, Elapsed: time.Since(start)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkOne(ctx context.Context, path string, maxDiagnostics int) CheckDirResult {
	fset := source.NewFileSet()
	id, err := fset.Load(path)
	if err != nil {
		bag := diag.NewBag(maxDiagnostics)
		bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, fmt.Sprintf("failed to read %s: %v", path, err)))
		return CheckDirResult{Path: path, Bag: bag}
	}
	res, err := CheckFile(ctx, fset, fset.Get(id), maxDiagnostics)
	if err != nil {
		bag := diag.NewBag(maxDiagnostics)
		bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, fmt.Sprintf("failed to check %s: %v", path, err)))
		return CheckDirResult{Path: path, Bag: bag}
	}
	return CheckDirResult{Path: path, Result: res, Bag: res.Bag}
}
