package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"exprnorm/internal/source"
	"exprnorm/internal/trace"
)

// ExprExt is the extension of expression source files.
const ExprExt = ".xn"

// ListExprFiles возвращает отсортированный список всех *.xn файлов в директории
func ListExprFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ExprExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// NormalizeDir normalizes every *.xn file under dir with up to jobs workers
// (GOMAXPROCS when jobs <= 0). Results follow ListExprFiles order. Events go to
// sink when it is non-nil; the sink is not closed.
func (s *Session) NormalizeDir(ctx context.Context, dir string, jobs int, sink ProgressSink) ([]*FileResult, error) {
	files, err := ListExprFiles(dir)
	if err != nil {
		return nil, err
	}
	return s.NormalizeFiles(ctx, dir, files, jobs, sink)
}

// NormalizeFiles is NormalizeDir over an explicit file list; paths are displayed relative to baseDir.
func (s *Session) NormalizeFiles(ctx context.Context, baseDir string, files []string, jobs int, sink ProgressSink) ([]*FileResult, error) {
	span, ctx := trace.Start(ctx, trace.ScopePass, "batch")
	span.WithExtra("files", strconv.Itoa(len(files)))
	defer span.End("")
	if len(files) == 0 {
		return nil, nil
	}

	// FileSet не потокобезопасен: грузим всё заранее, воркеры только читают
	fileSet := source.NewFileSetWithBase(baseDir)
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		ids[i], loadErrs[i] = fileSet.Load(path)
		emit(sink, Event{File: path, Status: StatusQueued})
	}
	for i, path := range files {
		if loadErrs[i] != nil {
			ids[i] = fileSet.Add(path, nil, 0)
		}
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			if loadErrs[i] != nil {
				results[i] = s.loadFailure(fileSet, ids[i], loadErrs[i])
				emit(sink, Event{File: path, Stage: StageParse, Status: StatusError, Err: loadErrs[i], Elapsed: time.Since(started)})
				return nil
			}
			onStage := func(st Stage) {
				emit(sink, Event{File: path, Stage: st, Status: StatusWorking, Elapsed: time.Since(started)})
			}
			res, err := s.normalizeLoaded(gctx, fileSet, ids[i], onStage)
			if err != nil {
				return err
			}
			results[i] = res
			status := StatusDone
			if res.HasErrors() {
				status = StatusError
			}
			emit(sink, Event{File: path, Stage: StageNormalize, Status: status, Elapsed: time.Since(started)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
