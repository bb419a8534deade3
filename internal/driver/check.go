// Package driver runs check scripts over files and directories and
// collects their diagnostics.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ferrite/internal/diag"
	"ferrite/internal/sexpr"
	"ferrite/internal/source"
)

// FileResult holds everything one checked file produced.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
}

// Options configures a check run.
type Options struct {
	// MaxDiagnostics caps each file's bag.
	MaxDiagnostics int
	// Jobs bounds directory-level parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Cache, when non-nil, skips re-checking files whose content hash
	// already has a stored verdict.
	Cache *Cache
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

// CheckFile loads path into fset and runs its directives.
// Load failures become an IOLoadFile diagnostic, not a process error, so
// directory runs keep their per-file result shape.
func CheckFile(fset *source.FileSet, path string, opts Options) FileResult {
	bag := diag.NewBag(opts.maxDiagnostics())
	fileID, err := fset.Load(path)
	if err != nil {
		bag.Add(diag.NewError(diag.IOLoadFile, source.Span{}, "failed to load file: "+err.Error()))
		return FileResult{Path: path, Bag: bag}
	}
	file := fset.Get(fileID)

	if opts.Cache != nil {
		if cached, ok := opts.Cache.Get(file.Hash, fileID, opts.maxDiagnostics()); ok {
			return FileResult{Path: path, FileID: fileID, Bag: cached}
		}
	}

	sexpr.Run(file, diag.BagReporter{Bag: bag})
	bag.Sort()

	if opts.Cache != nil {
		// Best effort; a failed write only costs a re-check next time.
		_ = opts.Cache.Put(file.Hash, bag)
	}
	return FileResult{Path: path, FileID: fileID, Bag: bag}
}

// listScriptFiles returns every *.fx file under dir, sorted for a
// deterministic result order.
func listScriptFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".fx") {
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

// CheckDir runs every *.fx file under dir with bounded parallelism.
// Results come back in sorted path order regardless of scheduling.
func CheckDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := listScriptFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fset := source.NewFileSet()
	if len(files) == 0 {
		return fset, nil, nil
	}

	// Preload serially: the file set is not safe for concurrent Add.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fset.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes its own index; no mutex needed.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.maxDiagnostics())
			if loadErr, hadError := loadErrors[path]; hadError {
				bag.Add(diag.NewError(diag.IOLoadFile, source.Span{}, "failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: path, Bag: bag}
				return nil
			}

			fileID := fileIDs[path]
			file := fset.Get(fileID)

			if opts.Cache != nil {
				if cached, ok := opts.Cache.Get(file.Hash, fileID, opts.maxDiagnostics()); ok {
					results[i] = FileResult{Path: path, FileID: fileID, Bag: cached}
					return nil
				}
			}

			sexpr.Run(file, diag.BagReporter{Bag: bag})
			bag.Sort()
			if opts.Cache != nil {
				_ = opts.Cache.Put(file.Hash, bag)
			}
			results[i] = FileResult{Path: path, FileID: fileID, Bag: bag}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fset, results, err
	}
	return fset, results, nil
}
