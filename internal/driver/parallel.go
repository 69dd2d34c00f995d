package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ConvertFiles converts every path, up to jobs at a time. Each file is an
// independent single-threaded engine run; results keep the order of paths.
// onDone, when set, is called as each file finishes, from its worker
// goroutine.
func ConvertFiles(ctx context.Context, paths []string, jobs int, opts FileOptions, onDone func(FileResult)) ([]FileResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = FileResult{Path: path, Err: gctx.Err()}
				return gctx.Err()
			default:
			}

			fileOpts := opts
			if opts.KeepArtifacts != "" && len(paths) > 1 {
				fileOpts.KeepArtifacts = filepath.Join(opts.KeepArtifacts, artifactDir(i, path))
			}
			results[i] = ConvertFile(gctx, path, fileOpts)
			if onDone != nil {
				onDone(results[i])
			}
			// A failed file does not stop the others
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// artifactDir names a file's artifact subdirectory when several files
// share one --keep-artifacts root.
func artifactDir(i int, path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fmt.Sprintf("%02d-%s", i+1, stem)
}

// Failed counts results with an error.
func Failed(results []FileResult) int {
	n := 0
	for i := range results {
		if !results[i].OK() {
			n++
		}
	}
	return n
}
