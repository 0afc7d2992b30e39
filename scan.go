package tileset

import (
	"context"
	"errors"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bodgit/tileset/sheet"
)

const defaultWorkers = 10

var sheetExtensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

// Result summarises a single sprite sheet found by a Scanner.
type Result struct {
	Path        string
	TileWidth   int
	TileHeight  int
	Tiles       int
	Glyphs      int
	HasColorKey bool
}

// Scanner loads every sprite sheet under a directory using the same grid.
type Scanner struct {
	columns int
	rows    int
	workers int
	logger  *log.Logger
}

// NewScanner returns a Scanner splitting each sheet into columns by rows
// tiles. Sheets that fail to load are reported to logger, which may be nil.
func NewScanner(columns, rows int, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Scanner{
		columns: columns,
		rows:    rows,
		workers: defaultWorkers,
		logger:  logger,
	}
}

func (s *Scanner) findSheets(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			if _, ok := sheetExtensions[strings.ToLower(filepath.Ext(file))]; !ok {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (s *Scanner) load(file string) (Result, error) {
	m, err := sheet.DecodeFile(file)
	if err != nil {
		return Result{}, err
	}

	ts, report, err := Build(m, s.columns, s.rows, nil)
	if err != nil {
		return Result{}, err
	}
	defer ts.Release()

	return Result{
		Path:        file,
		TileWidth:   ts.TileWidth(),
		TileHeight:  ts.TileHeight(),
		Tiles:       ts.TileCount(),
		Glyphs:      report.Glyphs(),
		HasColorKey: report.HasColorKey,
	}, nil
}

func (s *Scanner) sheetWorker(ctx context.Context, in <-chan string, collect func(Result)) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if ctx.Err() != nil {
				continue
			}
			r, err := s.load(file)
			if err != nil {
				s.logger.Printf("Skipping \"%s\": %v\n", file, err)
				continue
			}
			collect(r)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path and loads every sprite sheet found, returning the results
// sorted by file name.
func (s *Scanner) Scan(ctx context.Context, path string) ([]Result, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := s.findSheets(ctx, dir)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	var (
		mu      sync.Mutex
		results []Result
	)
	collect := func(r Result) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, r)
	}

	for i := 0; i < s.workers; i++ {
		errc, err := s.sheetWorker(ctx, files, collect)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	// Every worker has exited so results is no longer shared
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	return results, nil
}
