package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"arithlex/internal/config"
	"arithlex/internal/diag"
	"arithlex/internal/source"
	"arithlex/internal/token"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // Путь к файлу
	FileID source.FileID // ID файла в FileSet
	Tokens []token.Token // Токены файла, nil при ошибке загрузки
	Bag    *diag.Bag     // Диагностики
}

// ListFiles возвращает отсортированный список файлов dir с подходящими расширениями.
// Пустой extensions означает config.DefaultExtensions.
func ListFiles(dir string, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = config.DefaultExtensions
	}
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if config.MatchExtension(path, extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

// TokenizeDir токенизирует все подходящие файлы в директории параллельно.
// Ошибки чтения отдельных файлов превращаются в IO4001 в их Bag и не
// прерывают обход; ошибка возвращается только при отмене ctx или сбое WalkDir.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListFiles(dir, opts.extensions())
	if err != nil {
		return nil, nil, err
	}
	log := opts.logger()

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен: всё загружаем до запуска воркеров
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.LoadWith(path, opts.loadOptions())
		if err != nil {
			loadErrors[i] = err
			// пустая запись, чтобы span диагностики указывал на путь
			fileID = fileSet.Add(path, nil, 0)
			log.Warn("load failed", "file", path, "error", err)
		}
		fileIDs[i] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			bag := diag.NewBag(opts.MaxDiagnostics)
			fileID := fileIDs[i]
			results[i] = TokenizeDirResult{Path: path, FileID: fileID, Bag: bag}

			if loadErr := loadErrors[i]; loadErr != nil {
				bag.Add(diag.NewError(diag.IOLoadFileError,
					source.Span{File: fileID},
					"failed to load file: "+loadErr.Error()))
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			emit(opts.Progress, Event{File: path, Stage: StageLex, Status: StatusWorking})
			start := time.Now()
			file := fileSet.Get(fileID)
			tokens := lexFile(file, bag, nil)
			results[i].Tokens = tokens

			elapsed := time.Since(start)
			if opts.Timings {
				appendTimingDiagnostic(bag, tokensSpan(fileID, tokens), timingPayload{
					Path:    path,
					TotalMS: float64(elapsed.Microseconds()) / 1000,
				})
			}

			status := StatusDone
			if bag.HasErrors() {
				status = StatusError
			}
			emit(opts.Progress, Event{
				File:    path,
				Stage:   StageLex,
				Status:  status,
				Tokens:  len(tokens),
				Elapsed: elapsed,
			})
			log.Debug("tokenized",
				"file", path,
				"tokens", len(tokens),
				"diagnostics", bag.Len(),
				"elapsed", elapsed,
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
