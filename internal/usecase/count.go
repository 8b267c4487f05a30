package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"ngramkit/internal/adapter/fs"
	"ngramkit/internal/domain"
	"ngramkit/internal/port"
)

// CountUseCase maintains corpus n-gram counts. Unchanged files are skipped,
// so repeated runs only pay for what changed.
type CountUseCase struct {
	store     port.CountStore
	walker    port.FileWalker
	tokenizer port.Tokenizer
	generator *GenerateUseCase
	unit      string
	logger    *zap.Logger
}

// NewCountUseCase creates a new count use case.
func NewCountUseCase(
	store port.CountStore,
	walker port.FileWalker,
	tokenizer port.Tokenizer,
	generator *GenerateUseCase,
	unit string,
	logger *zap.Logger,
) *CountUseCase {
	return &CountUseCase{
		store:     store,
		walker:    walker,
		tokenizer: tokenizer,
		generator: generator,
		unit:      unit,
		logger:    logger,
	}
}

// CountResult contains the results of a counting run.
type CountResult struct {
	FilesCounted int
	FilesSkipped int
	FilesDeleted int
	GramsCounted int64
	Errors       []string
}

// ProgressFunc is called after every file with the number processed so far.
type ProgressFunc func(processed, total int, currentFile string)

// Count walks root and brings the stored counts up to date.
func (u *CountUseCase) Count(ctx context.Context, root string, progress ProgressFunc) (*CountResult, error) {
	result := &CountResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	existingDocs, err := u.store.ListDocs()
	if err != nil {
		return nil, fmt.Errorf("failed to list existing docs: %w", err)
	}
	existing := make(map[string]domain.Document, len(existingDocs))
	for _, doc := range existingDocs {
		existing[doc.Path] = doc
	}

	u.logger.Info("counting corpus",
		zap.String("root", root),
		zap.Int("files", len(files)),
		zap.Int("known", len(existingDocs)),
	)

	seen := make(map[string]bool, len(files))
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		seen[file.Path] = true

		if doc, ok := existing[file.Path]; ok && doc.ModTime.Unix() >= file.ModTime {
			result.FilesSkipped++
		} else if n, err := u.countFile(file); err != nil {
			u.logger.Warn("failed to count file", zap.String("path", file.Path), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("failed to count %s: %v", file.Path, err))
		} else {
			result.FilesCounted++
			result.GramsCounted += n
		}

		if progress != nil {
			progress(i+1, len(files), file.Path)
		}
	}

	for path, doc := range existing {
		if seen[path] {
			continue
		}
		if err := u.store.RemoveDoc(doc.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to remove %s: %v", path, err))
			continue
		}
		u.logger.Debug("removed deleted file", zap.String("path", path))
		result.FilesDeleted++
	}

	return result, nil
}

// countFile generates the grams of one file and replaces its stored counts.
func (u *CountUseCase) countFile(file port.FileInfo) (int64, error) {
	content, err := fs.ReadFile(file.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	counts := make(domain.GramCounts)
	var items int64
	for _, seq := range u.tokenizer.Sequences(content, u.unit) {
		items += int64(len(seq))
		g, err := u.generator.Generate(seq)
		if err != nil {
			return 0, err
		}
		for gram := range g.All() {
			counts.Add(gram)
		}
	}

	doc := domain.Document{
		ID:      generateDocID(file.Path),
		Path:    file.Path,
		ModTime: time.Unix(file.ModTime, 0),
		Lang:    detectKind(file.Path),
	}
	if err := u.store.ApplyDoc(doc, counts, items); err != nil {
		return 0, fmt.Errorf("failed to store counts: %w", err)
	}

	u.logger.Debug("counted file",
		zap.String("path", file.Path),
		zap.Int64("items", items),
		zap.Int("unique", len(counts)),
	)
	return counts.Total(), nil
}

// generateDocID creates a unique ID for a document based on its path.
func generateDocID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}

// detectKind names the kind of text a file holds from its extension.
func detectKind(path string) string {
	switch filepath.Ext(path) {
	case ".md", ".markdown":
		return "markdown"
	case ".txt", ".text":
		return "text"
	case ".rst":
		return "rst"
	case ".html", ".htm":
		return "html"
	case ".csv", ".tsv":
		return "table"
	default:
		return "unknown"
	}
}
