// Package migration aplica o schema do serviço a partir dos arquivos SQL embutidos
package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var FS embed.FS

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Files lista os arquivos de migração em ordem lexical
func Files() ([]string, error) {
	entries, err := fs.ReadDir(FS, "sql")
	if err != nil {
		return nil, fmt.Errorf("erro ao ler migrações embutidas: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}

// Run aplica todas as migrações. Os arquivos são idempotentes.
func Run(ctx context.Context, db Execer) error {
	files, err := Files()
	if err != nil {
		return err
	}

	startTime := time.Now()
	for _, file := range files {
		data, err := fs.ReadFile(FS, "sql/"+file)
		if err != nil {
			return fmt.Errorf("erro ao ler migração %s: %w", file, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("erro ao aplicar migração %s: %w", file, err)
		}

		logrus.WithField("file", file).Debug("Migração aplicada")
	}

	logrus.WithFields(logrus.Fields{
		"files":   len(files),
		"elapsed": time.Since(startTime).String(),
	}).Info("Migrações aplicadas com sucesso")

	return nil
}
