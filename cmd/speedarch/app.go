// Shared wiring for speedarch commands.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/speedarch/speedarch/internal/archive"
	"github.com/speedarch/speedarch/internal/export"
	"github.com/speedarch/speedarch/internal/ledger"
	"github.com/speedarch/speedarch/internal/srcom"
	"github.com/speedarch/speedarch/internal/sync"
	"github.com/speedarch/speedarch/pkg/types"
)

// ledgerFile is the ledger file name inside the data directory.
const ledgerFile = "backups.json"

// app carries the loaded configuration and the stdin reader the
// interactive prompts share.
type app struct {
	cfg types.Config
	log *zap.Logger
	in  *bufio.Reader
}

func newApp(cfg types.Config, log *zap.Logger) *app {
	return &app{cfg: cfg, log: log, in: bufio.NewReader(os.Stdin)}
}

// orchestrator wires the catalog client, ledger, exporter, and history
// index into an Orchestrator. The caller must invoke the returned cleanup.
func (a *app) orchestrator() (*sync.Orchestrator, func(), error) {
	led, err := ledger.Load(a.ledgerPath())
	if err != nil {
		return nil, nil, err
	}

	history, err := archive.Open(a.cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open history index: %w", err)
	}

	catalog := sync.NewCatalog(srcom.New(a.cfg.APIURL, a.cfg.PageSize))
	orch := sync.New(catalog, led, export.NewExcelWriter(), history, a.log, a.cfg)

	cleanup := func() {
		if err := history.Close(); err != nil {
			a.log.Warn("closing history index", zap.Error(err))
		}
	}
	return orch, cleanup, nil
}

func (a *app) ledgerPath() string {
	return filepath.Join(a.cfg.DataDir, ledgerFile)
}

// prompt prints a question and returns one trimmed line of input.
func (a *app) prompt(question string) (string, error) {
	fmt.Println(question)
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question; only y/Y counts as yes.
func (a *app) confirm(question string) (bool, error) {
	answer, err := a.prompt(question + " [Y/N]")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}
