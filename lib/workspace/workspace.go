package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/protheus-tools/revisor/lib/consoles"
	"github.com/protheus-tools/revisor/lib/storages"
	"github.com/protheus-tools/revisor/lib/storages/orm"
	"github.com/protheus-tools/revisor/lib/utils"
)

const (
	ConfigCompareBranch = "review.compare-branch"

	DefaultCompareBranch = "origin/master"
)

type Workspace struct {
	console consoles.Console
	storage storages.Storage
}

func NewWorkspace(file string) (*Workspace, error) {
	if file == "" {
		if _, err := os.Stat("./.revisor"); err == nil {
			file = "./.revisor/revisor.sqlite"
		} else {
			file = "~/.revisor/revisor.sqlite"
		}
	}

	console := consoles.NewStdOutConsole()

	var storage storages.Storage
	var err error
	switch {
	case file == ":memory:":
		storage, err = orm.NewGormStorage(orm.WithSqliteInMemory(), console)

	case strings.HasSuffix(file, ".sqlite"):
		file, err = utils.PathAbs(file)
		if err != nil {
			return nil, err
		}

		err = createWorkspaceDir(file)
		if err != nil {
			return nil, err
		}

		storage, err = orm.NewGormStorage(orm.WithSqlite(file), console)

	default:
		return nil, fmt.Errorf("unknown storage type for file %v", file)
	}
	if err != nil {
		return nil, err
	}

	return &Workspace{
		console: console,
		storage: storage,
	}, nil
}

func createWorkspaceDir(file string) error {
	path := filepath.Dir(file)

	if _, err := os.Stat(path); err != nil {
		fmt.Printf("Creating workspace at %v\n", path)
		err = os.MkdirAll(path, 0o700)
		if err != nil {
			return err
		}
	}

	return nil
}

func (w *Workspace) Close() error {
	return w.storage.Close()
}

func (w *Workspace) Console() consoles.Console {
	return w.console
}

func (w *Workspace) Storage() storages.Storage {
	return w.storage
}

func (w *Workspace) GetConfig(key, def string) (string, error) {
	cfg, err := w.storage.LoadConfig()
	if err != nil {
		return "", err
	}

	if v, ok := (*cfg)[key]; ok {
		return v, nil
	}
	return def, nil
}

func (w *Workspace) SetConfig(key, value string) error {
	cfg, err := w.storage.LoadConfig()
	if err != nil {
		return err
	}

	(*cfg)[key] = value

	return w.storage.WriteConfig(cfg)
}
