// Package fileident implements the flat file identity provider. The
// system id and unit model are read once at startup, the subjects file
// is watched and re-read on change.
package fileident

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gravitational/trace"

	"github.com/edgefleet/fleetiam"
	"github.com/edgefleet/fleetiam/lib/config"
	"github.com/edgefleet/fleetiam/lib/identity"
)

// PluginName is the plugin id used in the identifier config.
const PluginName = "fileidentifier"

func init() {
	identity.RegisterPlugin(PluginName, New)
}

type moduleParams struct {
	SystemIDPath  string `json:"systemIDPath"`
	UnitModelPath string `json:"unitModelPath"`
	SubjectsPath  string `json:"subjectsPath"`
}

// Provider reads identity from flat files.
type Provider struct {
	params   moduleParams
	observer identity.SubjectsObserver
	log      *slog.Logger

	systemID  string
	unitModel string

	mu       sync.Mutex
	subjects []string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates the provider from its config entry.
func New(cfg config.PluginConfig, observer identity.SubjectsObserver) (identity.Provider, error) {
	var params moduleParams
	if len(cfg.Params) != 0 {
		if err := json.Unmarshal(cfg.Params, &params); err != nil {
			return nil, trace.BadParameter("invalid file identifier params: %v", err)
		}
	}

	if params.SystemIDPath == "" || params.UnitModelPath == "" || params.SubjectsPath == "" {
		return nil, trace.BadParameter("systemIDPath, unitModelPath and subjectsPath are required")
	}

	p := &Provider{
		params:   params,
		observer: observer,
		log:      slog.With(fleetiam.ComponentKey, fleetiam.ComponentIdentity, "plugin", PluginName),
		done:     make(chan struct{}),
	}

	systemID, err := readTrimmedFile(params.SystemIDPath)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	p.systemID = systemID

	unitModel, err := readTrimmedFile(params.UnitModelPath)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	p.unitModel = unitModel

	p.subjects = p.readSubjects()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	// Watch the directory, the subjects file is replaced atomically.
	if err := watcher.Add(filepath.Dir(params.SubjectsPath)); err != nil {
		watcher.Close()
		return nil, trace.ConvertSystemError(err)
	}
	p.watcher = watcher

	go p.watchSubjects()

	return p, nil
}

// GetSystemID returns the unit id.
func (p *Provider) GetSystemID() (string, error) {
	return p.systemID, nil
}

// GetUnitModel returns the unit model.
func (p *Provider) GetUnitModel() (string, error) {
	return p.unitModel, nil
}

// GetSubjects returns the current subject set.
func (p *Provider) GetSubjects() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.subjects), nil
}

// Close stops the subjects watcher.
func (p *Provider) Close() error {
	err := p.watcher.Close()
	<-p.done

	return trace.Wrap(err)
}

func (p *Provider) watchSubjects() {
	defer close(p.done)

	for {
		select {
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if event.Name != p.params.SubjectsPath {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
				!event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Remove) {
				continue
			}

			p.updateSubjects()

		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.log.Warn("Subjects watcher error", "error", err)
		}
	}
}

func (p *Provider) updateSubjects() {
	subjects := p.readSubjects()

	p.mu.Lock()
	changed := !slices.Equal(p.subjects, subjects)
	if changed {
		p.subjects = subjects
	}
	p.mu.Unlock()

	if !changed {
		return
	}

	p.log.Info("Subjects changed", "count", len(subjects))

	if p.observer != nil {
		p.observer.OnSubjectsChanged(slices.Clone(subjects))
	}
}

// readSubjects reads one subject per line. A missing file means an
// empty subject set.
func (p *Provider) readSubjects() []string {
	file, err := os.Open(p.params.SubjectsPath)
	if err != nil {
		p.log.Warn("Can't open subjects file, empty subjects will be used", "error", err)
		return nil
	}
	defer file.Close()

	var subjects []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		subject := strings.TrimSpace(scanner.Text())
		if subject == "" {
			continue
		}
		subjects = append(subjects, subject)
	}
	if err := scanner.Err(); err != nil {
		p.log.Warn("Failed to read subjects file", "error", err)
	}

	return subjects
}

func readTrimmedFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", trace.ConvertSystemError(err)
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", trace.BadParameter("file %q is empty", path)
	}

	return value, nil
}
