package source

import (
	"fmt"
	"os"
	"time"

	"game-data-server/src/logger"
	"game-data-server/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// FileSource serves the state described by a YAML fixture. The file is only
// re-checked on Refresh, and reloaded when its modification time or size
// changed; accessors between two refreshes all read the same state. A
// missing or broken file makes the client unreachable.
type FileSource struct {
	Path   string
	Logger *logger.Logger

	state   *StaticSource
	err     error
	loaded  bool
	modTime time.Time
	size    int64
}

// -----------------------------------------------------------------------------

func NewFileSource(path string, log *logger.Logger) *FileSource {
	return &FileSource{Path: path, Logger: log}
}

// -----------------------------------------------------------------------------

// LoadFixture parses a fixture file.
func LoadFixture(path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture '%s': %w", path, err)
	}

	var st StaticSource
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse fixture '%s': %w", path, err)
	}
	return &st, nil
}

// -----------------------------------------------------------------------------

// Refresh re-reads the fixture if it changed on disk since the last call.
func (f *FileSource) Refresh() {
	f.loaded = true
	f.state, f.err = f.load()
}

func (f *FileSource) load() (*StaticSource, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if f.state != nil && info.ModTime().Equal(f.modTime) && info.Size() == f.size {
		return f.state, nil
	}

	st, err := LoadFixture(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if f.Logger != nil {
		f.Logger.Debug("Reloaded game state fixture %s", f.Path)
	}
	f.modTime = info.ModTime()
	f.size = info.Size()
	return st, nil
}

func (f *FileSource) current() (*StaticSource, error) {
	if !f.loaded {
		f.Refresh()
	}
	return f.state, f.err
}

// -----------------------------------------------------------------------------

func (f *FileSource) GameState() (models.RawGameState, error) {
	st, err := f.current()
	if err != nil {
		return "", err
	}
	return st.GameState()
}

func (f *FileSource) GrandExchangeOffers() ([]*models.RawOffer, error) {
	st, err := f.current()
	if err != nil {
		return nil, err
	}
	return st.GrandExchangeOffers()
}

func (f *FileSource) ItemContainer(id models.RawContainerID) (*models.RawItemContainer, error) {
	st, err := f.current()
	if err != nil {
		return nil, err
	}
	return st.ItemContainer(id)
}

func (f *FileSource) Camera() (models.RawCamera, error) {
	st, err := f.current()
	if err != nil {
		return models.RawCamera{}, err
	}
	return st.Camera()
}

func (f *FileSource) LocalPlayer() (*models.RawPlayer, error) {
	st, err := f.current()
	if err != nil {
		return nil, err
	}
	return st.LocalPlayer()
}

func (f *FileSource) ChatLineBuffer(channel models.RawChatChannel) (*models.RawChatLineBuffer, error) {
	st, err := f.current()
	if err != nil {
		return nil, err
	}
	return st.ChatLineBuffer(channel)
}

func (f *FileSource) IsMembersWorld() (bool, error) {
	st, err := f.current()
	if err != nil {
		return false, err
	}
	return st.IsMembersWorld()
}
