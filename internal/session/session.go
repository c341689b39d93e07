// Package session persists chat transcripts as JSON files so a run of the
// assistant can be reviewed later.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/DataBuoy/databuoy-cli/internal/utils"
	"github.com/google/uuid"
)

// Turn is one question/answer exchange. Output, Figure, and Error mirror
// the result of the query that produced the turn.
type Turn struct {
	ID      string          `json:"id"`
	Role    string          `json:"role"`
	Content string          `json:"content"`
	Output  *string         `json:"output,omitempty"`
	Figure  json.RawMessage `json:"figure,omitempty"`
	Error   *string         `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
	At      time.Time       `json:"at"`
}

// Session is a recorded conversation with the dataset assistant.
type Session struct {
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	Provider  string    `json:"provider"`
	Dataset   string    `json:"dataset"`
	Turns     []Turn    `json:"turns"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Not serialized: directory the session saves into.
	dir string
}

// New constructs an in-memory session. Call Save to persist.
func New(dir, provider, model, dataset string) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Model:     model,
		Provider:  provider,
		Dataset:   dataset,
		CreatedAt: now,
		UpdatedAt: now,
		dir:       dir,
	}
}

// Append records one turn and stamps it.
func (s *Session) Append(t Turn) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.At.IsZero() {
		t.At = time.Now()
	}
	s.Turns = append(s.Turns, t)
	s.UpdatedAt = time.Now()
}

// Path returns the on-disk location the session saves to.
func (s *Session) Path() string {
	return filepath.Join(s.dir, s.ID+".json")
}

// Save writes the transcript using an atomic write.
func (s *Session) Save() error {
	if s.dir == "" {
		return errors.New("session directory not set")
	}
	if err := utils.EnsureDir(s.dir); err != nil {
		return fmt.Errorf("ensure sessions dir: %w", err)
	}
	s.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(s)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(s.Path(), data)
}

// Load reads a session file by ID from dir.
func Load(dir, id string) (*Session, error) {
	path := filepath.Join(dir, id+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("session not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	s.dir = dir
	return &s, nil
}

// List returns the IDs of saved sessions, newest first.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sessions dir: %w", err)
	}
	type stamped struct {
		id  string
		mod time.Time
	}
	var found []stamped
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		found = append(found, stamped{id: strings.TrimSuffix(e.Name(), ".json"), mod: info.ModTime()})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].mod.After(found[j].mod) })
	ids := make([]string, len(found))
	for i, f := range found {
		ids[i] = f.id
	}
	return ids, nil
}
