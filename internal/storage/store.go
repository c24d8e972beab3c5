// Package storage keeps saved snapshots of the drawing surface and the reply
// it produced, one directory per snapshot.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/digitlive/internal/predict"
)

const (
	frameFile = "frame.png"
	metaFile  = "meta.json"
	probsFile = "probabilities.csv"
)

var ErrNoFrame = errors.New("storage: snapshot has no frame")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Snapshot is the metadata written next to each saved frame.
type Snapshot struct {
	ID         string    `json:"id"`
	Session    string    `json:"session,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	View       string    `json:"view"`
	HasResult  bool      `json:"has_result"`
	Prediction int       `json:"prediction"`
	Confidence float64   `json:"confidence"`
}

// Entry is what the client hands over when saving.
type Entry struct {
	Session string
	View    string
	Frame   []byte
	Result  *predict.Result
}

// Save writes e under a fresh ID and returns it.
func (s *Store) Save(e Entry) (string, error) {
	if len(e.Frame) == 0 {
		return "", ErrNoFrame
	}

	id := uuid.NewString()
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, frameFile), e.Frame, 0644); err != nil {
		return "", err
	}

	meta := Snapshot{
		ID:         id,
		Session:    e.Session,
		Timestamp:  time.Now(),
		View:       e.View,
		Prediction: -1,
	}
	if e.Result != nil {
		meta.HasResult = true
		meta.Prediction = e.Result.Prediction
		meta.Confidence = e.Result.Confidence
	}

	mf, err := os.Create(filepath.Join(dir, metaFile))
	if err != nil {
		return "", err
	}
	defer mf.Close()

	enc := json.NewEncoder(mf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if e.Result == nil {
		return id, nil
	}

	csvFile, err := os.Create(filepath.Join(dir, probsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"digit", "probability"}); err != nil {
		return "", err
	}
	for d, p := range e.Result.Probabilities {
		row := []string{strconv.Itoa(d), strconv.FormatFloat(p, 'f', 6, 64)}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return id, nil
}

// List returns every readable snapshot, newest first.
func (s *Store) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Snapshot{}, nil
		}
		return nil, err
	}

	snaps := make([]Snapshot, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}

	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Timestamp.After(snaps[j].Timestamp)
	})
	return snaps, nil
}

func (s *Store) Load(id string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metaFile))
	if err != nil {
		return nil, err
	}

	var meta Snapshot
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrame returns the PNG bytes of a snapshot.
func (s *Store) LoadFrame(id string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.baseDir, id, frameFile))
}

// LoadProbabilities reads back the probability vector of a snapshot.
func (s *Store) LoadProbabilities(id string) ([predict.Digits]float64, error) {
	var probs [predict.Digits]float64

	file, err := os.Open(filepath.Join(s.baseDir, id, probsFile))
	if err != nil {
		return probs, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return probs, err
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != 2 {
			return probs, fmt.Errorf("storage: bad row %d in %s", i, probsFile)
		}
		d, err := strconv.Atoi(record[0])
		if err != nil || d < 0 || d >= predict.Digits {
			return probs, fmt.Errorf("storage: bad digit %q", record[0])
		}
		p, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return probs, err
		}
		probs[d] = p
	}
	return probs, nil
}

// Path returns the directory holding snapshot id.
func (s *Store) Path(id string) string {
	return filepath.Join(s.baseDir, id)
}
