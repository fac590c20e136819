package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/engine"
	"github.com/hailam/minichess/internal/match"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyFirstLaunch = "first_launch"
	keyMatchSeq    = "seq/match"
	matchPrefix    = "match/"
)

// Preferences stores the engine settings used by the CLI.
type Preferences struct {
	Difficulty      string      `json:"difficulty"`
	Depth           int         `json:"depth"`
	EngineColor     board.Color `json:"engine_color"`
	UseQuiescence   bool        `json:"use_quiescence"`
	QuiescenceDepth int         `json:"quiescence_depth"`
	TrimThreshold   int         `json:"trim_threshold"`
	LastPlayed      time.Time   `json:"last_played"`
}

// DefaultPreferences returns the medium difficulty settings with the
// engine playing Black.
func DefaultPreferences() *Preferences {
	cfg := engine.ConfigFor(engine.Medium, board.Black)
	return &Preferences{
		Difficulty:      engine.Medium.String(),
		Depth:           cfg.Depth,
		EngineColor:     cfg.Color,
		UseQuiescence:   cfg.UseQuiescence,
		QuiescenceDepth: cfg.QuiescenceDepth,
		TrimThreshold:   cfg.TrimThreshold,
	}
}

// EngineConfig returns the engine configuration described by p.
func (p *Preferences) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig(p.Depth, p.EngineColor, p.UseQuiescence)
	cfg.QuiescenceDepth = p.QuiescenceDepth
	cfg.TrimThreshold = p.TrimThreshold
	return cfg
}

// MatchRecord is a stored engine-versus-engine game.
type MatchRecord struct {
	ID          uint64        `json:"id"`
	PlayedAt    time.Time     `json:"played_at"`
	White       match.Player  `json:"white"`
	Black       match.Player  `json:"black"`
	Plies       int           `json:"plies"`
	Winner      board.Color   `json:"winner"`
	Termination string        `json:"termination"`
	FEN         string        `json:"fen"`
	Moves       []string      `json:"moves"`
	SAN         []string      `json:"san"`
	Nodes       uint64        `json:"nodes"`
	QNodes      uint64        `json:"qnodes"`
	Duration    time.Duration `json:"duration"`
}

// NewMatchRecord builds a record for a game played with cfg.
func NewMatchRecord(cfg match.Config, res *match.Result) MatchRecord {
	moves := make([]string, len(res.Moves))
	for i, m := range res.Moves {
		moves[i] = m.String()
	}

	fen := cfg.FEN
	if fen == "" {
		fen = board.StartFEN
	}
	var san []string
	if start, err := board.ParseFEN(fen); err == nil {
		san = board.MovesToSAN(start, res.Moves)
	}

	return MatchRecord{
		PlayedAt:    time.Now(),
		White:       cfg.White,
		Black:       cfg.Black,
		Plies:       res.Plies,
		Winner:      res.Winner,
		Termination: res.Termination.String(),
		FEN:         fen,
		Moves:       moves,
		SAN:         san,
		Nodes:       res.White.Nodes + res.Black.Nodes,
		QNodes:      res.White.QNodes + res.Black.QNodes,
		Duration:    res.Duration,
	}
}

// Summary aggregates all stored matches.
type Summary struct {
	GamesPlayed   int           `json:"games_played"`
	WhiteWins     int           `json:"white_wins"`
	BlackWins     int           `json:"black_wins"`
	Unfinished    int           `json:"unfinished"`
	TotalPlies    int           `json:"total_plies"`
	TotalNodes    uint64        `json:"total_nodes"`
	TotalPlayTime time.Duration `json:"total_play_time"`
}

// AveragePlies returns the mean game length.
func (s *Summary) AveragePlies() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}

// WhiteScore returns White's win rate as a percentage (0-100), counting
// unfinished games as half.
func (s *Summary) WhiteScore() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return (float64(s.WhiteWins) + float64(s.Unfinished)/2) / float64(s.GamesPlayed) * 100
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens or creates a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open database at %s", dir)
	}

	seq, err := db.GetSequence([]byte(keyMatchSeq), 16)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "match sequence")
	}

	return &Storage{db: db, seq: seq}, nil
}

// Close releases the match sequence and closes the database.
func (s *Storage) Close() error {
	var result *multierror.Error
	if s.seq != nil {
		if err := s.seq.Release(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "release sequence"))
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "close database"))
		}
	}
	return result.ErrorOrNil()
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, errors.Wrap(err, "first launch")
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return errors.Wrap(err, "encode preferences")
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, errors.Wrap(err, "load preferences")
}

// RecordMatch stores rec under a new ID and returns the ID.
func (s *Storage) RecordMatch(rec MatchRecord) (uint64, error) {
	n, err := s.seq.Next()
	if err != nil {
		return 0, errors.Wrap(err, "next match id")
	}
	rec.ID = n + 1

	data, err := json.Marshal(rec)
	if err != nil {
		return 0, errors.Wrap(err, "encode match")
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(matchKey(rec.ID), data)
	})
	if err != nil {
		return 0, errors.Wrapf(err, "store match %d", rec.ID)
	}
	return rec.ID, nil
}

// ListMatches returns every stored match in ID order.
func (s *Storage) ListMatches() ([]MatchRecord, error) {
	var records []MatchRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(matchPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec MatchRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return errors.Wrapf(err, "decode %s", it.Item().Key())
			}
			records = append(records, rec)
		}
		return nil
	})

	return records, errors.Wrap(err, "list matches")
}

// Summary aggregates the stored matches.
func (s *Storage) Summary() (*Summary, error) {
	records, err := s.ListMatches()
	if err != nil {
		return nil, err
	}

	sum := &Summary{}
	for _, rec := range records {
		sum.GamesPlayed++
		sum.TotalPlies += rec.Plies
		sum.TotalNodes += rec.Nodes + rec.QNodes
		sum.TotalPlayTime += rec.Duration

		switch rec.Winner {
		case board.White:
			sum.WhiteWins++
		case board.Black:
			sum.BlackWins++
		default:
			sum.Unfinished++
		}
	}
	return sum, nil
}

// matchKey zero-pads the ID so keys sort numerically.
func matchKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", matchPrefix, id))
}
