package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Storage handles all database operations
type Storage struct {
	db *sql.DB
}

// NewStorage creates a new Storage instance, opening/creating the DB and initializing schema
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	storage := &Storage{db: db}

	// Initialize schema
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

// initSchema creates tables and indices if they don't exist
func (s *Storage) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS proofs (
		proof_id INTEGER PRIMARY KEY AUTOINCREMENT,
		question TEXT NOT NULL,
		mode TEXT NOT NULL,
		goal REAL NOT NULL,
		steps TEXT NOT NULL DEFAULT '[]',
		found INTEGER NOT NULL DEFAULT 0,
		fallback INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_proofs_found ON proofs(found);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveProof inserts a proof and returns its proof_id
func (s *Storage) SaveProof(p *Proof) (int, error) {
	steps := p.Steps
	if steps == nil {
		steps = []string{}
	}
	encoded, err := json.Marshal(steps)
	if err != nil {
		return 0, fmt.Errorf("failed to encode steps: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO proofs (question, mode, goal, steps, found, fallback)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.Question, p.Mode, p.Goal, string(encoded), p.Found, p.Fallback)
	if err != nil {
		return 0, fmt.Errorf("failed to insert proof: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve proof_id: %w", err)
	}

	return int(id), nil
}

// GetProof retrieves a proof by ID, returns nil if not found
func (s *Storage) GetProof(proofID int) (*Proof, error) {
	row := s.db.QueryRow(`
		SELECT proof_id, question, mode, goal, steps, found, fallback, created_at
		FROM proofs
		WHERE proof_id = ?
	`, proofID)

	proof, err := scanProof(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proof: %w", err)
	}

	return proof, nil
}

// RecentProofs returns up to limit proofs, newest first
func (s *Storage) RecentProofs(limit int) ([]*Proof, error) {
	rows, err := s.db.Query(`
		SELECT proof_id, question, mode, goal, steps, found, fallback, created_at
		FROM proofs
		ORDER BY proof_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load proofs: %w", err)
	}
	defer rows.Close()

	proofs := []*Proof{}
	for rows.Next() {
		proof, err := scanProof(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proof: %w", err)
		}
		proofs = append(proofs, proof)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating proofs: %w", err)
	}

	return proofs, nil
}

// CountProofs returns how many proofs were found out of the total recorded
func (s *Storage) CountProofs() (found, total int, err error) {
	err = s.db.QueryRow(`
		SELECT COALESCE(SUM(found), 0), COUNT(*) FROM proofs
	`).Scan(&found, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count proofs: %w", err)
	}
	return found, total, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProof(sc scanner) (*Proof, error) {
	var p Proof
	var steps string
	if err := sc.Scan(&p.ProofID, &p.Question, &p.Mode, &p.Goal, &steps, &p.Found, &p.Fallback, &p.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(steps), &p.Steps); err != nil {
		return nil, fmt.Errorf("failed to decode steps: %w", err)
	}
	return &p, nil
}
