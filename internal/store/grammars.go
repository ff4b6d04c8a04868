package store

import (
	"context"
	"fmt"

	"github.com/andrewwinslow/grammar-approx/internal/grammar"
	"github.com/dekarrin/rezi"
)

// grammarDTO is the exported, reflection-friendly view of a grammar.Grammar
// that rezi encodes: grammar.Grammar keeps its rules map unexported, so
// SaveGrammar/LoadGrammar round-trip through this DTO rather than teaching
// rezi to reach into the grammar package's internals.
type grammarDTO struct {
	Keys []string
	RHS  [][]string
}

// MarshalBinary implements encoding.BinaryMarshaler by REZI-encoding each
// field in turn: a length-prefixed encoding of each field, concatenated.
func (d grammarDTO) MarshalBinary() ([]byte, error) {
	keysEnc, err := rezi.Enc(d.Keys)
	if err != nil {
		return nil, fmt.Errorf("encoding grammar keys: %w", err)
	}
	rhsEnc, err := rezi.Enc(d.RHS)
	if err != nil {
		return nil, fmt.Errorf("encoding grammar RHSes: %w", err)
	}
	return append(keysEnc, rhsEnc...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, the inverse of
// MarshalBinary.
func (d *grammarDTO) UnmarshalBinary(data []byte) error {
	var keys []string
	n, err := rezi.Dec(data, &keys)
	if err != nil {
		return fmt.Errorf("decoding grammar keys: %w", err)
	}
	data = data[n:]

	var rhss [][]string
	if _, err := rezi.Dec(data, &rhss); err != nil {
		return fmt.Errorf("decoding grammar RHSes: %w", err)
	}

	d.Keys = keys
	d.RHS = rhss
	return nil
}

func toDTO(g *grammar.Grammar) grammarDTO {
	keys, rhss := g.Entries()
	return grammarDTO{Keys: keys, RHS: rhss}
}

func (d grammarDTO) toGrammar() *grammar.Grammar {
	return grammar.FromEntries(d.Keys, d.RHS)
}

// SaveGrammar rezi-encodes g and stores it keyed by (runID, algorithm, n,
// sampleIndex).
func (s *Store) SaveGrammar(ctx context.Context, runID, algorithm string, n, sampleIndex int, g *grammar.Grammar) error {
	dto := toDTO(g)
	data := rezi.EncBinary(dto)

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO grammars (run_id, algorithm, n, sample_index, data) VALUES (?, ?, ?, ?, ?)`,
		runID, algorithm, n, sampleIndex, data,
	)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// LoadGrammar retrieves and decodes the grammar stored for (runID,
// algorithm, n, sampleIndex).
func (s *Store) LoadGrammar(ctx context.Context, runID, algorithm string, n, sampleIndex int) (*grammar.Grammar, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT data FROM grammars WHERE run_id = ? AND algorithm = ? AND n = ? AND sample_index = ?`,
		runID, algorithm, n, sampleIndex,
	)

	var data []byte
	if err := row.Scan(&data); err != nil {
		return nil, wrapDBError(err)
	}

	var dto grammarDTO
	if _, err := rezi.DecBinary(data, &dto); err != nil {
		return nil, fmt.Errorf("decoding stored grammar: %w", err)
	}
	return dto.toGrammar(), nil
}
