package store

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type seedSpecies struct {
	genus    string
	species  string
	common   string
	code     string
	interval int
}

var defaultSpecies = []seedSpecies{
	{"Asparagus", "officinalis", "Asparagus", "ASP-OFF", 28},
	{"Nandina", "domestica", "Heavenly Bamboo", "NAN-DOM", 35},
	{"Citrus", "sinensis", "Sweet Orange", "CIT-SIN", 42},
	{"Citrus", "limon", "Lemon", "CIT-LIM", 42},
	{"Citrus", "paradisi", "Grapefruit", "CIT-PAR", 42},
	{"Citrus", "reticulata", "Mandarin", "CIT-RET", 42},
}

type seedTag struct {
	name  string
	color *string
}

func hex(c string) *string { return &c }

var defaultTags = []struct {
	category string
	tags     []seedTag
}{
	{"Health", []seedTag{
		{"Vigor 1 - Poor", nil},
		{"Vigor 2 - Fair", nil},
		{"Vigor 3 - Good", nil},
		{"Vigor 4 - Very Good", nil},
		{"Vigor 5 - Excellent", nil},
		{"Green", hex("#22c55e")},
		{"Yellow", hex("#eab308")},
		{"Brown", hex("#92400e")},
		{"Orange", hex("#f97316")},
		{"Purple", hex("#a855f7")},
		{"Black", hex("#1c1917")},
		{"Necrosis", hex("#dc2626")},
	}},
	{"Disease", []seedTag{
		{"Bacterial", hex("#ef4444")},
		{"Fungal", hex("#f59e0b")},
		{"Viral", hex("#8b5cf6")},
		{"Viroid", hex("#ec4899")},
		{"Unknown Pathogen", hex("#6b7280")},
	}},
	{"Growth", []seedTag{
		{"Callus Formation", hex("#84cc16")},
		{"Shoot Formation", hex("#22d3ee")},
		{"Root Formation", hex("#a78bfa")},
		{"Embryogenic", hex("#fb923c")},
	}},
	{"Issue", []seedTag{
		{"Contamination", hex("#dc2626")},
		{"Hyperhydricity", hex("#3b82f6")},
		{"Browning", hex("#92400e")},
	}},
	{"Contamination Type", []seedTag{
		{"Bacterial Contam.", hex("#ef4444")},
		{"Fungal Contam.", hex("#f59e0b")},
		{"Yeast Contam.", hex("#fbbf24")},
		{"Endogenous Contam.", hex("#d946ef")},
	}},
	{"Action Needed", []seedTag{
		{"Subculture Due", hex("#3b82f6")},
		{"Quarantine", hex("#dc2626")},
		{"Discard", hex("#1c1917")},
		{"Acclimatize", hex("#22c55e")},
	}},
}

// Seed inserts the bootstrap admin account, baseline species, and the tag
// taxonomy. Each group is seeded only when its table is empty, so calling
// Seed on a populated database changes nothing.
func (s *Store) Seed() error {
	if err := s.seedAdmin(); err != nil {
		return err
	}
	if err := s.seedSpecies(); err != nil {
		return err
	}
	return s.seedTags()
}

func (s *Store) seedAdmin() error {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO users (id, username, password_hash, display_name, email, role)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), "admin", string(hash), "Administrator", "admin@stelolab.local", "admin")
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	return nil
}

func (s *Store) seedSpecies() error {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM species").Scan(&count); err != nil {
		return fmt.Errorf("failed to count species: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, sp := range defaultSpecies {
		_, err := s.db.Exec(`
			INSERT OR IGNORE INTO species (id, genus, species_name, common_name, species_code, default_subculture_interval_days)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), sp.genus, sp.species, sp.common, sp.code, sp.interval)
		if err != nil {
			return fmt.Errorf("failed to seed species %s: %w", sp.code, err)
		}
	}

	return nil
}

func (s *Store) seedTags() error {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tags").Scan(&count); err != nil {
		return fmt.Errorf("failed to count tags: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, group := range defaultTags {
		catID := uuid.NewString()
		_, err := s.db.Exec(`
			INSERT OR IGNORE INTO tags (id, name, category, color) VALUES (?, ?, ?, NULL)
		`, catID, group.category, group.category)
		if err != nil {
			return fmt.Errorf("failed to seed tag category %s: %w", group.category, err)
		}

		for _, t := range group.tags {
			_, err := s.db.Exec(`
				INSERT OR IGNORE INTO tags (id, name, category, parent_tag_id, color) VALUES (?, ?, ?, ?, ?)
			`, uuid.NewString(), t.name, group.category, catID, t.color)
			if err != nil {
				return fmt.Errorf("failed to seed tag %s: %w", t.name, err)
			}
		}
	}

	return nil
}
