package session

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// User is the serialized current-user object kept next to the token.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Record is the single persisted session row. The user object is stored as a
// JSON blob so a partially written or hand-edited row degrades to "logged out"
// instead of failing to scan.
type Record struct {
	ID        int64     `gorm:"primaryKey"`
	Token     string    `gorm:"not null"`
	UserJSON  string    `gorm:"column:user_json"`
	UpdatedAt time.Time
}

func (Record) TableName() string { return "sessions" }

// The store is keyed globally, not per invocation: one session per state db.
const recordID = 1

// Store persists the auth token and current user across runs. It is the only
// writer of the session row; everything else reads through it.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Save replaces the persisted session in a single upsert.
func (s *Store) Save(token string, u User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}

	rec := Record{ID: recordID, Token: token, UserJSON: string(raw)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "user_json", "updated_at"}),
	}).Create(&rec).Error
}

// Clear removes the persisted session. Clearing an absent session is a no-op.
func (s *Store) Clear() error {
	return s.db.Delete(&Record{}, recordID).Error
}

// Token returns the persisted bearer token, or "" when logged out.
func (s *Store) Token() string {
	rec, ok := s.load()
	if !ok {
		return ""
	}
	return rec.Token
}

// IsLoggedIn reports token presence only; freshness is discovered lazily on
// the next API call.
func (s *Store) IsLoggedIn() bool {
	return s.Token() != ""
}

// CurrentUser returns the persisted user, or nil when logged out. A corrupt
// row is treated as logged out, never as an error.
func (s *Store) CurrentUser() *User {
	rec, ok := s.load()
	if !ok {
		return nil
	}

	var u User
	if err := json.Unmarshal([]byte(rec.UserJSON), &u); err != nil {
		return nil
	}
	if strings.TrimSpace(u.Email) == "" {
		return nil
	}
	return &u
}

func (s *Store) load() (*Record, bool) {
	var rec Record
	err := s.db.First(&rec, recordID).Error
	if err != nil || strings.TrimSpace(rec.Token) == "" {
		return nil, false
	}
	return &rec, true
}
