package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const credentialsKey = "villays_credentials"

// CredentialStore is the slice of persistence the local provider needs. The
// durable key-value store satisfies it.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type credentialRecord struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar"`
	Points       int    `json:"points"`
	PasswordHash string `json:"passwordHash"`
}

// LocalProvider keeps real credential records, hashed with argon2id, in the
// durable store. It is the non-demo counterpart of MockProvider.
type LocalProvider struct {
	store CredentialStore
	newID func() string
}

// NewLocalProvider builds a provider over the given store. A nil idGenerator
// defaults to random UUIDs.
func NewLocalProvider(store CredentialStore, idGenerator func() string) *LocalProvider {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	return &LocalProvider{store: store, newID: idGenerator}
}

// Authenticate verifies the password against the stored record for the email.
func (p *LocalProvider) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return User{}, ErrInvalidCredentials
	}

	records, err := p.load(ctx)
	if err != nil {
		return User{}, err
	}
	record, ok := records[email]
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := verifyPassword(record.PasswordHash, creds.Password); err != nil {
		if errors.Is(err, errMalformedHash) {
			return User{}, fmt.Errorf("credential record for %s: %w", email, err)
		}
		return User{}, err
	}
	return record.user(), nil
}

// Register creates a credential record for a new email address.
func (p *LocalProvider) Register(ctx context.Context, creds Credentials) (User, error) {
	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return User{}, ErrInvalidCredentials
	}

	records, err := p.load(ctx)
	if err != nil {
		return User{}, err
	}
	if _, exists := records[email]; exists {
		return User{}, ErrEmailTaken
	}

	hash, err := hashPassword(creds.Password, defaultArgonParams)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	record := credentialRecord{
		ID:           p.newID(),
		FirstName:    strings.TrimSpace(creds.FirstName),
		LastName:     strings.TrimSpace(creds.LastName),
		Email:        email,
		Avatar:       defaultAvatar,
		PasswordHash: hash,
	}
	if record.FirstName == "" {
		record.FirstName = "New"
	}
	if record.LastName == "" {
		record.LastName = "Member"
	}
	records[email] = record

	if err := p.save(ctx, records); err != nil {
		return User{}, err
	}
	return record.user(), nil
}

func (p *LocalProvider) load(ctx context.Context) (map[string]credentialRecord, error) {
	raw, ok, err := p.store.Get(ctx, credentialsKey)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	records := make(map[string]credentialRecord)
	if !ok || raw == "" {
		return records, nil
	}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	return records, nil
}

func (p *LocalProvider) save(ctx context.Context, records map[string]credentialRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := p.store.Set(ctx, credentialsKey, string(raw)); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (r credentialRecord) user() User {
	return User{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Avatar:    r.Avatar,
		Points:    r.Points,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
