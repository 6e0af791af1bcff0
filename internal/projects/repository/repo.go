package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/linkforge-app/linkforge-backend/internal/projects/domain"
)

const (
	projectsKey     = "linkforge:projects"        // Serialized project collection
	settingsKey     = "linkforge:settings"        // Serialized global settings
	backupKeyPrefix = "linkforge:projects:backup:" // Timestamped snapshots: linkforge:projects:backup:{unix}
	backupTTL       = 7 * 24 * time.Hour
)

// Repo persists the project collection and the global settings in two Redis
// string slots. Every write replaces the whole collection; there is no
// field-level persistence.
type Repo struct {
	client *redis.Client
}

func New(client *redis.Client) *Repo {
	return &Repo{client: client}
}

// List returns all stored projects. A missing slot is an empty collection.
func (r *Repo) List(ctx context.Context) ([]domain.Project, error) {
	data, err := r.client.Get(ctx, projectsKey).Result()
	if err == redis.Nil {
		return []domain.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	var projects []domain.Project
	if err := json.Unmarshal([]byte(data), &projects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projects: %w", err)
	}

	return projects, nil
}

// Get returns the project with the given id.
func (r *Repo) Get(ctx context.Context, id string) (domain.Project, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return domain.Project{}, err
	}

	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}

	return domain.Project{}, domain.ErrProjectNotFound
}

// Create validates the incoming project, assigns its identity fields and
// appends it to the collection.
func (r *Repo) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return domain.Project{}, err
	}

	p.ID = newID()
	p.CreatedAt = time.Now().UTC()

	projects, err := r.List(ctx)
	if err != nil {
		return domain.Project{}, err
	}

	projects = append(projects, p)
	if err := r.saveAll(ctx, projects); err != nil {
		return domain.Project{}, err
	}

	return p, nil
}

// Update replaces the stored record with the incoming field values. The id
// and creation timestamp of the existing record are preserved.
func (r *Repo) Update(ctx context.Context, id string, in domain.Project) (domain.Project, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return domain.Project{}, err
	}

	projects, err := r.List(ctx)
	if err != nil {
		return domain.Project{}, err
	}

	for i := range projects {
		if projects[i].ID != id {
			continue
		}
		projects[i].ApplyUpdate(in)
		if err := r.saveAll(ctx, projects); err != nil {
			return domain.Project{}, err
		}
		return projects[i], nil
	}

	return domain.Project{}, domain.ErrProjectNotFound
}

// Remove deletes the project with the given id from the collection.
func (r *Repo) Remove(ctx context.Context, id string) error {
	projects, err := r.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]domain.Project, 0, len(projects))
	found := false
	for _, p := range projects {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return domain.ErrProjectNotFound
	}

	return r.saveAll(ctx, kept)
}

// LoadSettings returns the global settings. A missing slot yields the zero
// value, meaning no credential is configured.
func (r *Repo) LoadSettings(ctx context.Context) (domain.Settings, error) {
	data, err := r.client.Get(ctx, settingsKey).Result()
	if err == redis.Nil {
		return domain.Settings{}, nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	var s domain.Settings
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return s, nil
}

// SaveSettings overwrites the settings slot.
func (r *Repo) SaveSettings(ctx context.Context, s domain.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := r.client.Set(ctx, settingsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// Backup copies the current project collection to a timestamped key so a bad
// write can be recovered by hand. Returns the backup key.
func (r *Repo) Backup(ctx context.Context) (string, error) {
	data, err := r.client.Get(ctx, projectsKey).Result()
	if err == redis.Nil {
		data = "[]"
	} else if err != nil {
		return "", fmt.Errorf("failed to read projects for backup: %w", err)
	}

	key := fmt.Sprintf("%s%d", backupKeyPrefix, time.Now().UTC().Unix())
	if err := r.client.Set(ctx, key, data, backupTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	return key, nil
}

func (r *Repo) saveAll(ctx context.Context, projects []domain.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("failed to marshal projects: %w", err)
	}

	if err := r.client.Set(ctx, projectsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save projects: %w", err)
	}

	return nil
}

// newID builds an identifier from the creation instant plus a uuid fragment.
// Unique within a process lifetime; cross-process collisions are out of scope.
func newID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}
