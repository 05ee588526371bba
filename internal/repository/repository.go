package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/jobhub-dev/jobhub/backend/internal/config"
	"github.com/jobhub-dev/jobhub/backend/internal/domain"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// skills and location live in jsonb columns, so they travel as raw bytes.

func marshalSkills(skills []string) ([]byte, error) {
	if skills == nil {
		skills = []string{}
	}
	return json.Marshal(skills)
}

func unmarshalSkills(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var skills []string
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func marshalLocation(loc *domain.Location) (any, error) {
	if loc == nil {
		return nil, nil
	}
	return json.Marshal(loc)
}

func unmarshalLocation(data []byte) (*domain.Location, error) {
	if len(data) == 0 {
		return nil, nil
	}
	loc := &domain.Location{}
	if err := json.Unmarshal(data, loc); err != nil {
		return nil, err
	}
	return loc, nil
}
