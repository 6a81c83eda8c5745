package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/ticketflow/internal/model"
)

// ProjectRepo encapsulates all database queries related to projects. It
// depends on a sql.DB connection which is configured at startup.
type ProjectRepo struct{ DB *sql.DB }

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{DB: db} }

// Create inserts a new project. On success the ID, CreatedAt and
// UpdatedAt fields are populated from the stored row so callers receive
// a fully populated record.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO projects (title, description, created_by) VALUES (?,?,?)",
		p.Title, p.Description, p.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT title, description, created_by, created_at, updated_at FROM projects WHERE id=?",
		p.ID).Scan(&p.Title, &p.Description, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID fetches a project by id. Returns ErrProjectNotFound when no
// row matches.
func (r *ProjectRepo) GetByID(ctx context.Context, id uint64) (model.Project, error) {
	var p model.Project
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, description, created_by, created_at, updated_at FROM projects WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.Title, &p.Description, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, ErrProjectNotFound
	}
	return p, err
}

// List returns every project joined with its creator's email and ticket
// count, ordered by id. Creator email is nullable because projects keep
// a loose reference: the join may miss.
func (r *ProjectRepo) List(ctx context.Context) ([]model.ProjectSummary, error) {
	const q = `
		SELECT p.id, p.title, p.description, p.created_by, u.email, COUNT(t.id)
		FROM projects p
		LEFT JOIN users u ON u.id = p.created_by
		LEFT JOIN tickets t ON t.project_id = p.id
		GROUP BY p.id, p.title, p.description, p.created_by, u.email
		ORDER BY p.id`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ProjectSummary{}
	for rows.Next() {
		var s model.ProjectSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.CreatedBy, &s.CreatorEmail, &s.TicketCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
