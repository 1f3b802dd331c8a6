package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ayusman/mudra/internal/geom"
	"github.com/ayusman/mudra/internal/sign"
)

// CustomPose is a user-defined letter pose persisted alongside the built-in
// library. Finger requirements and direction hints live in child tables and
// are loaded together with the pose.
type CustomPose struct {
	ID            string
	Letter        string
	RequirePinch  bool
	RequireCircle bool
	Requirements  [sign.NumFingers]sign.Requirement
	Directions    map[sign.Finger]geom.Vec3
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Definition converts the stored pose into a matchable library definition.
func (p *CustomPose) Definition() sign.Definition {
	def := sign.Definition{
		Letter:        p.Letter,
		Curls:         p.Requirements,
		RequirePinch:  p.RequirePinch,
		RequireCircle: p.RequireCircle,
	}
	if len(p.Directions) > 0 {
		def.Directions = make(map[sign.Finger]geom.Vec3, len(p.Directions))
		for f, d := range p.Directions {
			def.Directions[f] = d
		}
	}
	return def
}

// PoseRepository provides CRUD operations for custom poses.
type PoseRepository struct {
	db *sql.DB
}

// Poses returns the custom pose repository for this store.
func (s *Store) Poses() *PoseRepository {
	return &PoseRepository{db: s.db}
}

// Create inserts a pose with its finger requirements and directions in a
// single transaction.
func (r *PoseRepository) Create(p *CustomPose) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO custom_poses (id, letter, require_pinch, require_circle, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Letter, p.RequirePinch, p.RequireCircle, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if err := insertPoseChildren(tx, p); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByLetter retrieves a pose by its letter.
func (r *PoseRepository) GetByLetter(letter string) (*CustomPose, error) {
	p := &CustomPose{}

	err := r.db.QueryRow(
		`SELECT id, letter, require_pinch, require_circle, created_at, updated_at
		 FROM custom_poses WHERE letter = ?`,
		letter,
	).Scan(&p.ID, &p.Letter, &p.RequirePinch, &p.RequireCircle, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := r.loadChildren(p); err != nil {
		return nil, err
	}
	return p, nil
}

// List retrieves all custom poses ordered by letter.
func (r *PoseRepository) List() ([]*CustomPose, error) {
	rows, err := r.db.Query(
		`SELECT id, letter, require_pinch, require_circle, created_at, updated_at
		 FROM custom_poses ORDER BY letter ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var poses []*CustomPose
	for rows.Next() {
		p := &CustomPose{}
		if err := rows.Scan(&p.ID, &p.Letter, &p.RequirePinch, &p.RequireCircle, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		poses = append(poses, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range poses {
		if err := r.loadChildren(p); err != nil {
			return nil, err
		}
	}
	return poses, nil
}

// Update replaces a pose's gates, requirements and directions.
func (r *PoseRepository) Update(p *CustomPose) error {
	p.UpdatedAt = time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE custom_poses SET letter = ?, require_pinch = ?, require_circle = ?, updated_at = ?
		 WHERE id = ?`,
		p.Letter, p.RequirePinch, p.RequireCircle, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM pose_fingers WHERE pose_id = ?`, p.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM pose_directions WHERE pose_id = ?`, p.ID); err != nil {
		return err
	}
	if err := insertPoseChildren(tx, p); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a pose and its child rows by ID.
func (r *PoseRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM custom_poses WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PoseRepository) loadChildren(p *CustomPose) error {
	rows, err := r.db.Query(
		`SELECT finger, requirement FROM pose_fingers WHERE pose_id = ?`, p.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var finger int
		var requirement string
		if err := rows.Scan(&finger, &requirement); err != nil {
			return err
		}
		if finger < 0 || finger >= int(sign.NumFingers) {
			return fmt.Errorf("pose %s: finger index %d out of range", p.ID, finger)
		}
		req, err := parseRequirement(requirement)
		if err != nil {
			return fmt.Errorf("pose %s: %w", p.ID, err)
		}
		p.Requirements[finger] = req
	}
	if err := rows.Err(); err != nil {
		return err
	}

	dirRows, err := r.db.Query(
		`SELECT finger, x, y, z FROM pose_directions WHERE pose_id = ?`, p.ID,
	)
	if err != nil {
		return err
	}
	defer dirRows.Close()

	for dirRows.Next() {
		var finger int
		var x, y, z float64
		if err := dirRows.Scan(&finger, &x, &y, &z); err != nil {
			return err
		}
		if finger < 0 || finger >= int(sign.NumFingers) {
			return fmt.Errorf("pose %s: finger index %d out of range", p.ID, finger)
		}
		if p.Directions == nil {
			p.Directions = make(map[sign.Finger]geom.Vec3)
		}
		p.Directions[sign.Finger(finger)] = geom.Vec3{X: x, Y: y, Z: z}
	}
	return dirRows.Err()
}

func insertPoseChildren(tx *sql.Tx, p *CustomPose) error {
	for f := sign.Thumb; f < sign.NumFingers; f++ {
		if p.Requirements[f] == sign.Any {
			continue
		}
		_, err := tx.Exec(
			`INSERT INTO pose_fingers (pose_id, finger, requirement) VALUES (?, ?, ?)`,
			p.ID, int(f), p.Requirements[f].String(),
		)
		if err != nil {
			return err
		}
	}
	for f, d := range p.Directions {
		_, err := tx.Exec(
			`INSERT INTO pose_directions (pose_id, finger, x, y, z) VALUES (?, ?, ?, ?, ?)`,
			p.ID, int(f), d.X, d.Y, d.Z,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func parseRequirement(s string) (sign.Requirement, error) {
	switch s {
	case "any":
		return sign.Any, nil
	case "open":
		return sign.MustBeOpen, nil
	case "closed":
		return sign.MustBeClosed, nil
	default:
		return sign.Any, fmt.Errorf("unknown finger requirement %q", s)
	}
}
