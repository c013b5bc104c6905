package course

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutCourse(c Course) error {
	sj, err := json.Marshal(c.Settings)
	if err != nil {
		return err
	}
	oj, err := json.Marshal(emptyIfNil(c.Objectives))
	if err != nil {
		return err
	}
	qj, err := json.Marshal(c.Quiz)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	if c.CreatedAt == 0 {
		c.CreatedAt = now
	}
	_, err = s.db.Exec(`INSERT INTO courses (id,title,settings_json,objectives_json,quiz_json,video_key,video_name,thumbnail,duration_sec,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, settings_json=EXCLUDED.settings_json,
			objectives_json=EXCLUDED.objectives_json, quiz_json=EXCLUDED.quiz_json,
			video_key=EXCLUDED.video_key, video_name=EXCLUDED.video_name, thumbnail=EXCLUDED.thumbnail,
			duration_sec=EXCLUDED.duration_sec, updated_at=EXCLUDED.updated_at`,
		c.ID, c.Title, string(sj), string(oj), string(qj), c.VideoKey, c.VideoName, c.Thumbnail, c.DurationSec, c.CreatedAt, now)
	return err
}

func (s *SQLStore) GetCourse(id string) (Course, error) {
	row := s.db.QueryRow(`SELECT id,title,settings_json,objectives_json,quiz_json,video_key,video_name,thumbnail,duration_sec,created_at,updated_at
		FROM courses WHERE id=$1`, id)
	return scanCourse(row)
}

func (s *SQLStore) ListCourses() ([]Course, error) {
	rows, err := s.db.Query(`SELECT id,title,settings_json,objectives_json,quiz_json,video_key,video_name,thumbnail,duration_sec,created_at,updated_at
		FROM courses ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteCourse(id string) error {
	res, err := s.db.Exec(`DELETE FROM courses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (Course, error) {
	var c Course
	var sj, oj, qj string
	err := row.Scan(&c.ID, &c.Title, &sj, &oj, &qj, &c.VideoKey, &c.VideoName, &c.Thumbnail, &c.DurationSec, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Course{}, ErrNotFound
		}
		return Course{}, err
	}
	if err := json.Unmarshal([]byte(sj), &c.Settings); err != nil {
		return Course{}, err
	}
	if err := json.Unmarshal([]byte(oj), &c.Objectives); err != nil {
		return Course{}, err
	}
	if err := json.Unmarshal([]byte(qj), &c.Quiz); err != nil {
		return Course{}, err
	}
	return c, nil
}

func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
