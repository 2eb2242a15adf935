package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"profilehub/internal/domain"
	"profilehub/internal/repository"
)

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS profiles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	full_name TEXT NOT NULL,
	mobile TEXT NOT NULL,
	email TEXT NOT NULL,
	location TEXT NOT NULL,
	bio TEXT NOT NULL,
	profile_image_data BLOB NULL,
	profile_image_mime TEXT NULL,
	profile_image_name TEXT NULL,
	cover_image_data BLOB NULL,
	cover_image_mime TEXT NULL,
	cover_image_name TEXT NULL,
	created_at DATETIME NOT NULL
);
`

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProfilesTable); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) (int64, error) {
	profile.CreatedAt = time.Now().UTC()

	profileData, profileMIME, profileName := imageColumns(profile.ProfileImage)
	coverData, coverMIME, coverName := imageColumns(profile.CoverImage)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO profiles (full_name, mobile, email, location, bio, profile_image_data, profile_image_mime, profile_image_name, cover_image_data, cover_image_mime, cover_image_name, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.FullName,
		profile.Mobile,
		profile.Email,
		profile.Location,
		profile.Bio,
		profileData,
		profileMIME,
		profileName,
		coverData,
		coverMIME,
		coverName,
		profile.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert profile: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("profile last insert id: %w", err)
	}
	profile.ID = id
	return id, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, full_name, mobile, email, location, bio, profile_image_data, profile_image_mime, profile_image_name, cover_image_data, cover_image_mime, cover_image_name, created_at
FROM profiles
ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}

func imageColumns(img *domain.Image) ([]byte, sql.NullString, sql.NullString) {
	var data []byte
	var mime, name sql.NullString
	if img == nil {
		return data, mime, name
	}
	data = img.Data
	if img.MIME != "" {
		mime = sql.NullString{String: img.MIME, Valid: true}
	}
	if img.Name != "" {
		name = sql.NullString{String: img.Name, Valid: true}
	}
	return data, mime, name
}

func scanProfile(rows *sql.Rows) (*domain.Profile, error) {
	var (
		profile                  domain.Profile
		profileData, coverData   []byte
		profileMIME, profileName sql.NullString
		coverMIME, coverName     sql.NullString
	)
	if err := rows.Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Mobile,
		&profile.Email,
		&profile.Location,
		&profile.Bio,
		&profileData,
		&profileMIME,
		&profileName,
		&coverData,
		&coverMIME,
		&coverName,
		&profile.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	profile.ProfileImage = imageFromColumns(profileData, profileMIME, profileName)
	profile.CoverImage = imageFromColumns(coverData, coverMIME, coverName)
	return &profile, nil
}

func imageFromColumns(data []byte, mime, name sql.NullString) *domain.Image {
	if len(data) == 0 && !name.Valid {
		return nil
	}
	return &domain.Image{
		Data: data,
		MIME: mime.String,
		Name: name.String,
	}
}
