package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// NewRepositories builds the repository set bound to db
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:          NewUserRepository(db),
		Events:         NewEventRepository(db),
		Teams:          NewTeamRepository(db),
		Participations: NewParticipationRepository(db),
		Offers:         NewOfferRepository(db),
		Clubs:          NewClubRepository(db),
		Results:        NewResultRepository(db),
	}
}

// Transactor runs units of work in gorm transactions
type Transactor struct {
	db *gorm.DB
}

// NewTransactor creates a new transactor
func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// Transaction runs fn with repositories bound to a READ COMMITTED transaction.
// Capacity checks rely on row locks taken with GetByIDForUpdate inside fn.
func (t *Transactor) Transaction(ctx context.Context, fn func(repos Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}
