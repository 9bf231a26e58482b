// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/danielhkuo/enquete/apperr"
	"github.com/danielhkuo/enquete/models"
)

// EffectiveActive computes a poll's real activeness: the stored flag is only
// trusted while the deadline has not passed.
func EffectiveActive(p *models.Poll, now time.Time) bool {
	return p.Ativa && p.DataFim.After(now)
}

// EnsureFresh applies the lazy correction: a poll observed past its deadline
// with ativa still set gets the flag persisted false before the caller uses
// it. Idempotent, and commutes with SweepExpired.
func EnsureFresh(gdb *gorm.DB, p *models.Poll, now time.Time) error {
	if !p.Ativa || p.DataFim.After(now) {
		return nil
	}
	err := gdb.Model(&models.Poll{}).Where("id = ?", p.ID).Update("ativa", false).Error
	if err != nil {
		return err
	}
	p.Ativa = false
	return nil
}

// SweepExpired bulk-deactivates every poll whose deadline has passed.
// Returns the number of rows flipped.
func SweepExpired(gdb *gorm.DB, now time.Time) (int64, error) {
	res := gdb.Model(&models.Poll{}).
		Where("ativa = ? AND data_fim < ?", true, now).
		Update("ativa", false)
	return res.RowsAffected, res.Error
}

// CastVote runs the vote state transition for (userID, optionID):
//
//   - voting the option already held toggles the vote off (action=removed)
//   - voting a different option of the same poll switches silently
//     (action=created)
//   - otherwise a new vote is created (action=created)
//
// The scan-and-write sequence runs in one transaction so two racing requests
// cannot both observe "no existing vote"; the (user_id, opcao_id) unique
// index backstops identical double submissions.
func CastVote(gdb *gorm.DB, userID, opcaoID uint) (*models.VoteResponse, error) {
	var opcao models.Option
	if err := gdb.First(&opcao, opcaoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Option not found.")
		}
		return nil, err
	}

	var poll models.Poll
	if err := gdb.First(&poll, opcao.EnqueteID).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	if err := EnsureFresh(gdb, &poll, now); err != nil {
		return nil, err
	}
	if !EffectiveActive(&poll, now) {
		return nil, apperr.InvalidState("This poll is no longer active.")
	}

	var resp *models.VoteResponse
	err := gdb.Transaction(func(tx *gorm.DB) error {
		// Lock the poll's option rows so two concurrent requests for
		// different options serialize. The vote scan alone locks nothing
		// when the user has not voted yet. Sqlite drops the clause, where
		// single-writer semantics already serialize the transactions.
		var locked []models.Option
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("enquete_id = ?", poll.ID).
			Find(&locked).Error
		if err != nil {
			return err
		}

		// Vote has no poll column; reach the poll through the option.
		var existing []models.Vote
		err = tx.
			Joins("JOIN opcoes ON opcoes.id = votos.opcao_id").
			Where("votos.user_id = ? AND opcoes.enquete_id = ?", userID, poll.ID).
			Find(&existing).Error
		if err != nil {
			return err
		}

		for _, v := range existing {
			if v.OpcaoID == opcaoID {
				if err := tx.Delete(&models.Vote{}, v.ID).Error; err != nil {
					return err
				}
				resp = &models.VoteResponse{
					Message: "Vote removed.",
					Action:  models.VoteActionRemoved,
					OpcaoID: v.OpcaoID,
				}
				return nil
			}
		}

		if len(existing) > 0 {
			if err := tx.Delete(&models.Vote{}, existing[0].ID).Error; err != nil {
				return err
			}
		}

		vote := models.Vote{UserID: userID, OpcaoID: opcaoID}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		resp = &models.VoteResponse{
			Message: "Vote registered successfully!",
			Action:  models.VoteActionCreated,
			OpcaoID: opcaoID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// OptionTallies returns the derived vote count per option of a poll. Counts
// are never stored; they are always counted from live vote rows.
func OptionTallies(gdb *gorm.DB, pollID uint) (map[uint]int64, error) {
	type row struct {
		OpcaoID uint
		N       int64
	}
	var rows []row
	err := gdb.Model(&models.Vote{}).
		Select("votos.opcao_id AS opcao_id, COUNT(votos.id) AS n").
		Joins("JOIN opcoes ON opcoes.id = votos.opcao_id").
		Where("opcoes.enquete_id = ?", pollID).
		Group("votos.opcao_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	tallies := make(map[uint]int64, len(rows))
	for _, r := range rows {
		tallies[r.OpcaoID] = r.N
	}
	return tallies, nil
}

// CanMutate is the shared authorization rule: the resource owner, any listed
// secondary owner, or an admin may mutate.
func CanMutate(actorID uint, actorRole string, ownerID uint, secondaryOwners ...uint) bool {
	if actorRole == models.RoleAdmin {
		return true
	}
	if actorID == ownerID {
		return true
	}
	for _, id := range secondaryOwners {
		if actorID == id {
			return true
		}
	}
	return false
}
