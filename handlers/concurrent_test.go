// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/enquete/models"
	"github.com/danielhkuo/enquete/testutil"
)

// TestConcurrentVotesAcrossOptions verifies that simultaneous votes from one
// user for different options of the same poll never leave more than one vote
// standing. The unique index only blocks identical submissions; cross-option
// submissions are serialized by the row lock inside CastVote.
func TestConcurrentVotesAcrossOptions(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, gdb, "racer", models.RoleClient)
	poll := testutil.CreateTestPoll(t, gdb, user.ID, true, time.Now().Add(time.Hour), "A", "B", "C")

	numAttempts := 9
	errs := make(chan error, numAttempts)
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := CastVote(gdb, user.ID, poll.Opcoes[idx%len(poll.Opcoes)].ID)
			errs <- err
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var votes int64
	err := gdb.Model(&models.Vote{}).
		Joins("JOIN opcoes ON opcoes.id = votos.opcao_id").
		Where("votos.user_id = ? AND opcoes.enquete_id = ?", user.ID, poll.ID).
		Count(&votes).Error
	require.NoError(t, err)
	assert.LessOrEqual(t, votes, int64(1), "a user must never hold two votes on one poll")
}

// TestConcurrentVotersOnOnePoll verifies that distinct users voting at the
// same time each land exactly one vote.
func TestConcurrentVotersOnOnePoll(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, gdb, "owner", models.RoleClient)
	poll := testutil.CreateTestPoll(t, gdb, owner.ID, true, time.Now().Add(time.Hour), "A", "B")

	numVoters := 6
	voters := make([]*models.User, numVoters)
	for i := range voters {
		voters[i] = testutil.CreateTestUser(t, gdb, "voter"+string(rune('a'+i)), models.RoleClient)
	}

	errs := make(chan error, numVoters)
	var wg sync.WaitGroup
	for i, v := range voters {
		wg.Add(1)
		go func(idx int, userID uint) {
			defer wg.Done()
			_, err := CastVote(gdb, userID, poll.Opcoes[idx%2].ID)
			errs <- err
		}(i, v.ID)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var votes int64
	err := gdb.Model(&models.Vote{}).
		Joins("JOIN opcoes ON opcoes.id = votos.opcao_id").
		Where("opcoes.enquete_id = ?", poll.ID).
		Count(&votes).Error
	require.NoError(t, err)
	assert.Equal(t, int64(numVoters), votes)
}
