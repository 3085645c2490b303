package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ayush-gupta456/pass-op/internal/auth"
	"github.com/ayush-gupta456/pass-op/internal/models"

	"github.com/stretchr/testify/require"
)

var userCounter int

// Funkcja pomocnicza: każdy test dostaje świeżego użytkownika.
func createRandomUser(t *testing.T) *models.User {
	t.Helper()

	hashedPassword, err := auth.HashPassword("secretpassword")
	require.NoError(t, err)

	userCounter++
	user, err := testStore.CreateUser(context.Background(), CreateUserParams{
		Username:     fmt.Sprintf("dbtestuser%d", userCounter),
		Email:        fmt.Sprintf("dbtestuser%d@example.com", userCounter),
		PasswordHash: hashedPassword,
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func TestCreateUser_Duplicates(t *testing.T) {
	user := createRandomUser(t)

	_, err := testStore.CreateUser(context.Background(), CreateUserParams{
		Username:     user.Username,
		Email:        "other_" + user.Email,
		PasswordHash: user.PasswordHash,
	})
	require.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = testStore.CreateUser(context.Background(), CreateUserParams{
		Username:     user.Username + "x",
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetUserByIdentifier(t *testing.T) {
	user := createRandomUser(t)

	byUsername, err := testStore.GetUserByIdentifier(context.Background(), user.Username)
	require.NoError(t, err)
	require.NotNil(t, byUsername)
	require.Equal(t, user.ID, byUsername.ID)

	byEmail, err := testStore.GetUserByIdentifier(context.Background(), user.Email)
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	require.Equal(t, user.ID, byEmail.ID)

	missing, err := testStore.GetUserByIdentifier(context.Background(), "nonexistent")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestUsernameAndEmailExists(t *testing.T) {
	user := createRandomUser(t)

	exists, err := testStore.UsernameExists(context.Background(), user.Username)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = testStore.UsernameExists(context.Background(), "no_such_user")
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = testStore.EmailExists(context.Background(), user.Email)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = testStore.EmailExists(context.Background(), "no@such.email")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestConsumeResetToken(t *testing.T) {
	user := createRandomUser(t)

	token, err := auth.GenerateResetToken()
	require.NoError(t, err)

	err = testStore.SetResetToken(context.Background(), user.Email, token, time.Now().Add(1*time.Hour))
	require.NoError(t, err)

	newHash, err := auth.HashPassword("brandnewpassword")
	require.NoError(t, err)

	consumed, err := testStore.ConsumeResetToken(context.Background(), token, newHash)
	require.NoError(t, err)
	require.True(t, consumed)

	updated, err := testStore.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, newHash, updated.PasswordHash)
	require.Nil(t, updated.ResetToken)
	require.Nil(t, updated.ResetTokenExpiresAt)

	// Zużyty token nie może zadziałać drugi raz.
	consumed, err = testStore.ConsumeResetToken(context.Background(), token, newHash)
	require.NoError(t, err)
	require.False(t, consumed)
}

func TestConsumeResetToken_Expired(t *testing.T) {
	user := createRandomUser(t)

	token, err := auth.GenerateResetToken()
	require.NoError(t, err)

	err = testStore.SetResetToken(context.Background(), user.Email, token, time.Now().Add(-1*time.Minute))
	require.NoError(t, err)

	newHash, err := auth.HashPassword("brandnewpassword")
	require.NoError(t, err)

	consumed, err := testStore.ConsumeResetToken(context.Background(), token, newHash)
	require.NoError(t, err)
	require.False(t, consumed)

	// The expired token stays on the row, it is just never matched.
	unchanged, err := testStore.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, unchanged.ResetToken)
	require.NotEqual(t, newHash, unchanged.PasswordHash)
}
