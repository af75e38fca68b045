package gamification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wastewise/wastewise-backend/entities"
	"gorm.io/gorm"
)

type (
	GamificationRepository interface {
		// User stats
		GetUserStats(ctx context.Context, userID string) (*entities.UserStats, error)
		UpdateUserStats(ctx context.Context, stats *entities.UserStats) error

		// Point ledger
		CreatePointTransaction(ctx context.Context, tx *entities.PointTransaction) error
		GetPointTransactions(ctx context.Context, userID string, page, limit int) ([]*entities.PointTransaction, int64, error)

		// Challenges
		GetActiveChallenges(ctx context.Context, now time.Time) ([]*entities.Challenge, error)
		GetUserChallenges(ctx context.Context, userID string) ([]*entities.UserChallenge, error)
		UpsertUserChallenge(ctx context.Context, userChallenge *entities.UserChallenge) error

		// Leaderboard
		GetLeaderboard(ctx context.Context, limit int) ([]*entities.UserStats, error)
	}

	gamificationRepository struct {
		db *gorm.DB
	}
)

func NewGamificationRepository(db *gorm.DB) GamificationRepository {
	return &gamificationRepository{db: db}
}

// GetUserStats returns the stats row for a user, creating a zeroed row on
// first access so callers never see a missing record.
func (r *gamificationRepository) GetUserStats(ctx context.Context, userID string) (*entities.UserStats, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	var stats entities.UserStats
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats = entities.UserStats{
				ID:     uuid.New(),
				UserID: userUUID,
			}
			if err := r.db.WithContext(ctx).Create(&stats).Error; err != nil {
				return nil, err
			}
			return &stats, nil
		}
		return nil, err
	}

	return &stats, nil
}

func (r *gamificationRepository) UpdateUserStats(ctx context.Context, stats *entities.UserStats) error {
	return r.db.WithContext(ctx).Save(stats).Error
}

func (r *gamificationRepository) CreatePointTransaction(ctx context.Context, tx *entities.PointTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *gamificationRepository) GetPointTransactions(ctx context.Context, userID string, page, limit int) ([]*entities.PointTransaction, int64, error) {
	var transactions []*entities.PointTransaction
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.PointTransaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}

func (r *gamificationRepository) GetActiveChallenges(ctx context.Context, now time.Time) ([]*entities.Challenge, error) {
	var challenges []*entities.Challenge
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("end_date ASC").
		Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *gamificationRepository) GetUserChallenges(ctx context.Context, userID string) ([]*entities.UserChallenge, error) {
	var userChallenges []*entities.UserChallenge
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&userChallenges).Error; err != nil {
		return nil, err
	}
	return userChallenges, nil
}

func (r *gamificationRepository) UpsertUserChallenge(ctx context.Context, userChallenge *entities.UserChallenge) error {
	var existing entities.UserChallenge
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userChallenge.UserID, userChallenge.ChallengeID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(userChallenge).Error
	}
	if err != nil {
		return err
	}

	existing.Progress = userChallenge.Progress
	existing.IsCompleted = userChallenge.IsCompleted
	existing.CompletedAt = userChallenge.CompletedAt
	return r.db.WithContext(ctx).Save(&existing).Error
}

// GetLeaderboard returns stats rows ranked by points descending, ties
// broken by user id so the order is stable across reads.
func (r *gamificationRepository) GetLeaderboard(ctx context.Context, limit int) ([]*entities.UserStats, error) {
	var entries []*entities.UserStats
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("total_points DESC, user_id ASC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
