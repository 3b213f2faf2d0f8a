package dao

import (
	"context"
	"time"

	"agentw/agentw/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageDAO struct {
	DB *gorm.DB
}

func NewChatMessageDAO(db *gorm.DB) *ChatMessageDAO {
	return &ChatMessageDAO{DB: db}
}

func (dao *ChatMessageDAO) SaveMessage(ctx context.Context, userAddress, sessionID, role, message, response string) (*models.ChatMessage, error) {
	record := models.ChatMessage{
		ID:          uuid.NewString(),
		UserAddress: userAddress,
		SessionID:   sessionID,
		Role:        role,
		Message:     message,
		Response:    response,
		CreatedAt:   time.Now(),
	}
	err := dao.DB.WithContext(ctx).Create(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (dao *ChatMessageDAO) HistoryBySession(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	var history []models.ChatMessage
	err := dao.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// HistoryByUser returns a user's records ascending, optionally narrowed to
// one session.
func (dao *ChatMessageDAO) HistoryByUser(ctx context.Context, userAddress, sessionID string) ([]models.ChatMessage, error) {
	q := dao.DB.WithContext(ctx).Where("user_address = ?", userAddress)
	if sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}
	var history []models.ChatMessage
	err := q.Order("created_at ASC").Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}
